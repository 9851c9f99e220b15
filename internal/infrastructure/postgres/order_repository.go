package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pos-backend/internal/domain"
	"github.com/tu-usuario/pos-backend/internal/domain/entity"
	"github.com/tu-usuario/pos-backend/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_number, customer_id, user_id, status, subtotal, tax, discount, total, notes, created_at, updated_at, completed_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un nuevo pedido (sin líneas; ver CreateItem).
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, order_number, customer_id, user_id, status, subtotal, tax, discount, total, notes, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.CustomerID, order.UserID, order.Status,
		order.Subtotal, order.Tax, order.Discount, order.Total, order.Notes,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del pedido. Se invoca en la misma transacción que Create.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, product_sku, quantity, unit_price, discount, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.ProductName, item.ProductSKU,
		item.Quantity, item.UnitPrice, item.Discount, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.getBy(`WHERE id = $1`, id)
}

// GetByNumber obtiene un pedido por su número.
func (r *OrderRepo) GetByNumber(orderNumber string) (*entity.Order, error) {
	return r.getBy(`WHERE order_number = $1`, orderNumber)
}

// GetForUpdate obtiene un pedido y bloquea su fila (SELECT FOR UPDATE).
// Serializa cancelación y verificación de sobrepago por pedido.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.getBy(`WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) getBy(clause string, arg any) (*entity.Order, error) {
	query := `SELECT id, order_number, COALESCE(customer_id, ''), user_id, status, subtotal, tax, discount, total, notes, created_at, updated_at, completed_at
		FROM orders ` + clause
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.UserID, &o.Status,
		&o.Subtotal, &o.Tax, &o.Discount, &o.Total, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt, &o.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// Update actualiza estado, montos y notas de un pedido.
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders SET status = $2, subtotal = $3, tax = $4, discount = $5, total = $6,
			notes = $7, updated_at = $8, completed_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.Subtotal, order.Tax, order.Discount, order.Total,
		order.Notes, order.UpdatedAt, order.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// ItemsByOrder devuelve las líneas de un pedido.
func (r *OrderRepo) ItemsByOrder(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, product_sku, quantity, unit_price, discount, subtotal
		FROM order_items WHERE order_id = $1 ORDER BY product_name`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductSKU,
			&it.Quantity, &it.UnitPrice, &it.Discount, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista pedidos con filtros de estado y cliente.
func (r *OrderRepo) List(filter repository.OrderFilter) ([]*entity.Order, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.CustomerID != "" {
		where += fmt.Sprintf(" AND customer_id = $%d", pos)
		args = append(args, filter.CustomerID)
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `SELECT id, order_number, COALESCE(customer_id, ''), user_id, status, subtotal, tax, discount, total, notes, created_at, updated_at, completed_at
		FROM orders` + where + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.UserID, &o.Status,
			&o.Subtotal, &o.Tax, &o.Discount, &o.Total, &o.Notes,
			&o.CreatedAt, &o.UpdatedAt, &o.CompletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, total, rows.Err()
}

// ListByCustomer lista los pedidos de un cliente (más reciente primero).
func (r *OrderRepo) ListByCustomer(customerID string, limit int) ([]*entity.Order, error) {
	query := `SELECT id, order_number, COALESCE(customer_id, ''), user_id, status, subtotal, tax, discount, total, notes, created_at, updated_at, completed_at
		FROM orders WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders by customer: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.UserID, &o.Status,
			&o.Subtotal, &o.Tax, &o.Discount, &o.Total, &o.Notes,
			&o.CreatedAt, &o.UpdatedAt, &o.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
