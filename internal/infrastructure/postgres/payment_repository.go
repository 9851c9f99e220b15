package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backend/internal/domain"
	"github.com/tu-usuario/pos-backend/internal/domain/entity"
	"github.com/tu-usuario/pos-backend/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de pagos. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un nuevo pago.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, amount, method, transaction_id, status, notes, user_id, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, NULLIF($8, ''), $9)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.OrderID, payment.Amount, payment.Method, payment.TransactionID,
		payment.Status, payment.Notes, payment.UserID, payment.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	return r.getBy("id = $1", id)
}

// GetByTransactionID obtiene un pago por su referencia externa.
func (r *PaymentRepo) GetByTransactionID(transactionID string) (*entity.Payment, error) {
	return r.getBy("transaction_id = $1", transactionID)
}

func (r *PaymentRepo) getBy(where string, arg any) (*entity.Payment, error) {
	query := `SELECT id, order_id, amount, method, COALESCE(transaction_id, ''), status, notes, COALESCE(user_id, ''), created_at
		FROM payments WHERE ` + where
	var p entity.Payment
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.TransactionID,
		&p.Status, &p.Notes, &p.UserID, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// Update actualiza estado y notas de un pago (reembolsos).
func (r *PaymentRepo) Update(payment *entity.Payment) error {
	query := `UPDATE payments SET status = $2, notes = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, payment.ID, payment.Status, payment.Notes)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

// List lista pagos con filtros de pedido y estado.
func (r *PaymentRepo) List(filter repository.PaymentFilter) ([]*entity.Payment, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.OrderID != "" {
		where += fmt.Sprintf(" AND order_id = $%d", pos)
		args = append(args, filter.OrderID)
		pos++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM payments`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	query := `SELECT id, order_id, amount, method, COALESCE(transaction_id, ''), status, notes, COALESCE(user_id, ''), created_at
		FROM payments` + where + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.TransactionID,
			&p.Status, &p.Notes, &p.UserID, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// SumCompletedByOrder suma los pagos completed del pedido. Se invoca con la
// fila del pedido bloqueada para que la verificación de sobrepago sea atómica.
func (r *PaymentRepo) SumCompletedByOrder(orderID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE order_id = $1 AND status = 'completed'`,
		orderID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return sum, nil
}
