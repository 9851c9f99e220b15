package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pos-backend/internal/domain/entity"
	"github.com/tu-usuario/pos-backend/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

const inventoryLogColumns = `id, product_id, user_id, action, quantity_change, quantity_before, quantity_after, reference_number, notes, created_at`

// InventoryLogRepo implementación del ledger de inventario sobre PostgreSQL
// (usable con pool o tx). El ledger es append-only: solo INSERT y SELECT.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Create persiste una entrada del ledger.
func (r *InventoryLogRepo) Create(entry *entity.InventoryLogEntry) error {
	query := `
		INSERT INTO inventory_logs (id, product_id, user_id, action, quantity_change, quantity_before, quantity_after, reference_number, notes, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductID, entry.UserID, entry.Action, entry.QuantityChange,
		entry.QuantityBefore, entry.QuantityAfter, entry.ReferenceNumber, entry.Notes, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory log: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *InventoryLogRepo) GetByID(id string) (*entity.InventoryLogEntry, error) {
	query := `SELECT id, product_id, COALESCE(user_id, ''), action, quantity_change, quantity_before, quantity_after, reference_number, notes, created_at
		FROM inventory_logs WHERE id = $1`
	var e entity.InventoryLogEntry
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.ProductID, &e.UserID, &e.Action, &e.QuantityChange,
		&e.QuantityBefore, &e.QuantityAfter, &e.ReferenceNumber, &e.Notes, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory log: %w", err)
	}
	return &e, nil
}

// List lista entradas del ledger con filtros de producto, acción y ventana temporal.
func (r *InventoryLogRepo) List(filter repository.InventoryLogFilter) ([]*entity.InventoryLogEntry, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		where += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.Action != "" {
		where += fmt.Sprintf(" AND action = $%d", pos)
		args = append(args, filter.Action)
		pos++
	}
	if filter.Days > 0 {
		where += fmt.Sprintf(" AND created_at >= now() - ($%d || ' days')::interval", pos)
		args = append(args, filter.Days)
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM inventory_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory logs: %w", err)
	}

	query := `SELECT id, product_id, COALESCE(user_id, ''), action, quantity_change, quantity_before, quantity_after, reference_number, notes, created_at
		FROM inventory_logs` + where + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLogEntry
	for rows.Next() {
		var e entity.InventoryLogEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.UserID, &e.Action, &e.QuantityChange,
			&e.QuantityBefore, &e.QuantityAfter, &e.ReferenceNumber, &e.Notes, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan inventory log: %w", err)
		}
		list = append(list, &e)
	}
	return list, total, rows.Err()
}

// HistoryByProduct devuelve las entradas de un producto (más reciente primero).
func (r *InventoryLogRepo) HistoryByProduct(productID string, limit int) ([]*entity.InventoryLogEntry, error) {
	query := `SELECT id, product_id, COALESCE(user_id, ''), action, quantity_change, quantity_before, quantity_after, reference_number, notes, created_at
		FROM inventory_logs WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("history by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLogEntry
	for rows.Next() {
		var e entity.InventoryLogEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.UserID, &e.Action, &e.QuantityChange,
			&e.QuantityBefore, &e.QuantityAfter, &e.ReferenceNumber, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
