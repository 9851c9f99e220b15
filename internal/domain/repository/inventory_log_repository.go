package repository

import "github.com/tu-usuario/pos-backend/internal/domain/entity"

// InventoryLogFilter filtros de listado del ledger.
type InventoryLogFilter struct {
	ProductID string
	Action    string
	Days      int // 0 = sin límite temporal
	Limit     int
	Offset    int
}

// InventoryLogRepository define el puerto del ledger de inventario.
// El ledger es append-only: no hay Update ni Delete.
type InventoryLogRepository interface {
	Create(entry *entity.InventoryLogEntry) error
	GetByID(id string) (*entity.InventoryLogEntry, error)
	List(filter InventoryLogFilter) ([]*entity.InventoryLogEntry, int, error)
	HistoryByProduct(productID string, limit int) ([]*entity.InventoryLogEntry, error)
}
