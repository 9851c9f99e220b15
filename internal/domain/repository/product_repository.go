package repository

import "github.com/tu-usuario/pos-backend/internal/domain/entity"

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	CategoryID string
	ActiveOnly bool
	LowStock   bool // StockQuantity <= MinStockLevel
	Search     string
	Limit      int
	Offset     int
}

// InventorySummary conteos agregados sobre productos activos.
type InventorySummary struct {
	TotalProducts int64
	LowStockCount int64
	OutOfStock    int64
}

// ProductRepository define el puerto de persistencia para Product.
// UpdateStock y GetForUpdate existen solo para el ledger de inventario:
// ningún otro caso de uso muta StockQuantity.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(filter ProductFilter) ([]*entity.Product, int, error)
	Delete(id string) error
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para la
	// secuencia leer-verificar-escribir del ledger dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock fija el contador de stock; solo lo invoca el ledger.
	UpdateStock(id string, quantity int64) error
	Summary() (*InventorySummary, error)
}
