package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible del catálogo.
// StockQuantity solo cambia a través del ledger de inventario
// (InventoryLogEntry); nunca se muta directamente desde el CRUD de catálogo.
type Product struct {
	ID            string
	SKU           string // código único
	Barcode       string // opcional, único si está presente
	Name          string
	Description   string
	CategoryID    string
	Price         decimal.Decimal // precio de venta
	CostPrice     decimal.Decimal
	StockQuantity int64 // nunca negativo
	MinStockLevel int64 // umbral de alerta de stock bajo
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LowStock indica si el producto está en o por debajo del umbral mínimo.
func (p *Product) LowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}
