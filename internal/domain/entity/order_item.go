package entity

import "github.com/shopspring/decimal"

// OrderItem representa una línea de un pedido. ProductName y ProductSKU son
// snapshot al momento de la venta: el histórico no cambia si el catálogo cambia.
// Invariante: Subtotal = UnitPrice × Quantity - Discount.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	ProductSKU  string
	Quantity    int64 // > 0
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Subtotal    decimal.Decimal
}
