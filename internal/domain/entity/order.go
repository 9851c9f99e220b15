package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	OrderStatusRefunded  = "refunded"
	OrderStatusOnHold    = "on_hold"
)

// ValidOrderStatus indica si el estado es uno de los conocidos.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled,
		OrderStatusRefunded, OrderStatusOnHold:
		return true
	}
	return false
}

// Order representa una venta. Invariante: Total = Subtotal + Tax - Discount.
// El pedido es dueño de sus OrderItems y Payments (ciclo de vida en cascada);
// las entradas del ledger de inventario lo referencian solo por OrderNumber
// y sobreviven a cualquier mutación del pedido.
type Order struct {
	ID          string
	OrderNumber string // único, formato ORD-YYYYMMDD-XXXXXXXX
	CustomerID  string // vacío = venta sin cliente registrado
	UserID      string // usuario que registró la venta
	Status      string
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}
