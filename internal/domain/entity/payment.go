package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	PaymentMethodCash  = "cash"
	PaymentMethodCard  = "card"
	PaymentMethodUPI   = "upi"
	PaymentMethodCheck = "check"
	PaymentMethodOther = "other"
)

// Estados de un pago. La transición completed -> refunded es de una sola vía.
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// ValidPaymentMethod indica si el método es uno de los conocidos.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI,
		PaymentMethodCheck, PaymentMethodOther:
		return true
	}
	return false
}

// Payment representa fondos aplicados a un pedido.
// Invariante (a nivel de pedido): la suma de pagos completed nunca excede Order.Total.
type Payment struct {
	ID            string
	OrderID       string
	Amount        decimal.Decimal // > 0
	Method        string
	TransactionID string // opcional, único si está presente
	Status        string
	Notes         string
	UserID        string // usuario que procesó el pago (opcional)
	CreatedAt     time.Time
}
