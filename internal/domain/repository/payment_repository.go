package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backend/internal/domain/entity"
)

// PaymentFilter filtros de listado de pagos.
type PaymentFilter struct {
	OrderID string
	Status  string
	Limit   int
	Offset  int
}

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	GetByTransactionID(transactionID string) (*entity.Payment, error)
	Update(payment *entity.Payment) error
	List(filter PaymentFilter) ([]*entity.Payment, int, error)
	// SumCompletedByOrder suma los pagos completed del pedido. Se invoca con la
	// fila del pedido bloqueada para que la verificación de sobrepago sea atómica.
	SumCompletedByOrder(orderID string) (decimal.Decimal, error)
}
