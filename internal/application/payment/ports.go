package payment

import (
	"context"

	"github.com/tu-usuario/pos-backend/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de pagos y pedidos. La verificación de sobrepago se hace con la
// fila del pedido bloqueada, dentro de esta transacción.
type TxRunner interface {
	RunPayment(ctx context.Context, fn func(
		paymentRepo repository.PaymentRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
