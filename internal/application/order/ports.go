package order

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backend/internal/domain/entity"
	"github.com/tu-usuario/pos-backend/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que necesita el coordinador de pedidos. El pedido, sus líneas y
// las entradas del ledger se confirman juntos o se descartan juntos.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		logRepo repository.InventoryLogRepository,
	) error) error
}

// Mailer envía la confirmación de pedido al cliente. Mejor esfuerzo: un fallo
// se registra y no afecta la operación.
type Mailer interface {
	SendOrderConfirmation(to, customerName, orderNumber string, total decimal.Decimal) error
}

// InvoicePDFGenerator genera la representación en PDF de un pedido (recibo).
type InvoicePDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.Order, items []*entity.OrderItem, customer *entity.Customer) ([]byte, error)
}
