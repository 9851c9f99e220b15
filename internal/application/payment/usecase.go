package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backend/internal/application/dto"
	"github.com/tu-usuario/pos-backend/internal/domain"
	"github.com/tu-usuario/pos-backend/internal/domain/entity"
	"github.com/tu-usuario/pos-backend/internal/domain/repository"
)

// UseCase registra pagos contra pedidos y gestiona reembolsos.
// Invariante: la suma de pagos completed de un pedido nunca excede su total.
type UseCase struct {
	txRunner    TxRunner
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
}

// NewUseCase construye el caso de uso de pagos.
func NewUseCase(txRunner TxRunner, paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository) *UseCase {
	return &UseCase{txRunner: txRunner, paymentRepo: paymentRepo, orderRepo: orderRepo}
}

// Create registra un pago. Dentro de una transacción: bloquea la fila del
// pedido, suma los pagos completed existentes y rechaza con ErrOverPayment si
// pagado + nuevo monto > total del pedido.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if in.OrderID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(in.Method) {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.Payment
	err := uc.txRunner.RunPayment(ctx, func(
		paymentRepo repository.PaymentRepository,
		orderRepo repository.OrderRepository,
	) error {
		// Bloquea el pedido: dos pagos simultáneos contra el mismo pedido se
		// serializan y el segundo ve la suma actualizada.
		ord, err := orderRepo.GetForUpdate(in.OrderID)
		if err != nil {
			return err
		}
		if ord == nil {
			return domain.ErrNotFound
		}
		if ord.Status == entity.OrderStatusCancelled {
			return domain.ErrOrderCancelled
		}

		paid, err := paymentRepo.SumCompletedByOrder(in.OrderID)
		if err != nil {
			return err
		}
		if paid.Add(in.Amount).GreaterThan(ord.Total) {
			return domain.ErrOverPayment
		}

		created = &entity.Payment{
			ID:            uuid.New().String(),
			OrderID:       in.OrderID,
			Amount:        in.Amount,
			Method:        in.Method,
			TransactionID: in.TransactionID,
			Status:        entity.PaymentStatusCompleted,
			Notes:         in.Notes,
			UserID:        userID,
			CreatedAt:     time.Now(),
		}
		return paymentRepo.Create(created)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(created), nil
}

// Refund marca un pago como reembolsado. Transición de una sola vía:
// reembolsar un pago ya reembolsado se rechaza con ErrPaymentRefunded.
func (uc *UseCase) Refund(ctx context.Context, id string, in dto.RefundPaymentRequest) (*dto.PaymentResponse, error) {
	p, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Status == entity.PaymentStatusRefunded {
		return nil, domain.ErrPaymentRefunded
	}
	if p.Status != entity.PaymentStatusCompleted {
		return nil, domain.ErrConflict
	}

	p.Status = entity.PaymentStatusRefunded
	if in.Reason != "" {
		p.Notes = fmt.Sprintf("Reembolsado: %s", in.Reason)
	}
	if err := uc.paymentRepo.Update(p); err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

// Get obtiene un pago por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(p), nil
}

// List lista pagos con filtros de pedido y estado.
func (uc *UseCase) List(ctx context.Context, filter repository.PaymentFilter) (*dto.PaymentListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	payments, total, err := uc.paymentRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.PaymentListResponse{
		Items: make([]dto.PaymentResponse, 0, len(payments)),
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}
	for _, p := range payments {
		out.Items = append(out.Items, *toResponse(p))
	}
	return out, nil
}

// OrderPaymentStatus devuelve total, pagado y saldo pendiente de un pedido.
func (uc *UseCase) OrderPaymentStatus(ctx context.Context, orderID string) (*dto.OrderPaymentStatusResponse, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	paid, err := uc.paymentRepo.SumCompletedByOrder(orderID)
	if err != nil {
		return nil, err
	}
	remaining := ord.Total.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return &dto.OrderPaymentStatusResponse{
		OrderID:         orderID,
		OrderTotal:      ord.Total,
		PaidAmount:      paid,
		RemainingAmount: remaining,
		IsFullyPaid:     !ord.Total.GreaterThan(paid),
	}, nil
}

func toResponse(p *entity.Payment) *dto.PaymentResponse {
	if p == nil {
		return nil
	}
	return &dto.PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		Method:        p.Method,
		TransactionID: p.TransactionID,
		Status:        p.Status,
		Notes:         p.Notes,
		UserID:        p.UserID,
		CreatedAt:     p.CreatedAt,
	}
}
