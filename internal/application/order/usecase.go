package order

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/pos-backend/internal/application/dto"
	"github.com/tu-usuario/pos-backend/internal/domain"
	"github.com/tu-usuario/pos-backend/internal/domain/entity"
	domainorder "github.com/tu-usuario/pos-backend/internal/domain/order"
	"github.com/tu-usuario/pos-backend/internal/domain/repository"
)

// UseCase coordina el ciclo de vida de los pedidos: creación con descuento de
// inventario, consulta, actualización y cancelación con reposición de stock.
type UseCase struct {
	txRunner     TxRunner
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	mailer       Mailer // nil = correo deshabilitado
}

// NewUseCase construye el caso de uso de pedidos.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	mailer Mailer,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		mailer:       mailer,
	}
}

// Get obtiene un pedido por ID con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	ord, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ItemsByOrder(ord.ID)
	if err != nil {
		return nil, err
	}
	return toResponse(ord, items), nil
}

// GetByNumber obtiene un pedido por su número único.
func (uc *UseCase) GetByNumber(ctx context.Context, orderNumber string) (*dto.OrderResponse, error) {
	ord, err := uc.orderRepo.GetByNumber(orderNumber)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ItemsByOrder(ord.ID)
	if err != nil {
		return nil, err
	}
	return toResponse(ord, items), nil
}

// List lista pedidos con filtros de estado y cliente (sin líneas).
func (uc *UseCase) List(ctx context.Context, filter repository.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Status != "" && !entity.ValidOrderStatus(filter.Status) {
		return nil, domain.ErrInvalidInput
	}
	orders, total, err := uc.orderRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(orders)),
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}
	for _, o := range orders {
		out.Items = append(out.Items, *toResponse(o, nil))
	}
	return out, nil
}

// ListByCustomer devuelve los pedidos de un cliente (más reciente primero).
func (uc *UseCase) ListByCustomer(ctx context.Context, customerID string, limit int) ([]dto.OrderResponse, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = 50
	}
	orders, err := uc.orderRepo.ListByCustomer(customerID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toResponse(o, nil))
	}
	return out, nil
}

// Update modifica los campos permitidos de un pedido. Si cambian tax o
// discount se recalcula el total; al pasar a completed se registra
// CompletedAt, se acreditan puntos de fidelidad y se envía la confirmación.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	ord, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	if ord.Status == entity.OrderStatusCancelled {
		return nil, domain.ErrOrderCancelled
	}

	completing := false
	if in.Status != nil {
		if !entity.ValidOrderStatus(*in.Status) || *in.Status == entity.OrderStatusCancelled {
			// La cancelación repone stock; tiene su propia operación.
			return nil, domain.ErrInvalidInput
		}
		if *in.Status == entity.OrderStatusCompleted && ord.Status != entity.OrderStatusCompleted {
			completing = true
			now := time.Now()
			ord.CompletedAt = &now
		}
		ord.Status = *in.Status
	}
	if in.CustomerID != nil {
		if *in.CustomerID != "" {
			customer, err := uc.customerRepo.GetByID(*in.CustomerID)
			if err != nil {
				return nil, err
			}
			if customer == nil {
				return nil, domain.ErrNotFound
			}
		}
		ord.CustomerID = *in.CustomerID
	}
	recompute := false
	if in.Tax != nil {
		if in.Tax.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		ord.Tax = *in.Tax
		recompute = true
	}
	if in.Discount != nil {
		if in.Discount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		ord.Discount = *in.Discount
		recompute = true
	}
	if in.Notes != nil {
		ord.Notes = *in.Notes
	}
	if recompute {
		ord.Total = domainorder.Total(ord.Subtotal, ord.Tax, ord.Discount)
	}
	ord.UpdatedAt = time.Now()

	if err := uc.orderRepo.Update(ord); err != nil {
		return nil, err
	}

	if completing {
		uc.onCompleted(ctx, ord)
	}

	items, err := uc.orderRepo.ItemsByOrder(ord.ID)
	if err != nil {
		return nil, err
	}
	return toResponse(ord, items), nil
}

// onCompleted acredita puntos de fidelidad (1 punto por unidad monetaria entera
// del total) y envía la confirmación por correo. Ambos son mejor esfuerzo.
func (uc *UseCase) onCompleted(ctx context.Context, ord *entity.Order) {
	if ord.CustomerID == "" {
		return
	}
	customer, err := uc.customerRepo.GetByID(ord.CustomerID)
	if err != nil || customer == nil {
		log.Warn().Err(err).Str("order", ord.OrderNumber).Msg("cliente no disponible al completar pedido")
		return
	}
	points := ord.Total.IntPart()
	if points > 0 {
		if err := uc.customerRepo.AddLoyaltyPoints(customer.ID, points); err != nil {
			log.Warn().Err(err).Str("order", ord.OrderNumber).Msg("no se acreditaron puntos de fidelidad")
		}
	}
	if uc.mailer != nil && customer.Email != "" {
		if err := uc.mailer.SendOrderConfirmation(customer.Email, customer.Name, ord.OrderNumber, ord.Total); err != nil {
			// Sin reintentos: el fallo se registra y la petición sigue su curso.
			log.Warn().Err(err).Str("order", ord.OrderNumber).Msg("no se envió la confirmación de pedido")
		}
	}
}

func toResponse(o *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		UserID:      o.UserID,
		Status:      o.Status,
		Subtotal:    o.Subtotal,
		Tax:         o.Tax,
		Discount:    o.Discount,
		Total:       o.Total,
		Notes:       o.Notes,
		Items:       make([]dto.OrderItemResponse, 0, len(items)),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		CompletedAt: o.CompletedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductSKU:  it.ProductSKU,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			Subtotal:    it.Subtotal,
		})
	}
	return resp
}
