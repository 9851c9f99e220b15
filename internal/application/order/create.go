package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backend/internal/application/dto"
	"github.com/tu-usuario/pos-backend/internal/application/inventory"
	"github.com/tu-usuario/pos-backend/internal/domain"
	"github.com/tu-usuario/pos-backend/internal/domain/entity"
	domainorder "github.com/tu-usuario/pos-backend/internal/domain/order"
	"github.com/tu-usuario/pos-backend/internal/domain/repository"
)

// generateOrderNumber genera un número único de pedido: ORD-YYYYMMDD-XXXXXXXX.
func generateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

// Create ejecuta el coordinador de pedidos: valida las líneas, calcula totales,
// y persiste pedido, líneas y entradas del ledger (con descuento de stock) en
// una sola transacción. Cualquier fallo descarta todo; el caller nunca ve
// estado parcial.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Tax.IsNegative() || in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Validar cliente si viene informado.
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Resolver productos y precios (fuera de la tx, solo lectura). El control
	// de stock NO se hace aquí: ocurre dentro de la tx con la fila bloqueada.
	type lineData struct {
		product   *entity.Product
		req       dto.OrderItemRequest
		unitPrice decimal.Decimal
		subtotal  decimal.Decimal
	}
	lines := make([]lineData, 0, len(in.Items))
	subtotal := decimal.Zero
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.Discount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		unitPrice := product.Price
		if item.UnitPrice != nil {
			if item.UnitPrice.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			unitPrice = *item.UnitPrice
		}
		lineSubtotal := domainorder.LineSubtotal(unitPrice, item.Quantity, item.Discount)
		subtotal = subtotal.Add(lineSubtotal)
		lines = append(lines, lineData{product: product, req: item, unitPrice: unitPrice, subtotal: lineSubtotal})
	}

	now := time.Now()
	ord := &entity.Order{
		ID:          uuid.New().String(),
		OrderNumber: generateOrderNumber(now),
		CustomerID:  in.CustomerID,
		UserID:      userID,
		Status:      entity.OrderStatusPending,
		Subtotal:    subtotal,
		Tax:         in.Tax,
		Discount:    in.Discount,
		Total:       domainorder.Total(subtotal, in.Tax, in.Discount),
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var items []*entity.OrderItem
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		logRepo repository.InventoryLogRepository,
	) error {
		if err := orderRepo.Create(ord); err != nil {
			return err
		}
		for _, line := range lines {
			item := &entity.OrderItem{
				ID:          uuid.New().String(),
				OrderID:     ord.ID,
				ProductID:   line.product.ID,
				ProductName: line.product.Name,
				ProductSKU:  line.product.SKU,
				Quantity:    line.req.Quantity,
				UnitPrice:   line.unitPrice,
				Discount:    line.req.Discount,
				Subtotal:    line.subtotal,
			}
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, item)

			// Descuento de stock a través del ledger: bloquea la fila del
			// producto y verifica contra el contador vivo. Si no hay stock,
			// retorna ErrInsufficientStock y toda la transacción se revierte.
			if _, err := inventory.ApplyInTx(productRepo, logRepo, inventory.ApplyInput{
				ProductID:       line.product.ID,
				UserID:          userID,
				Action:          entity.InventoryActionSale,
				QuantityChange:  -line.req.Quantity,
				ReferenceNumber: ord.OrderNumber,
				Notes:           fmt.Sprintf("Venta por pedido %s", ord.OrderNumber),
				Now:             now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(ord, items), nil
}

// Cancel cancela un pedido y repone el inventario escribiendo entradas
// compensatorias (acción return, delta positivo) por cada línea original.
// Re-cancelar un pedido ya cancelado se rechaza: la operación es atómica y
// está protegida contra repetición.
func (uc *UseCase) Cancel(ctx context.Context, orderID, userID string) (*dto.OrderResponse, error) {
	var ord *entity.Order
	var items []*entity.OrderItem
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		logRepo repository.InventoryLogRepository,
	) error {
		var err error
		// Bloquea la fila del pedido: dos cancelaciones simultáneas del mismo
		// pedido se serializan y la segunda ve el estado cancelled.
		ord, err = orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if ord == nil {
			return domain.ErrNotFound
		}
		if ord.Status == entity.OrderStatusCancelled {
			return domain.ErrOrderCancelled
		}

		items, err = orderRepo.ItemsByOrder(ord.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, item := range items {
			if _, err := inventory.ApplyInTx(productRepo, logRepo, inventory.ApplyInput{
				ProductID:       item.ProductID,
				UserID:          userID,
				Action:          entity.InventoryActionReturn,
				QuantityChange:  item.Quantity,
				ReferenceNumber: ord.OrderNumber,
				Notes:           fmt.Sprintf("Devolución por cancelación del pedido %s", ord.OrderNumber),
				Now:             now,
			}); err != nil {
				return err
			}
		}

		ord.Status = entity.OrderStatusCancelled
		ord.UpdatedAt = now
		return orderRepo.Update(ord)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(ord, items), nil
}
