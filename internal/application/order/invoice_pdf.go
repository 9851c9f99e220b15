package order

import (
	"context"
	"fmt"

	"github.com/tu-usuario/pos-backend/internal/domain"
	"github.com/tu-usuario/pos-backend/internal/domain/entity"
)

// PDFUseCase genera el recibo/factura en PDF de un pedido.
type PDFUseCase struct {
	orders    *UseCase
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso de PDF.
func NewPDFUseCase(orders *UseCase, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{orders: orders, generator: generator}
}

// DownloadOrderPDF recupera el pedido con sus líneas y cliente, y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el pedido no existe.
func (uc *PDFUseCase) DownloadOrderPDF(ctx context.Context, orderID string) (pdfBytes []byte, filename string, err error) {
	ord, err := uc.orders.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pedido: %w", err)
	}
	if ord == nil {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.orders.orderRepo.ItemsByOrder(ord.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	var customer *entity.Customer
	if ord.CustomerID != "" {
		customer, err = uc.orders.customerRepo.GetByID(ord.CustomerID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
		}
	}

	out, err := uc.generator.GenerateOrderPDF(ctx, ord, items, customer)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out, fmt.Sprintf("%s.pdf", ord.OrderNumber), nil
}
