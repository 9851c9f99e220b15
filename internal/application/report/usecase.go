package report

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-backend/internal/application/dto"
	"github.com/tu-usuario/pos-backend/internal/domain"
	"github.com/tu-usuario/pos-backend/internal/domain/repository"
)

// UseCase reportes de ventas de solo lectura sobre pedidos, ledger y pagos.
type UseCase struct {
	reportRepo repository.ReportRepository
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(reportRepo repository.ReportRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo}
}

// SalesByDay ventas agregadas por día en el rango [start, end].
// Si el rango viene vacío se usan los últimos 30 días.
func (uc *UseCase) SalesByDay(ctx context.Context, start, end time.Time) ([]dto.DailySalesResponse, error) {
	if end.IsZero() {
		end = time.Now()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -30)
	}
	if start.After(end) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.reportRepo.SalesByDay(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DailySalesResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DailySalesResponse{
			Date:          r.Day.Format("2006-01-02"),
			OrderCount:    r.OrderCount,
			TotalSales:    r.TotalSales,
			TotalTax:      r.TotalTax,
			TotalDiscount: r.TotalDiscount,
		})
	}
	return out, nil
}

// TopProducts productos más vendidos en los últimos days días según el ledger.
func (uc *UseCase) TopProducts(ctx context.Context, days, limit int) ([]dto.TopProductResponse, error) {
	if days <= 0 {
		days = 30
	}
	if limit <= 0 {
		limit = 10
	}
	since := time.Now().AddDate(0, 0, -days)
	rows, err := uc.reportRepo.TopProducts(ctx, since, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductResponse{
			ProductID:        r.ProductID,
			ProductName:      r.ProductName,
			SKU:              r.SKU,
			TotalSold:        r.TotalSold,
			TransactionCount: r.TransactionCount,
		})
	}
	return out, nil
}

// PaymentMethods desglose de pagos completed por método en los últimos days días.
func (uc *UseCase) PaymentMethods(ctx context.Context, days int) ([]dto.PaymentMethodReportResponse, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	rows, err := uc.reportRepo.PaymentMethods(ctx, since)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentMethodReportResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PaymentMethodReportResponse{
			Method:      r.Method,
			Count:       r.Count,
			TotalAmount: r.TotalAmount,
		})
	}
	return out, nil
}
