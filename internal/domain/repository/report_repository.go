package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesResult ventas agregadas por día (pedidos completed y refunded).
type DailySalesResult struct {
	Day           time.Time
	OrderCount    int64
	TotalSales    decimal.Decimal
	TotalTax      decimal.Decimal
	TotalDiscount decimal.Decimal
}

// TopProductResult producto más vendido según el ledger (acción sale).
type TopProductResult struct {
	ProductID        string
	ProductName      string
	SKU              string
	TotalSold        int64 // valor absoluto de la suma de quantity_change
	TransactionCount int64
}

// PaymentMethodResult desglose de pagos completed por método.
type PaymentMethodResult struct {
	Method      string
	Count       int64
	TotalAmount decimal.Decimal
}

// ReportRepository consultas de agregación de solo lectura para reportes.
type ReportRepository interface {
	SalesByDay(ctx context.Context, start, end time.Time) ([]*DailySalesResult, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]*TopProductResult, error)
	PaymentMethods(ctx context.Context, since time.Time) ([]*PaymentMethodResult, error)
}
