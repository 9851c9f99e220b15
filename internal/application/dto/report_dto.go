package dto

import "github.com/shopspring/decimal"

// DailySalesResponse ventas de un día.
type DailySalesResponse struct {
	Date          string          `json:"date"` // YYYY-MM-DD
	OrderCount    int64           `json:"total_orders"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
}

// TopProductResponse producto más vendido en la ventana consultada.
type TopProductResponse struct {
	ProductID        string `json:"product_id"`
	ProductName      string `json:"product_name"`
	SKU              string `json:"sku"`
	TotalSold        int64  `json:"total_sold"`
	TransactionCount int64  `json:"transaction_count"`
}

// PaymentMethodReportResponse desglose por método de pago.
type PaymentMethodReportResponse struct {
	Method      string          `json:"method"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
