package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/pos-backend/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación de solo lectura para reportes de ventas.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// SalesByDay agrupa pedidos completed y refunded por día de creación.
func (r *ReportRepo) SalesByDay(ctx context.Context, start, end time.Time) ([]*repository.DailySalesResult, error) {
	const query = `
	SELECT
	    date_trunc('day', created_at) AS day,
	    COUNT(*)                      AS order_count,
	    SUM(total)                    AS total_sales,
	    SUM(tax)                      AS total_tax,
	    SUM(discount)                 AS total_discount
	FROM orders
	WHERE created_at BETWEEN $1 AND $2
	  AND status IN ('completed', 'refunded')
	GROUP BY day
	ORDER BY day`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("report.SalesByDay: %w", err)
	}
	defer rows.Close()

	var results []*repository.DailySalesResult
	for rows.Next() {
		var row repository.DailySalesResult
		if err := rows.Scan(
			&row.Day,
			&row.OrderCount,
			&row.TotalSales,
			&row.TotalTax,
			&row.TotalDiscount,
		); err != nil {
			return nil, fmt.Errorf("report.SalesByDay scan: %w", err)
		}
		results = append(results, &row)
	}
	return results, rows.Err()
}

// TopProducts productos más vendidos según las entradas sale del ledger.
// quantity_change es negativo en ventas: se suma el valor absoluto.
func (r *ReportRepo) TopProducts(ctx context.Context, since time.Time, limit int) ([]*repository.TopProductResult, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    p.sku,
	    SUM(-l.quantity_change) AS total_sold,
	    COUNT(*)                AS transaction_count
	FROM inventory_logs l
	JOIN products p ON p.id = l.product_id
	WHERE l.action = 'sale'
	  AND l.created_at >= $1
	GROUP BY p.id, p.name, p.sku
	ORDER BY total_sold DESC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("report.TopProducts: %w", err)
	}
	defer rows.Close()

	var results []*repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(
			&row.ProductID,
			&row.ProductName,
			&row.SKU,
			&row.TotalSold,
			&row.TransactionCount,
		); err != nil {
			return nil, fmt.Errorf("report.TopProducts scan: %w", err)
		}
		results = append(results, &row)
	}
	return results, rows.Err()
}

// PaymentMethods desglose de pagos completed por método.
func (r *ReportRepo) PaymentMethods(ctx context.Context, since time.Time) ([]*repository.PaymentMethodResult, error) {
	const query = `
	SELECT
	    method,
	    COUNT(*)    AS payment_count,
	    SUM(amount) AS total_amount
	FROM payments
	WHERE status = 'completed'
	  AND created_at >= $1
	GROUP BY method
	ORDER BY total_amount DESC`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("report.PaymentMethods: %w", err)
	}
	defer rows.Close()

	var results []*repository.PaymentMethodResult
	for rows.Next() {
		var row repository.PaymentMethodResult
		if err := rows.Scan(&row.Method, &row.Count, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("report.PaymentMethods scan: %w", err)
		}
		results = append(results, &row)
	}
	return results, rows.Err()
}
