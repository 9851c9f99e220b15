package dto

import "time"

// ApplyInventoryRequest entrada del ledger: delta firmado con acción y referencia.
type ApplyInventoryRequest struct {
	ProductID       string `json:"product_id"`
	Action          string `json:"action"`
	QuantityChange  int64  `json:"quantity_change"`
	ReferenceNumber string `json:"reference_number"`
	Notes           string `json:"notes"`
}

// AdjustStockRequest fija el stock a una cantidad absoluta (el delta se deriva).
type AdjustStockRequest struct {
	ProductID   string `json:"product_id"`
	NewQuantity int64  `json:"new_quantity"`
	Notes       string `json:"notes"`
}

// InventoryLogResponse entrada del ledger persistida.
type InventoryLogResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	UserID          string    `json:"user_id,omitempty"`
	Action          string    `json:"action"`
	QuantityChange  int64     `json:"quantity_change"`
	QuantityBefore  int64     `json:"quantity_before"`
	QuantityAfter   int64     `json:"quantity_after"`
	ReferenceNumber string    `json:"reference_number,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// InventoryLogListResponse lista paginada del ledger.
type InventoryLogListResponse struct {
	Items []InventoryLogResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// InventorySummaryResponse conteos agregados del inventario.
type InventorySummaryResponse struct {
	TotalProducts int64 `json:"total_products"`
	LowStockCount int64 `json:"low_stock_count"`
	OutOfStock    int64 `json:"out_of_stock_count"`
}
