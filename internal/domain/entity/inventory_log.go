package entity

import "time"

// Acciones del ledger de inventario. Se usa un conjunto cerrado (enum) como
// contrato canónico del ledger; la verificación de stock ocurre antes de
// escribir la entrada.
const (
	InventoryActionSale       = "sale"
	InventoryActionPurchase   = "purchase"
	InventoryActionReturn     = "return"
	InventoryActionAdjustment = "adjustment"
	InventoryActionDamage     = "damage"
)

// ValidInventoryAction indica si la acción es una de las conocidas.
func ValidInventoryAction(a string) bool {
	switch a {
	case InventoryActionSale, InventoryActionPurchase, InventoryActionReturn,
		InventoryActionAdjustment, InventoryActionDamage:
		return true
	}
	return false
}

// InventoryLogEntry es una entrada append-only del ledger de stock.
// Invariantes: QuantityAfter = QuantityBefore + QuantityChange y QuantityAfter >= 0.
// Las entradas nunca se borran, ni siquiera cuando el pedido referenciado muta.
type InventoryLogEntry struct {
	ID              string
	ProductID       string
	UserID          string
	Action          string
	QuantityChange  int64 // positivo entrada, negativo salida
	QuantityBefore  int64
	QuantityAfter   int64
	ReferenceNumber string // ej. número de pedido que originó el cambio
	Notes           string
	CreatedAt       time.Time
}
