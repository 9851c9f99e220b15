package order

import "github.com/shopspring/decimal"

// LineSubtotal implementa la fórmula de línea (servicio de dominio).
// Subtotal = PrecioUnitario × Cantidad - DescuentoLinea
func LineSubtotal(unitPrice decimal.Decimal, quantity int64, discount decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity)).Sub(discount)
}

// Total implementa la fórmula del pedido.
// Total = Subtotal + Impuesto - Descuento
func Total(subtotal, tax, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax).Sub(discount)
}
