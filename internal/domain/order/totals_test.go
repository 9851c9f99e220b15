package order_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/pos-backend/internal/domain/order"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fórmulas de totales: son la base del coordinador de pedidos, así que se
// verifican con valores exactos (decimal, sin float).
// ──────────────────────────────────────────────────────────────────────────────

func TestLineSubtotal_SinDescuento(t *testing.T) {
	got := order.LineSubtotal(decimal.NewFromFloat(2.50), 4, decimal.Zero)
	assert.True(t, got.Equal(decimal.NewFromInt(10)), "2.50 × 4 = 10, got %s", got)
}

func TestLineSubtotal_ConDescuento(t *testing.T) {
	got := order.LineSubtotal(decimal.NewFromFloat(19.99), 3, decimal.NewFromFloat(5.97))
	want := decimal.NewFromFloat(54.00)
	assert.True(t, got.Equal(want), "19.99 × 3 - 5.97 = 54.00, got %s", got)
}

func TestTotal_SubtotalMasImpuestoMenosDescuento(t *testing.T) {
	got := order.Total(decimal.NewFromInt(100), decimal.NewFromInt(19), decimal.NewFromInt(9))
	assert.True(t, got.Equal(decimal.NewFromInt(110)))
}

func TestTotal_CerosPorDefecto(t *testing.T) {
	subtotal := decimal.NewFromFloat(42.42)
	got := order.Total(subtotal, decimal.Zero, decimal.Zero)
	assert.True(t, got.Equal(subtotal), "con tax y discount en cero, total == subtotal")
}
