// Package barcode genera imágenes de código de barras para productos del catálogo.
package barcode

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/tu-usuario/pos-backend/internal/application/catalog"
)

var _ catalog.BarcodeGenerator = (*Code128Generator)(nil)

// Code128Generator implementa catalog.BarcodeGenerator con Code128.
type Code128Generator struct{}

// NewCode128Generator construye el generador.
func NewCode128Generator() *Code128Generator { return &Code128Generator{} }

// GeneratePNG codifica el contenido como Code128 y devuelve los bytes PNG.
func (g *Code128Generator) GeneratePNG(content string, width, height int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("barcode: contenido vacío")
	}
	bc, err := code128.Encode(content)
	if err != nil {
		return nil, fmt.Errorf("barcode: codificar: %w", err)
	}
	scaled, err := barcode.Scale(bc, width, height)
	if err != nil {
		return nil, fmt.Errorf("barcode: escalar: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("barcode: codificar PNG: %w", err)
	}
	return buf.Bytes(), nil
}
