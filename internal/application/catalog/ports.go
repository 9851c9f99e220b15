package catalog

// BarcodeGenerator genera la imagen de código de barras de un producto.
type BarcodeGenerator interface {
	// GeneratePNG codifica el contenido como Code128 y devuelve el PNG.
	GeneratePNG(content string, width, height int) ([]byte, error)
}
