package domain

import "errors"

// Errores de dominio (sin dependencias externas). La taxonomía es:
// not-found, validación, conflicto (clave única) y estado (transición inválida).
// Todos se detectan de forma síncrona y ningún caso se reintenta.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrOverPayment        = errors.New("el pago excede el total pendiente del pedido")
	ErrOrderCancelled     = errors.New("el pedido ya está cancelado")
	ErrPaymentRefunded    = errors.New("el pago ya fue reembolsado")
)
