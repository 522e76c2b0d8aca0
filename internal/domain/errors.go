package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Una operación rechazada con cualquiera de ellos no modifica el estado del ledger.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrEmptyQuantity     = errors.New("la cantidad debe ser mayor que cero")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrMalformedBackup   = errors.New("respaldo con formato inválido")
)
