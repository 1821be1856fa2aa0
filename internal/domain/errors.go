package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrBatchNotFound     = errors.New("lote no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrInvalidPercentage = errors.New("porcentaje de devolución fuera de rango (0-100)")
	ErrNoBatchesSelected = errors.New("no batches selected") // el front espera "No batches selected."
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrDuplicateReturn   = errors.New("la devolución ya fue registrada (clave de idempotencia repetida)")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrBatchNotActive    = errors.New("el lote ya no está activo")
)
