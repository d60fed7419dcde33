package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrDuplicate         = errors.New("código de producto duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("error de persistencia")
)

// ValidationError describe un campo rechazado antes de cualquier escritura.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Clases de error expuestas a los llamadores (resumen de importación, HTTP, CLI).
const (
	KindValidation        = "VALIDATION"
	KindDuplicateCode     = "DUPLICATE_CODE"
	KindNotFound          = "NOT_FOUND"
	KindInvalidQuantity   = "INVALID_QUANTITY"
	KindInsufficientStock = "INSUFFICIENT_STOCK"
	KindForbidden         = "FORBIDDEN"
	KindUnauthorized      = "UNAUTHORIZED"
	KindPersistence       = "PERSISTENCE"
)

// ErrorKind clasifica un error en una de las clases anteriores.
// Cualquier error no reconocido se considera de persistencia.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidQuantity):
		return KindInvalidQuantity
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrDuplicate):
		return KindDuplicateCode
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInsufficientStock):
		return KindInsufficientStock
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	default:
		return KindPersistence
	}
}
