package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrInvalidCompany = errors.New("empresa seleccionada inválida")
)

// ValidationError agrupa los mensajes de rechazo de un formulario, en el orden en que
// el esquema los produjo. El handler los muestra tal cual junto al formulario.
type ValidationError struct {
	Messages []string
}

// NewValidationError construye el error a partir de los mensajes del esquema.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return "validación: " + strings.Join(e.Messages, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput) sobre cualquier ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
