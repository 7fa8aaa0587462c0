package models

import (
	"errors"
	"fmt"
)

// Sentinel errors controllers return so handlers can pick the status code
// without inspecting message text.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrForbidden    = errors.New("acción no permitida")
	ErrUnauthorized = errors.New("credenciales inválidas")
)

// ValidationError carries per-field messages back to the client as a 400 body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// FieldError is the single-field shortcut for business-rule failures.
func FieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
