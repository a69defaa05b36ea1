package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidArgument          = errors.New("entrada inválida")
	ErrDuplicateName            = errors.New("ya existe una categoría con ese nombre")
	ErrUnknownCategoryReference = errors.New("una o más categorías no existen")
	ErrHasDependents            = errors.New("la categoría tiene convocatorias asociadas")
	ErrNotFound                 = errors.New("recurso no encontrado")
	ErrConflict                 = errors.New("el recurso fue modificado por otra petición")
	ErrUnavailable              = errors.New("almacenamiento no disponible")
	ErrUnauthorized             = errors.New("no autorizado")
	ErrForbidden                = errors.New("permisos insuficientes")
)

// FieldError describe un fallo de validación sobre un campo concreto.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa los errores de campo de una petición. errors.Is(err, ErrInvalidArgument) es true.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrInvalidArgument.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidArgument }

// Add registra un error de campo.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil devuelve nil si no se registró ningún error, para poder retornarlo directamente.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
