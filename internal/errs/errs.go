// Package errs define el error HTTP de la API y el Error Responder que lo
// convierte en respuesta (texto/HTML con el mensaje, o JSON para errores de campo).
package errs

import (
	"fmt"
	"net/http"
)

// FieldError describe un problema de validación de un campo del body.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Error es el único tipo que el responder sabe renderizar con su status.
// Cualquier otro error termina como 500 genérico.
type Error struct {
	Status  int
	Message string
	Fields  []FieldError

	// Cause no se expone al cliente; solo se loguea.
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// NotFound usa el formato "Cannot METHOD path" de los 404.
func NotFound(method, path string) *Error {
	return New(http.StatusNotFound, fmt.Sprintf("Cannot %s %s", method, path))
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized() *Error {
	return New(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
}

func Unprocessable(fields []FieldError) *Error {
	return &Error{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Fields:  fields,
	}
}

func TooLarge(message string) *Error {
	return New(http.StatusRequestEntityTooLarge, message)
}

// Internal oculta la causa detrás del texto estándar del status.
func Internal(cause error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Message: http.StatusText(http.StatusInternalServerError),
		Cause:   cause,
	}
}
