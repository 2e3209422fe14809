package apperror

import (
	"fmt"
	"net/http"
)

type Type int

const (
	TypeValidation Type = iota // 400
	TypeNotFound               // 404
	TypeConflict               // 409
	TypeInternal               // 500
)

type Error struct {
	Type    Type
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(field, message string) *Error {
	return &Error{Type: TypeValidation, Message: message, Field: field}
}

func NotFound(entity, id string) *Error {
	return &Error{Type: TypeNotFound, Message: fmt.Sprintf("%s %q not found", entity, id)}
}

func Conflict(message string) *Error {
	return &Error{Type: TypeConflict, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Type: TypeInternal, Message: message, Err: err}
}

func HTTPStatus(err *Error) int {
	switch err.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
