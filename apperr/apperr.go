// Package apperr is the error taxonomy shared by services and handlers.
// Handlers map a *Error to an HTTP status + {message} body in one place.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
	// Field is set for KindConflict to name the violated unique column.
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func Conflict(field string) *Error {
	return &Error{
		Kind:    KindConflict,
		Message: field + " already in use",
		Field:   field,
	}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// FromDB translates a gorm error into a taxonomy error. field names the
// unique column a duplicate would violate; unique violations arrive as the
// typed gorm.ErrDuplicatedKey (TranslateError), never matched by message text.
func FromDB(err error, entity, field string) *Error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict(field)
	default:
		return Internal(err)
	}
}

// As unwraps err into a *Error, or wraps it as internal.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
