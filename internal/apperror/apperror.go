package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fekuna/omnipos-inventory-service/pkg/database/postgres"
)

type Kind string

const (
	KindValidationFailed  Kind = "VALIDATION_FAILED"
	KindNotFound          Kind = "NOT_FOUND"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
	KindConflict          Kind = "CONFLICT"
	KindInvalidArgument   Kind = "INVALID_ARGUMENT"
	KindInvalidState      Kind = "INVALID_STATE"
	KindServerError       Kind = "SERVER_ERROR"
)

// FieldError carries one per-field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the typed failure every use case returns.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
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

// Is matches on Kind so callers can write errors.Is(err, apperror.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// Sentinels for errors.Is checks.
var (
	ErrValidationFailed  = &Error{Kind: KindValidationFailed}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInsufficientStock = &Error{Kind: KindInsufficientStock}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrInvalidArgument   = &Error{Kind: KindInvalidArgument}
	ErrInvalidState      = &Error{Kind: KindInvalidState}
	ErrServerError       = &Error{Kind: KindServerError}
)

func ValidationFailed(fields ...FieldError) *Error {
	return &Error{Kind: KindValidationFailed, Message: "validation failed", Fields: fields}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InsufficientStock(format string, args ...any) *Error {
	return &Error{Kind: KindInsufficientStock, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure. The message shown to callers stays generic.
func Internal(err error) *Error {
	return &Error{Kind: KindServerError, Message: "internal server error", Err: err}
}

// From classifies any error, wrapping unknown ones as ServerError.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if postgres.IsInvalidTextRepresentation(err) {
		return &Error{Kind: KindValidationFailed, Message: "malformed identifier", Err: err}
	}
	return Internal(err)
}

// KindOf returns the kind of err, ServerError for untyped errors.
func KindOf(err error) Kind {
	return From(err).Kind
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidationFailed, KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidState:
		return http.StatusConflict
	case KindInsufficientStock:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
