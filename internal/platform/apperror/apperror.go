// Package apperror defines the domain error kinds surfaced by the booking
// API and an echo error handler that renders them to JSON. Persistence-layer
// failures that don't carry one of these kinds come out as an opaque 500.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Kind classifies a domain error.
type Kind string

const (
	KindValidation  Kind = "validation_error"
	KindNotFound    Kind = "not_found"
	KindInvalidSlot Kind = "invalid_slot"
	KindConflict    Kind = "conflict"
)

// FieldError reports a single failing field in a validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a domain error with a kind, a caller-facing message, and, for
// validation errors, the full list of failing fields.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %d field(s) invalid", e.Message, len(e.Fields))
	}
	return e.Message
}

// Validation builds a validation error carrying every failing field.
func Validation(fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// NotFound reports that the named resource does not exist.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// InvalidSlot reports a slot that is not offered or already in the past.
func InvalidSlot(msg string) *Error {
	return &Error{Kind: KindInvalidSlot, Message: msg}
}

// Conflict reports a slot already held by a non-cancelled appointment.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// StatusCode maps an error kind to its HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation, KindInvalidSlot:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

type errorBody struct {
	Error  string       `json:"error"`
	Kind   Kind         `json:"kind,omitempty"`
	Fields []FieldError `json:"fields,omitempty"`
}

// HTTPErrorHandler returns an echo error handler that renders domain errors
// with their kind and fields, passes echo HTTP errors through, and hides
// everything else behind a generic 500.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ae *Error
		if errors.As(err, &ae) {
			_ = c.JSON(ae.StatusCode(), errorBody{Error: ae.Message, Kind: ae.Kind, Fields: ae.Fields})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, errorBody{Error: fmt.Sprintf("%v", he.Message)})
			return
		}

		logger.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Msg("unhandled error")
		_ = c.JSON(http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}
