// Package apperr classifies business failures so handlers map them to
// stable HTTP status codes instead of collapsing everything into 500.
package apperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Kind int

const (
	KindValidation Kind = iota
	KindState
	KindPolicy
	KindAuthorization
	KindUnauthorized
	KindNotFound
	KindConflict
	KindInternal
)

// Error is a classified business error with a caller-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error    { return &Error{Kind: KindValidation, Message: msg} }
func State(msg string) *Error         { return &Error{Kind: KindState, Message: msg} }
func Policy(msg string) *Error        { return &Error{Kind: KindPolicy, Message: msg} }
func Authorization(msg string) *Error { return &Error{Kind: KindAuthorization, Message: msg} }
func Unauthorized(msg string) *Error  { return &Error{Kind: KindUnauthorized, Message: msg} }
func NotFound(msg string) *Error      { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error      { return &Error{Kind: KindConflict, Message: msg} }

// Internal wraps an unexpected error; the cause is logged, never returned
// to the caller.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

func (k Kind) status() int {
	switch k {
	case KindValidation, KindState, KindPolicy:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a JSON error response. Unclassified errors are
// logged and reported as a plain 500.
func Respond(c echo.Context, err error) error {
	var ae *Error
	if !errors.As(err, &ae) {
		ae = Internal(err)
	}
	if ae.Kind == KindInternal {
		log.Printf("internal error on %s %s: %v", c.Request().Method, c.Request().URL.Path, ae)
	}
	return c.JSON(ae.Kind.status(), echo.Map{"error": ae.Message})
}

// IsKind reports whether err is a classified error of the given kind.
func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}
