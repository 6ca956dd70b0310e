// Package apperr classifies failures so that handlers can answer with a safe
// public message while the underlying cause is only logged.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind groups errors by how they are reported to a client
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindRateLimited
	KindUnavailable
	KindDatabase
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindUnavailable:
		return "unavailable"
	case KindDatabase:
		return "database"
	default:
		return "internal"
	}
}

// StatusCode returns the HTTP status for the kind
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is an application error. Message is safe to show to clients; Err is not.
type Error struct {
	Kind    Kind
	Message string
	Op      string
	Err     error
	Fields  map[string]string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error
func (e *Error) StatusCode() int {
	return e.Kind.StatusCode()
}

// NotFound reports a missing resource
func NotFound(op, message string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: message}
}

// Database wraps a failed query
func Database(op, message string, err error) *Error {
	return &Error{Kind: KindDatabase, Op: op, Message: message, Err: err}
}

// Validation reports bad client input
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Unavailable reports a dependency that cannot currently serve requests
func Unavailable(op, message string, err error) *Error {
	return &Error{Kind: KindUnavailable, Op: op, Message: message, Err: err}
}

// RateLimited reports a client over its request budget
func RateLimited(message string) *Error {
	return &Error{Kind: KindRateLimited, Message: message}
}

// Internal wraps an unexpected failure
func Internal(op string, err error) *Error {
	return &Error{Kind: KindInternal, Op: op, Message: "Internal server error", Err: err}
}

// As extracts an *Error from err's chain
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindInternal for unclassified errors
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a NotFound error
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// Public returns the status code and message that may be sent to a client.
// Unclassified errors never expose their text.
func Public(err error) (int, string) {
	if appErr, ok := As(err); ok {
		return appErr.StatusCode(), appErr.Message
	}
	return http.StatusInternalServerError, "Internal server error"
}

// FromValidator converts validator failures into a Validation error with one
// entry per offending field. Any other error becomes a generic Validation error.
func FromValidator(err error) *Error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Kind: KindValidation, Message: "Invalid request parameters", Err: err}
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[lowerFirst(fe.Field())] = describe(fe)
	}
	return &Error{Kind: KindValidation, Message: "Invalid request parameters", Fields: fields, Err: err}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
