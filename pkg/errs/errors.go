// Package errs defines the typed errors the catalog raises and the HTTP status each one maps to.
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Error is a domain error carrying the HTTP status it is rendered with.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with the given status and formatted message.
func New(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a 404 Error.
func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, format, args...)
}

// Conflict creates a 409 Error.
func Conflict(format string, args ...any) *Error {
	return New(http.StatusConflict, format, args...)
}

// Unprocessable creates a 422 Error.
func Unprocessable(format string, args ...any) *Error {
	return New(http.StatusUnprocessableEntity, format, args...)
}

// IsNotFound reports whether err is, or wraps, a 404 Error.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// StatusOf returns the status of the Error found in err's chain, or 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	if errors.As(err, new(ValidationError)) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// ValidationError maps a field name to a human readable message. It is always rendered
// with status 422.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
