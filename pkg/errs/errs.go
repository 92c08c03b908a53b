package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error represents an application error
type Error struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
	Err     error    `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound reports that a referenced entity does not exist. Callers are
// expected to branch on it as a normal outcome, not crash.
func NotFound(resource string) *Error {
	return New(http.StatusNotFound, resource+" not found", nil)
}

// Validation reports malformed or missing required input, naming the
// violated fields.
func Validation(fields ...string) *Error {
	return &Error{
		Code:    http.StatusBadRequest,
		Message: "validation failed: " + strings.Join(fields, ", "),
		Fields:  fields,
	}
}

// Storage wraps an underlying persistence failure. It is surfaced unchanged
// to the caller, which decides whether to retry.
func Storage(op string, err error) *Error {
	return New(http.StatusInternalServerError, op+" failed", err)
}

// IsNotFound reports whether err is a not-found Error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == http.StatusNotFound
}

// IsValidation reports whether err is a validation Error.
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == http.StatusBadRequest
}

// HTTPStatus maps err to an HTTP status code for the transport layer.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return http.StatusInternalServerError
}
