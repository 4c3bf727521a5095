package store

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a storage error carrying an HTTP status code so handlers can map
// storage failures onto responses without inspecting driver errors.
type Error struct {
	Code    int
	Message string
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

// Is allows errors.Is comparisons against the sentinel errors below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && (t.Message == "" || e.Message == t.Message)
}

var (
	// ErrNotFound indicates the requested record does not exist or is not
	// visible to the caller.
	ErrNotFound = &Error{Code: http.StatusNotFound, Message: "not found"}
	// ErrConflict indicates the write violated a uniqueness or state constraint.
	ErrConflict = &Error{Code: http.StatusConflict, Message: "conflict"}
)

// NotFound creates a not-found error for a named entity.
func NotFound(entity string) *Error {
	return &Error{Code: http.StatusNotFound, Message: entity + " not found"}
}

// Internal wraps an unexpected storage failure.
func Internal(message string, err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// IsNotFound reports whether err is any not-found storage error.
func IsNotFound(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == http.StatusNotFound
	}
	return false
}
