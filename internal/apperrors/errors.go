// Package apperrors carries HTTP status information on errors so that the
// terminal error handler can render them in one place.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is an error with the status code and client-facing message it should be rendered with
type HTTPError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// New creates an HTTPError; err may be nil
func New(statusCode int, message string, err error) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// NotFound creates a 404 error
func NotFound(message string) *HTTPError {
	return New(http.StatusNotFound, message, nil)
}

// BadRequest creates a 400 error
func BadRequest(message string, err error) *HTTPError {
	return New(http.StatusBadRequest, message, err)
}

// PayloadTooLarge creates a 413 error
func PayloadTooLarge(err error) *HTTPError {
	return New(http.StatusRequestEntityTooLarge, "request entity too large", err)
}

// Internal creates a 500 error wrapping err
func Internal(err error) *HTTPError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// StatusCode extracts the status from an HTTPError anywhere in err's chain, defaulting to 500
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode != 0 {
		return httpErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing message for err
// HTTPErrors use their own message, anything else falls back to err.Error()
func Message(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	return err.Error()
}
