// Package api holds the JSON envelope shared by every HTTP handler: response
// writers, the error taxonomy and request body binding.
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an error that knows the HTTP status it maps to. Message is shown
// to the caller; Cause is only ever logged.
type Error struct {
	Status  int
	Message string
	Details map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// ValidationError reports a malformed or incomplete request (400).
func ValidationError(msg string, details map[string]string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg, Details: details}
}

// AuthenticationError reports missing or bad credentials (401).
func AuthenticationError(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// AuthorizationError reports an authenticated caller lacking the role (403).
func AuthorizationError(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

// NotFoundError reports that the addressed row does not exist (404).
func NotFoundError(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// ServerError hides cause behind a generic message (500).
func ServerError(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Server error", Cause: cause}
}

// AsError converts any error into the taxonomy; unknown errors become ServerErrors.
func AsError(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return ServerError(err)
}
