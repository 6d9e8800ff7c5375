package service

import (
	"errors"
	"net/http"
)

// Error is a typed operation failure carrying the status code the transport
// layer should surface. Messages are written for end users.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Failure constructors covering the whole taxonomy.

func errUnauthenticated() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: "Not authenticated"}
}

func errInvalidCredentials() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
}

func errConflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

func errNotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

func errInvalidArgument(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// StatusOf extracts the status code from an operation error, falling back to
// 500 for infrastructure failures.
func StatusOf(err error) int {
	var opErr *Error
	if errors.As(err, &opErr) {
		return opErr.Status
	}
	return http.StatusInternalServerError
}
