package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for backend operations
var (
	// ErrServerOffline indicates the backend is unreachable
	ErrServerOffline = errors.New("server is unreachable")

	// ErrAuthFailed indicates the session token was rejected
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden indicates the caller lacks permission for the operation
	ErrForbidden = errors.New("operation not permitted")
)

// APIError carries a non-2xx response with the server's message payload,
// surfaced to the user verbatim.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
