// Package portal is an HTTP client for the school portal's REST backend.
package portal

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the portal package.
var (
	// ErrUnauthorized is returned when the backend rejects the bearer token
	// or the login credentials.
	ErrUnauthorized = errors.New("not authenticated")

	// ErrForbidden is returned when the user lacks permission for the action.
	ErrForbidden = errors.New("not permitted")

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when the backend cannot be reached or a
	// gateway in front of it reports it down.
	ErrUnavailable = errors.New("portal unavailable")

	// ErrInvalidToken is returned when the stored token cannot be decoded.
	ErrInvalidToken = errors.New("invalid token")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: server error %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Unwrap maps well-known statuses to the package sentinels.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		// a proxy answering for a backend that is down
		return ErrUnavailable
	default:
		return nil
	}
}
