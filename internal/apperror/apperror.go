package apperror

import (
	"errors"
	"net/http"
)

// Sentinel errors for the failure classes the route layer knows how to
// answer. Storage and auth code wraps these with %w so handlers can pick
// a status with errors.Is.
var (
	ErrValidation      = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrStorage         = errors.New("storage failure")
)

// Status maps an error to the HTTP status it should be answered with.
// Anything unclassified is a server error.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
