package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable marks transport-level failures (connection refused,
	// timeout). No structured detail exists for these.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized marks a 401 response. By the time a caller sees it the
	// gateway has already uninstalled the credential and signalled the login
	// surface.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response carrying the backend's structured detail
// message. Detail is suitable for showing to the user verbatim.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Detail)
}

// Detail extracts the backend's detail message from err, or "" when err does
// not wrap an *APIError.
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

func newAPIError(status int, detail string) *APIError {
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &APIError{Status: status, Detail: detail}
}
