package api

import (
	"errors"
	"net/http"
)

// APIError is a failed backend call or a transport failure. It carries the
// backend's message when one was returned.
type APIError struct {
	StatusCode int
	Code       string
	Message    string

	// transport marks errors where no HTTP response arrived at all.
	transport bool
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "an unexpected error occurred"
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnreachable reports whether err is a transport-level failure, meaning
// the backend never answered. List views fall back to the offline cache
// in this case.
func IsUnreachable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.transport
}

// ErrorMessage extracts the user-facing text for any error, preferring the
// backend message, then the transport error's own text, then a generic
// fallback.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "an unexpected error occurred"
}
