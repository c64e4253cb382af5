package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized: the credential is missing, expired or rejected (401).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden: valid credential, insufficient rights (403).
	ErrForbidden = errors.New("forbidden")
	// ErrServer: transient upstream failure (5xx).
	ErrServer = errors.New("server error")
	// ErrUnavailable: network failure or timeout; no response was received.
	ErrUnavailable = errors.New("server unavailable")
	// ErrApplication: any other non-2xx; a business-rule rejection.
	ErrApplication = errors.New("request rejected")
)

// APIError is a non-2xx response. Kind is one of ErrUnauthorized,
// ErrForbidden, ErrServer or ErrApplication and is what errors.Is matches.
// Message is the body's "error" field, verbatim, when the server sent one.
type APIError struct {
	Kind       error
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %d %s", e.Kind, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// ServerMessage returns the server-supplied message carried by err, if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

func kindForStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrApplication
	}
}
