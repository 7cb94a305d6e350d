package contractpro

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy. Every call site can classify a failure with errors.Is;
// the concrete *APIError carries the backend's own wording when there is one.
var (
	// ErrNetworkUnavailable means the backend never produced a response.
	ErrNetworkUnavailable = errors.New("backend unreachable")

	// ErrNotFound covers 404s: a missing contract, document or endpoint.
	ErrNotFound = errors.New("not found")

	// ErrValidationRejected is a 4xx carrying a server-supplied reason.
	ErrValidationRejected = errors.New("rejected by backend validation")

	// ErrAuthenticationFailed is the login-specific 401.
	ErrAuthenticationFailed = errors.New("invalid credentials")

	// ErrTransitionRejected is any failed contract status change.
	ErrTransitionRejected = errors.New("status transition rejected")

	// ErrSchemaMismatch means the response body did not match the shape
	// this client was built against.
	ErrSchemaMismatch = errors.New("unexpected response shape")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Detail     string
	RequestID  string

	kind error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("contractpro: status=%d detail=%s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("contractpro: status=%d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) Unwrap() error { return e.kind }

// sentinelFor picks the default taxonomy bucket for a status code.
// Operation-specific buckets (login, status transitions) override it.
func sentinelFor(status int) error {
	switch {
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 400 && status < 500:
		return ErrValidationRejected
	default:
		return nil
	}
}
