package inference

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoAPIKey means the provider needs a key and none was configured.
	ErrNoAPIKey = errors.New("inference: API key required")

	// ErrNoModel means a request had no model and the config has no default.
	ErrNoModel = errors.New("inference: model required")

	// ErrProviderUnavailable means no provider can take the request.
	ErrProviderUnavailable = errors.New("inference: provider unavailable")
)

// APIError is a non-200 answer from the upstream API, carrying the
// status and whatever error detail the body held.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
	Provider   string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("inference [%s]: API error %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("inference [%s]: API error %d (%s): %s", e.Provider, e.StatusCode, e.Code, e.Message)
}

// IsRateLimited reports an HTTP 429.
func (e *APIError) IsRateLimited() bool { return e.StatusCode == http.StatusTooManyRequests }

// IsUnauthorized reports an HTTP 401.
func (e *APIError) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// IsServerError reports any HTTP 5xx.
func (e *APIError) IsServerError() bool { return e.StatusCode >= 500 && e.StatusCode < 600 }

// IsRetryable reports whether a retry has any chance of succeeding:
// rate limits and server-side failures do, client errors do not.
func (e *APIError) IsRetryable() bool { return e.IsRateLimited() || e.IsServerError() }

// ProviderError tags a transport or decoding failure with the provider
// it came from, preserving the cause for errors.Is/As.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("inference [%s]: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// WrapError attaches provider context to err; nil passes through.
func WrapError(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Provider: provider, Err: err}
}
