package providers

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable is returned when a wrapper has no inner provider.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrCircuitOpen is returned without calling upstream while the breaker is open.
	ErrCircuitOpen = errors.New("provider circuit open")
)

// StatusError captures non-200 responses from upstream providers.
type StatusError struct {
	Provider   string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
	if e.Endpoint != "" {
		msg = fmt.Sprintf("%s: %s: unexpected status %d", e.Provider, e.Endpoint, e.StatusCode)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// NotFound reports a 404, which the backend uses for rounds with no data yet.
func (e *StatusError) NotFound() bool {
	return e.StatusCode == 404
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}
