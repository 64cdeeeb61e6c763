package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	// (including cache misses).
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimited indicates the shared geocoding limiter rejected
	// the call. Retryable by the caller; never retried internally.
	ErrRateLimited = errors.New("rate limited")

	// ErrGeocodeFailed is the sentinel matched by errors.Is for any
	// GeocodeError.
	ErrGeocodeFailed = errors.New("geocode failed")
)

// GeocodeError is the typed failure returned when a detected place
// phrase cannot be resolved. It is distinguishable from an empty
// result set so callers can prompt a rephrase or retry.
type GeocodeError struct {
	Phrase string
	Err    error
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("geocode %q: %v", e.Phrase, e.Err)
}

// Unwrap lets errors.Is match both the sentinel and the cause.
func (e *GeocodeError) Unwrap() []error {
	return []error{ErrGeocodeFailed, e.Err}
}
