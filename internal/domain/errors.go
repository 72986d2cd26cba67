package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the tracker domain.
// Use errors.Is to test for these; layers above wrap them with context.
var (
	// ErrInvalidWindow indicates the configured search window failed validation.
	ErrInvalidWindow = errors.New("invalid search window")

	// ErrNoDatesFound indicates the cheapest-dates query returned no usable data.
	// The current run aborts; the process keeps waiting for the next trigger.
	ErrNoDatesFound = errors.New("no candidate dates found")

	// ErrAirportNotFound indicates the reference-data lookup could not resolve
	// an airport code to a country.
	ErrAirportNotFound = errors.New("airport not found")
)

// ProviderError carries the diagnostic payload of a failed provider call.
type ProviderError struct {
	// Operation is the provider operation that failed (e.g., "flight-offers")
	Operation string

	// StatusCode is the HTTP status returned by the provider, 0 for transport errors
	StatusCode int

	// Body is the raw response body the provider attached, if any
	Body string

	// Err is the underlying error, if any
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider %s failed: status %d: %s", e.Operation, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("provider %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ProviderError) Unwrap() error {
	return e.Err
}
