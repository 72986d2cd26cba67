// Package domain contains the core entities and rules for the fare tracker.
// These entities are provider-agnostic and form the foundation upon which all other components are built.
package domain

import (
	"fmt"
	"regexp"
	"time"
)

// SearchWindow defines the fixed route and date range the tracker polls.
// It is built once from configuration at startup and never mutated.
type SearchWindow struct {
	// Origin is the IATA code of the departure airport (e.g., "MAD")
	Origin string

	// Destination is the IATA code of the arrival airport (e.g., "BOG")
	Destination string

	// EarliestDate is the first departure date considered, in YYYY-MM-DD format
	EarliestDate string

	// LatestDate is the last departure date considered, in YYYY-MM-DD format
	LatestDate string

	// Adults is the number of adult passengers. The cheapest-dates
	// endpoint only supports a single adult, so this must be 1.
	Adults int

	// Currency is the ISO 4217 currency code all prices are quoted in
	Currency string
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate checks if the search window is valid.
// Returns a wrapped ErrInvalidWindow error if validation fails.
func (w *SearchWindow) Validate() error {
	if w.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidWindow)
	}
	if !airportCodeRegex.MatchString(w.Origin) {
		return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidWindow, w.Origin)
	}

	if w.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidWindow)
	}
	if !airportCodeRegex.MatchString(w.Destination) {
		return fmt.Errorf("%w: destination must be a valid 3-letter IATA code, got %q", ErrInvalidWindow, w.Destination)
	}

	if w.Origin == w.Destination {
		return fmt.Errorf("%w: origin and destination must be different", ErrInvalidWindow)
	}

	earliest, err := parseWindowDate("earliest date", w.EarliestDate)
	if err != nil {
		return err
	}
	latest, err := parseWindowDate("latest date", w.LatestDate)
	if err != nil {
		return err
	}
	if latest.Before(earliest) {
		return fmt.Errorf("%w: latest date %s is before earliest date %s", ErrInvalidWindow, w.LatestDate, w.EarliestDate)
	}

	if w.Adults != 1 {
		return fmt.Errorf("%w: cheapest-date search supports exactly one adult, got %d", ErrInvalidWindow, w.Adults)
	}

	// Currency codes share the 3-uppercase-letter shape of IATA codes.
	if !airportCodeRegex.MatchString(w.Currency) {
		return fmt.Errorf("%w: currency must be a valid 3-letter ISO 4217 code, got %q", ErrInvalidWindow, w.Currency)
	}

	return nil
}

// DateRange returns the window's date range in the comma-separated form
// the cheapest-dates endpoint expects (e.g., "2025-12-01,2025-12-21").
func (w *SearchWindow) DateRange() string {
	return w.EarliestDate + "," + w.LatestDate
}

// parseWindowDate validates a single YYYY-MM-DD date field.
func parseWindowDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", ErrInvalidWindow, field)
	}
	if !dateRegex.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: %s must be in YYYY-MM-DD format, got %q", ErrInvalidWindow, field, value)
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s is not a valid date: %s", ErrInvalidWindow, field, value)
	}
	return t, nil
}
