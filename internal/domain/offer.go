package domain

import "time"

// CandidateDate is a departure date paired with the lowest total price the
// provider observed for it. Produced by the cheapest-dates query and
// consumed once per run.
type CandidateDate struct {
	// Date is the departure date in YYYY-MM-DD format
	Date string

	// Price is the lowest observed total price for the date
	Price float64
}

// Segment is one flight leg within an itinerary.
type Segment struct {
	// CarrierCode is the IATA airline code (e.g., "IB")
	CarrierCode string

	// Number is the flight number within the carrier (e.g., "6025")
	Number string

	// DepartureAirport is the IATA code of the departure airport
	DepartureAirport string

	// DepartureAt is the scheduled local departure time
	DepartureAt time.Time

	// ArrivalAirport is the IATA code of the arrival airport
	ArrivalAirport string

	// ArrivalAt is the scheduled local arrival time
	ArrivalAt time.Time
}

// segmentTimeLayout is the format used in per-segment descriptions,
// matching the provider's local timestamps truncated to minutes.
const segmentTimeLayout = "2006-01-02T15:04"

// Describe renders the segment as a short human-readable line,
// e.g. "IB6025 (2025-12-05T11:55 -> 2025-12-05T15:40)".
func (s Segment) Describe() string {
	return s.CarrierCode + s.Number +
		" (" + s.DepartureAt.Format(segmentTimeLayout) +
		" -> " + s.ArrivalAt.Format(segmentTimeLayout) + ")"
}

// Offer is one priced itinerary as returned by the provider for a given
// departure date. It only exists within a single pipeline run.
type Offer struct {
	// ID is the provider-assigned offer identifier
	ID string

	// DepartureDate is the departure date this offer was fetched for, in YYYY-MM-DD format
	DepartureDate string

	// Price is the total price for all passengers
	Price float64

	// Currency is the ISO 4217 currency code of the price
	Currency string

	// Duration is the total itinerary duration
	Duration DurationInfo

	// Segments is the ordered sequence of flight legs
	Segments []Segment
}

// Stops returns the number of intermediate stops (0 = direct flight).
func (o Offer) Stops() int {
	if len(o.Segments) == 0 {
		return 0
	}
	return len(o.Segments) - 1
}

// Layovers returns the IATA codes of every intermediate arrival airport,
// i.e. each segment's arrival except the final one. An intermediate
// arrival equal to the destination is never a layover and is skipped.
func (o Offer) Layovers(destination string) []string {
	if len(o.Segments) < 2 {
		return nil
	}

	layovers := make([]string, 0, len(o.Segments)-1)
	for _, seg := range o.Segments[:len(o.Segments)-1] {
		if seg.ArrivalAirport == destination {
			continue
		}
		layovers = append(layovers, seg.ArrivalAirport)
	}
	return layovers
}

// SegmentDescriptions returns one human-readable line per segment.
func (o Offer) SegmentDescriptions() []string {
	details := make([]string, 0, len(o.Segments))
	for _, seg := range o.Segments {
		details = append(details, seg.Describe())
	}
	return details
}

// ValidatedOffer is an offer that passed the price and layover checks.
// This is the unit that gets ranked and emailed.
type ValidatedOffer struct {
	// ID is the provider-assigned offer identifier
	ID string

	// Date is the departure date in YYYY-MM-DD format
	Date string

	// Price is the total price
	Price float64

	// Currency is the ISO 4217 currency code of the price
	Currency string

	// Carrier is the IATA code of the first segment's carrier
	Carrier string

	// Duration is the human-readable total duration (e.g., "11h 45m")
	Duration string

	// Stops is the number of intermediate stops
	Stops int

	// Details holds one human-readable line per segment
	Details []string
}

// NewValidatedOffer derives a ValidatedOffer from a raw offer.
// The caller is responsible for having applied the price and layover rules.
func NewValidatedOffer(o Offer) ValidatedOffer {
	var carrier string
	if len(o.Segments) > 0 {
		carrier = o.Segments[0].CarrierCode
	}

	return ValidatedOffer{
		ID:       o.ID,
		Date:     o.DepartureDate,
		Price:    o.Price,
		Currency: o.Currency,
		Carrier:  carrier,
		Duration: o.Duration.Formatted,
		Stops:    o.Stops(),
		Details:  o.SegmentDescriptions(),
	}
}

// DurationInfo contains itinerary duration information.
type DurationInfo struct {
	// TotalMinutes is the total duration in minutes
	TotalMinutes int

	// Formatted is a human-readable duration string (e.g., "2h 30m")
	Formatted string
}

// NewDurationInfo creates a DurationInfo from total minutes and formats it.
func NewDurationInfo(totalMinutes int) DurationInfo {
	hours := totalMinutes / 60
	mins := totalMinutes % 60

	var formatted string
	switch {
	case hours > 0 && mins > 0:
		formatted = intToString(hours) + "h " + intToString(mins) + "m"
	case hours > 0:
		formatted = intToString(hours) + "h"
	default:
		formatted = intToString(mins) + "m"
	}

	return DurationInfo{
		TotalMinutes: totalMinutes,
		Formatted:    formatted,
	}
}

// intToString converts a non-negative integer to a string without importing strconv.
func intToString(n int) string {
	if n == 0 {
		return "0"
	}

	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
