package amadeus

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fare-tracker/amadeus-fare-tracker/internal/domain"
)

// normalizeDates converts cheapest-date entries to domain CandidateDates.
// Entries with an unparseable price are skipped.
func normalizeDates(dates []flightDate) []domain.CandidateDate {
	result := make([]domain.CandidateDate, 0, len(dates))

	for _, d := range dates {
		price, err := strconv.ParseFloat(d.Price.Total, 64)
		if err != nil || d.DepartureDate == "" {
			continue
		}
		result = append(result, domain.CandidateDate{
			Date:  d.DepartureDate,
			Price: price,
		})
	}

	return result
}

// normalizeOffers converts flight-offer payloads to domain Offers.
// Offers that cannot be normalized are skipped.
func normalizeOffers(offers []offerPayload, departureDate string) []domain.Offer {
	result := make([]domain.Offer, 0, len(offers))

	for _, o := range offers {
		normalized, err := normalizeOffer(o, departureDate)
		if err != nil {
			continue
		}
		result = append(result, normalized)
	}

	return result
}

// normalizeOffer converts a single offer payload to a domain Offer.
// The outbound itinerary (the first one) drives the segment list; layover
// rules and the displayed duration apply to it.
func normalizeOffer(o offerPayload, departureDate string) (domain.Offer, error) {
	if len(o.Itineraries) == 0 || len(o.Itineraries[0].Segments) == 0 {
		return domain.Offer{}, fmt.Errorf("offer %s has no segments", o.ID)
	}

	price, err := strconv.ParseFloat(o.Price.Total, 64)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("parse price %q: %w", o.Price.Total, err)
	}

	outbound := o.Itineraries[0]
	segments := make([]domain.Segment, 0, len(outbound.Segments))
	for _, s := range outbound.Segments {
		departAt, err := parseLocalTime(s.Departure.At)
		if err != nil {
			return domain.Offer{}, fmt.Errorf("parse departure time: %w", err)
		}
		arriveAt, err := parseLocalTime(s.Arrival.At)
		if err != nil {
			return domain.Offer{}, fmt.Errorf("parse arrival time: %w", err)
		}
		segments = append(segments, domain.Segment{
			CarrierCode:      s.CarrierCode,
			Number:           s.Number,
			DepartureAirport: s.Departure.IataCode,
			DepartureAt:      departAt,
			ArrivalAirport:   s.Arrival.IataCode,
			ArrivalAt:        arriveAt,
		})
	}

	return domain.Offer{
		ID:            o.ID,
		DepartureDate: departureDate,
		Price:         price,
		Currency:      o.Price.Currency,
		Duration:      domain.NewDurationInfo(parseISODurationMinutes(outbound.Duration)),
		Segments:      segments,
	}, nil
}

// parseLocalTime parses the provider's naive local timestamps,
// e.g. "2025-12-05T11:55:00". Zone-qualified forms are accepted as a fallback.
func parseLocalTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unsupported time format: %q", s)
}

// parseISODurationMinutes converts ISO 8601 durations like "PT11H45M" or
// "PT150M" to total minutes. Unknown designators are ignored.
func parseISODurationMinutes(s string) int {
	s = strings.TrimPrefix(s, "PT")
	total := 0
	var num strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			num.WriteRune(r)
			continue
		}
		v, _ := strconv.Atoi(num.String())
		num.Reset()
		switch r {
		case 'H':
			total += v * 60
		case 'M':
			total += v
		}
	}
	return total
}
