package domain

import "context"

//go:generate mockgen -source=provider.go -destination=provider_mock.go -package=domain

// OfferQuery defines the parameters for a detailed offer search on a
// single departure date.
type OfferQuery struct {
	// Origin is the IATA code of the departure airport
	Origin string

	// Destination is the IATA code of the arrival airport
	Destination string

	// DepartureDate is the departure date in YYYY-MM-DD format
	DepartureDate string

	// ReturnDate is the return date in YYYY-MM-DD format; empty for one-way
	ReturnDate string

	// Adults is the number of adult passengers
	Adults int

	// Currency is the ISO 4217 currency code prices are quoted in
	Currency string

	// MaxResults caps the number of itineraries returned
	MaxResults int
}

// FlightAPI is the provider-side contract the pipeline depends on.
// The live implementation talks to Amadeus; tests substitute doubles.
type FlightAPI interface {
	// CheapestDates returns up to limit candidate departure dates within the
	// window, each with the lowest observed total price.
	CheapestDates(ctx context.Context, window SearchWindow, limit int) ([]CandidateDate, error)

	// SearchOffers returns detailed itineraries for a single departure date.
	// Itineraries with one layover are included (non-direct-only search).
	SearchOffers(ctx context.Context, query OfferQuery) ([]Offer, error)

	// AirportCountry resolves an IATA airport code to its ISO country code
	// via the provider's reference data.
	AirportCountry(ctx context.Context, airportCode string) (string, error)
}
