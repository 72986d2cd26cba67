// Package mock provides test doubles for the fare tracker.
// These mocks are designed for pipeline tests where we need configurable
// behavior (canned responses, errors, call counting) per provider operation.
package mock

import (
	"context"
	"sync"

	"github.com/fare-tracker/amadeus-fare-tracker/internal/domain"
)

// FlightAPI is a configurable mock implementation of domain.FlightAPI.
// It is configured using the builder pattern methods and safe for
// concurrent use.
type FlightAPI struct {
	mu sync.Mutex

	dates    []domain.CandidateDate
	datesErr error

	offersByDate map[string][]domain.Offer
	offersErr    error

	countryByAirport map[string]string
	countryErr       map[string]error

	datesCalls   int
	offersCalls  []string
	lookupCalls  []string
	offerQueries []domain.OfferQuery
}

// NewFlightAPI creates a new mock with empty canned data.
func NewFlightAPI() *FlightAPI {
	return &FlightAPI{
		offersByDate:     make(map[string][]domain.Offer),
		countryByAirport: make(map[string]string),
		countryErr:       make(map[string]error),
	}
}

// WithDates configures the candidate dates returned by CheapestDates.
func (f *FlightAPI) WithDates(dates ...domain.CandidateDate) *FlightAPI {
	f.dates = dates
	return f
}

// WithDatesError configures CheapestDates to fail.
func (f *FlightAPI) WithDatesError(err error) *FlightAPI {
	f.datesErr = err
	return f
}

// WithOffers configures the offers returned for a departure date.
func (f *FlightAPI) WithOffers(date string, offers ...domain.Offer) *FlightAPI {
	f.offersByDate[date] = offers
	return f
}

// WithOffersError configures SearchOffers to fail for every date.
func (f *FlightAPI) WithOffersError(err error) *FlightAPI {
	f.offersErr = err
	return f
}

// WithCountry configures the country an airport resolves to.
func (f *FlightAPI) WithCountry(airport, country string) *FlightAPI {
	f.countryByAirport[airport] = country
	return f
}

// WithCountryError configures a lookup failure for one airport.
func (f *FlightAPI) WithCountryError(airport string, err error) *FlightAPI {
	f.countryErr[airport] = err
	return f
}

// CheapestDates implements domain.FlightAPI.
func (f *FlightAPI) CheapestDates(ctx context.Context, window domain.SearchWindow, limit int) ([]domain.CandidateDate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.datesCalls++
	if f.datesErr != nil {
		return nil, f.datesErr
	}
	if len(f.dates) > limit {
		return f.dates[:limit], nil
	}
	return f.dates, nil
}

// SearchOffers implements domain.FlightAPI.
func (f *FlightAPI) SearchOffers(ctx context.Context, query domain.OfferQuery) ([]domain.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.offersCalls = append(f.offersCalls, query.DepartureDate)
	f.offerQueries = append(f.offerQueries, query)
	if f.offersErr != nil {
		return nil, f.offersErr
	}
	return f.offersByDate[query.DepartureDate], nil
}

// AirportCountry implements domain.FlightAPI.
func (f *FlightAPI) AirportCountry(ctx context.Context, airportCode string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lookupCalls = append(f.lookupCalls, airportCode)
	if err, ok := f.countryErr[airportCode]; ok {
		return "", err
	}
	if country, ok := f.countryByAirport[airportCode]; ok {
		return country, nil
	}
	return "", domain.ErrAirportNotFound
}

// DatesCalls returns how many times CheapestDates was called.
func (f *FlightAPI) DatesCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.datesCalls
}

// OffersCalls returns the departure dates SearchOffers was called with, in order.
func (f *FlightAPI) OffersCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.offersCalls...)
}

// OfferQueries returns every query SearchOffers received, in order.
func (f *FlightAPI) OfferQueries() []domain.OfferQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.OfferQuery(nil), f.offerQueries...)
}

// LookupCalls returns the airport codes AirportCountry was called with, in order.
func (f *FlightAPI) LookupCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lookupCalls...)
}

// Ensure FlightAPI implements domain.FlightAPI at compile time.
var _ domain.FlightAPI = (*FlightAPI)(nil)
