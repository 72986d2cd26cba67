package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fare-tracker/amadeus-fare-tracker/internal/domain"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/infrastructure/logger"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/infrastructure/timeutil"
)

// Result-set caps for one pipeline run.
const (
	// MaxCandidateDates is the number of cheapest departure dates requested.
	MaxCandidateDates = 3

	// MaxOffersPerDate caps the detailed itineraries fetched per date.
	MaxOffersPerDate = 10

	// TopOffers is the number of lowest-priced offers kept for notification.
	TopOffers = 5
)

// Config holds the immutable settings of the pipeline. It is built once
// from process configuration; the pipeline itself keeps no state between runs.
type Config struct {
	// Window is the fixed route and date range to poll
	Window domain.SearchWindow

	// MaxPrice is the price ceiling; offers above it are discarded
	MaxPrice float64

	// RoundTrip requests return itineraries when true
	RoundTrip bool

	// ReturnDate pins the return leg to a fixed date; empty derives it
	// from the departure date plus ReturnOffsetDays
	ReturnDate       string
	ReturnOffsetDays int

	// ForbiddenCountries are ISO codes rejected as layover territory
	ForbiddenCountries []string

	// OnLookupFailure is applied when a layover lookup fails
	OnLookupFailure LookupFailurePolicy
}

// Validate checks the pipeline configuration.
func (c *Config) Validate() error {
	if err := c.Window.Validate(); err != nil {
		return err
	}
	if c.MaxPrice <= 0 {
		return fmt.Errorf("max price must be positive, got %v", c.MaxPrice)
	}
	if !c.OnLookupFailure.IsValid() {
		return fmt.Errorf("unknown lookup-failure policy %q", c.OnLookupFailure)
	}
	if c.RoundTrip && c.ReturnDate == "" && c.ReturnOffsetDays < 1 {
		return fmt.Errorf("round-trip mode needs a return date or a positive return offset")
	}
	return nil
}

// RunResult is the outcome of one pipeline run.
type RunResult struct {
	// RunID identifies the run in logs and status reports
	RunID string

	// StartedAt and FinishedAt bound the run
	StartedAt  time.Time
	FinishedAt time.Time

	// DatesFound is the number of candidate dates the provider returned
	DatesFound int

	// DatesSearched is the number of dates that passed the ceiling pre-filter
	DatesSearched int

	// Offers is the ranked list of surviving offers, ascending by price, at most TopOffers long
	Offers []domain.ValidatedOffer
}

// Notifier dispatches the ranked offers of a successful run.
type Notifier interface {
	Send(ctx context.Context, offers []domain.ValidatedOffer) error
}

// Pipeline is one tracker invocation: discover cheap dates, fetch offers,
// validate layovers, rank, and optionally notify.
type Pipeline interface {
	Run(ctx context.Context) (*RunResult, error)
}

// pipeline implements Pipeline. It is stateless and re-entrant per invocation.
type pipeline struct {
	api           domain.FlightAPI
	cfg           Config
	validator     *LayoverValidator
	notifier      Notifier
	notifyEnabled bool
	clock         timeutil.Clock
	log           *logger.Logger
}

// NewPipeline creates a Pipeline. notifier may be nil when notifications
// are disabled; notifyEnabled makes the dormant dispatch path explicit.
func NewPipeline(api domain.FlightAPI, cfg Config, notifier Notifier, notifyEnabled bool, clock timeutil.Clock, log *logger.Logger) (Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline config: %w", err)
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}

	return &pipeline{
		api:           api,
		cfg:           cfg,
		validator:     NewLayoverValidator(api, cfg.ForbiddenCountries, cfg.OnLookupFailure, log),
		notifier:      notifier,
		notifyEnabled: notifyEnabled && notifier != nil,
		clock:         clock,
		log:           log,
	}, nil
}

// Run implements Pipeline. A provider failure at the cheapest-dates or
// offer-search stage aborts the run; the caller logs it and waits for the
// next trigger.
func (p *pipeline) Run(ctx context.Context) (*RunResult, error) {
	runID := uuid.NewString()
	log := p.log.WithRunID(runID)
	startedAt := p.clock.Now()

	log.Info().
		Str("origin", p.cfg.Window.Origin).
		Str("destination", p.cfg.Window.Destination).
		Str("date_range", p.cfg.Window.DateRange()).
		Float64("max_price", p.cfg.MaxPrice).
		Msg("Search started")

	dates, err := p.api.CheapestDates(ctx, p.cfg.Window, MaxCandidateDates)
	if err != nil {
		return nil, fmt.Errorf("cheapest dates: %w", err)
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: window %s", domain.ErrNoDatesFound, p.cfg.Window.DateRange())
	}

	for _, d := range dates {
		log.Info().Str("date", d.Date).Float64("price", d.Price).Msg("Candidate date")
	}

	result := &RunResult{
		RunID:      runID,
		StartedAt:  startedAt,
		DatesFound: len(dates),
	}

	var valid []domain.ValidatedOffer
	for _, date := range dates {
		// Dates whose cheapest observed price already busts the ceiling are
		// not worth a detailed query. A later offer could in theory still be
		// cheaper than the summary price; that false negative is accepted.
		if date.Price > p.cfg.MaxPrice {
			log.Info().Str("date", date.Date).Float64("price", date.Price).Msg("Date over budget, skipped")
			continue
		}
		result.DatesSearched++

		offers, err := p.fetchOffers(ctx, date.Date)
		if err != nil {
			return nil, fmt.Errorf("offers for %s: %w", date.Date, err)
		}
		log.Info().Str("date", date.Date).Int("offers", len(offers)).Msg("Offers fetched")

		for _, offer := range offers {
			if offer.Price > p.cfg.MaxPrice {
				continue
			}
			if !p.validator.Validate(ctx, offer, p.cfg.Window.Destination) {
				continue
			}
			valid = append(valid, domain.NewValidatedOffer(offer))
		}
	}

	result.Offers = RankOffers(valid, TopOffers)
	result.FinishedAt = p.clock.Now()

	if len(result.Offers) == 0 {
		log.Info().Msg("No good offers this run")
		return result, nil
	}

	log.Info().
		Int("count", len(result.Offers)).
		Float64("cheapest", result.Offers[0].Price).
		Msg("Good offers found")

	if p.notifyEnabled {
		if err := p.notifier.Send(ctx, result.Offers); err != nil {
			// The run itself succeeded; a notification failure is not fatal.
			log.Error().Err(err).Msg("Notification dispatch failed")
		} else {
			log.Info().Msg("Notification sent")
		}
	}

	return result, nil
}

// fetchOffers queries detailed itineraries for one departure date.
func (p *pipeline) fetchOffers(ctx context.Context, departureDate string) ([]domain.Offer, error) {
	query := domain.OfferQuery{
		Origin:        p.cfg.Window.Origin,
		Destination:   p.cfg.Window.Destination,
		DepartureDate: departureDate,
		Adults:        p.cfg.Window.Adults,
		Currency:      p.cfg.Window.Currency,
		MaxResults:    MaxOffersPerDate,
	}

	if p.cfg.RoundTrip {
		returnDate, err := p.returnDateFor(departureDate)
		if err != nil {
			return nil, err
		}
		query.ReturnDate = returnDate
	}

	return p.api.SearchOffers(ctx, query)
}

// returnDateFor resolves the return leg date for a departure date: a fixed
// configured date when present, otherwise departure plus the configured offset.
func (p *pipeline) returnDateFor(departureDate string) (string, error) {
	if p.cfg.ReturnDate != "" {
		return p.cfg.ReturnDate, nil
	}

	departure, err := time.Parse("2006-01-02", departureDate)
	if err != nil {
		return "", fmt.Errorf("parse departure date %q: %w", departureDate, err)
	}
	return departure.AddDate(0, 0, p.cfg.ReturnOffsetDays).Format("2006-01-02"), nil
}

// Ensure pipeline implements Pipeline at compile time.
var _ Pipeline = (*pipeline)(nil)
