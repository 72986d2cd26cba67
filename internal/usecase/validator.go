package usecase

import (
	"context"
	"strings"

	"github.com/fare-tracker/amadeus-fare-tracker/internal/domain"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/infrastructure/logger"
)

// LookupFailurePolicy decides what happens to an offer when an airport
// lookup fails during layover validation.
type LookupFailurePolicy string

const (
	// LookupFailureAllow keeps the offer: an unresolved stop is treated as
	// unconfirmed-safe. A forbidden transit can slip through under lookup
	// failure; that asymmetry is the accepted trade-off.
	LookupFailureAllow LookupFailurePolicy = "allow"

	// LookupFailureReject drops the offer when any stop cannot be resolved.
	LookupFailureReject LookupFailurePolicy = "reject"
)

// IsValid checks if the policy is a known value.
func (p LookupFailurePolicy) IsValid() bool {
	return p == LookupFailureAllow || p == LookupFailureReject
}

// LayoverValidator rejects offers that transit a denylisted country.
type LayoverValidator struct {
	api       domain.FlightAPI
	forbidden map[string]struct{}
	policy    LookupFailurePolicy
	log       *logger.Logger
}

// NewLayoverValidator creates a validator for the given denylisted
// countries (ISO codes, case-insensitive) and lookup-failure policy.
func NewLayoverValidator(api domain.FlightAPI, countries []string, policy LookupFailurePolicy, log *logger.Logger) *LayoverValidator {
	forbidden := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		forbidden[strings.ToUpper(strings.TrimSpace(c))] = struct{}{}
	}

	return &LayoverValidator{
		api:       api,
		forbidden: forbidden,
		policy:    policy,
		log:       log,
	}
}

// Validate reports whether the offer is free of denylisted layovers.
// Every intermediate arrival airport is resolved to a country through the
// provider's reference data; the destination itself is never looked up.
// A direct flight performs zero lookups and always passes.
//
// A failed lookup never aborts the run; it is logged and handled according
// to the configured policy.
func (v *LayoverValidator) Validate(ctx context.Context, offer domain.Offer, destination string) bool {
	for _, airport := range offer.Layovers(destination) {
		country, err := v.api.AirportCountry(ctx, airport)
		if err != nil {
			v.log.Warn().
				Str("offer_id", offer.ID).
				Str("airport", airport).
				Err(err).
				Msg("Layover country not verified")
			if v.policy == LookupFailureReject {
				return false
			}
			continue
		}

		if _, banned := v.forbidden[strings.ToUpper(country)]; banned {
			v.log.Debug().
				Str("offer_id", offer.ID).
				Str("airport", airport).
				Str("country", country).
				Msg("Offer rejected for forbidden layover")
			return false
		}
	}
	return true
}
