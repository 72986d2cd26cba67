package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/fare-tracker/amadeus-fare-tracker/internal/domain"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/infrastructure/logger"
)

// offerVia builds a MAD->BOG offer routed through the given intermediate airports.
func offerVia(id string, stops ...string) domain.Offer {
	airports := append([]string{"MAD"}, stops...)
	airports = append(airports, "BOG")

	base := time.Date(2025, 12, 5, 8, 0, 0, 0, time.UTC)
	segments := make([]domain.Segment, 0, len(airports)-1)
	for i := 0; i < len(airports)-1; i++ {
		segments = append(segments, domain.Segment{
			CarrierCode:      "IB",
			Number:           "600" + string(rune('0'+i)),
			DepartureAirport: airports[i],
			DepartureAt:      base.Add(time.Duration(i*4) * time.Hour),
			ArrivalAirport:   airports[i+1],
			ArrivalAt:        base.Add(time.Duration(i*4+3) * time.Hour),
		})
	}

	return domain.Offer{
		ID:            id,
		DepartureDate: "2025-12-05",
		Price:         500,
		Currency:      "EUR",
		Duration:      domain.NewDurationInfo(600),
		Segments:      segments,
	}
}

func TestLayoverValidator_ForbiddenCountryRejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := domain.NewMockFlightAPI(ctrl)
	api.EXPECT().AirportCountry(gomock.Any(), "JFK").Return("US", nil)

	v := NewLayoverValidator(api, []string{"US", "CA"}, LookupFailureAllow, logger.Nop())

	assert.False(t, v.Validate(context.Background(), offerVia("1", "JFK"), "BOG"))
}

func TestLayoverValidator_SafeCountryPasses(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := domain.NewMockFlightAPI(ctrl)
	api.EXPECT().AirportCountry(gomock.Any(), "LIS").Return("PT", nil)

	v := NewLayoverValidator(api, []string{"US", "CA"}, LookupFailureAllow, logger.Nop())

	assert.True(t, v.Validate(context.Background(), offerVia("1", "LIS"), "BOG"))
}

func TestLayoverValidator_DirectFlightNeedsNoLookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := domain.NewMockFlightAPI(ctrl)
	// No AirportCountry expectations: any call would fail the test.

	v := NewLayoverValidator(api, []string{"US", "CA"}, LookupFailureAllow, logger.Nop())

	assert.True(t, v.Validate(context.Background(), offerVia("1"), "BOG"))
}

func TestLayoverValidator_DestinationIsNeverLookedUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := domain.NewMockFlightAPI(ctrl)
	// Offer routed MAD->BOG->BOG: the intermediate arrival is the
	// destination itself and must be skipped, so no lookup happens.
	v := NewLayoverValidator(api, []string{"US", "CA"}, LookupFailureAllow, logger.Nop())

	assert.True(t, v.Validate(context.Background(), offerVia("1", "BOG"), "BOG"))
}

func TestLayoverValidator_LookupFailurePolicies(t *testing.T) {
	lookupErr := errors.New("rate limit")

	tests := []struct {
		name   string
		policy LookupFailurePolicy
		want   bool
	}{
		{"allow keeps the offer", LookupFailureAllow, true},
		{"reject drops the offer", LookupFailureReject, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := domain.NewMockFlightAPI(ctrl)
			api.EXPECT().AirportCountry(gomock.Any(), "LIS").Return("", lookupErr)

			v := NewLayoverValidator(api, []string{"US", "CA"}, tt.policy, logger.Nop())

			assert.Equal(t, tt.want, v.Validate(context.Background(), offerVia("1", "LIS"), "BOG"))
		})
	}
}

func TestLayoverValidator_UnresolvedStopDoesNotMaskForbiddenOne(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := domain.NewMockFlightAPI(ctrl)
	api.EXPECT().AirportCountry(gomock.Any(), "LIS").Return("", errors.New("timeout"))
	api.EXPECT().AirportCountry(gomock.Any(), "YYZ").Return("CA", nil)

	v := NewLayoverValidator(api, []string{"US", "CA"}, LookupFailureAllow, logger.Nop())

	// The unresolved LIS stop is allowed through, but YYZ still resolves
	// to a denylisted country and rejects the offer.
	assert.False(t, v.Validate(context.Background(), offerVia("1", "LIS", "YYZ"), "BOG"))
}

func TestLayoverValidator_CountryCodesAreCaseInsensitive(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := domain.NewMockFlightAPI(ctrl)
	api.EXPECT().AirportCountry(gomock.Any(), "JFK").Return("us", nil)

	v := NewLayoverValidator(api, []string{"US"}, LookupFailureAllow, logger.Nop())

	assert.False(t, v.Validate(context.Background(), offerVia("1", "JFK"), "BOG"))
}

func TestLookupFailurePolicy_IsValid(t *testing.T) {
	assert.True(t, LookupFailureAllow.IsValid())
	assert.True(t, LookupFailureReject.IsValid())
	assert.False(t, LookupFailurePolicy("ignore").IsValid())
}
