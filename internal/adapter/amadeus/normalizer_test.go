package amadeus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODurationMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"PT11H45M", 705},
		{"PT2H", 120},
		{"PT150M", 150},
		{"PT0M", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseISODurationMinutes(tt.input))
		})
	}
}

func TestParseLocalTime(t *testing.T) {
	t.Run("naive local timestamp", func(t *testing.T) {
		got, err := parseLocalTime("2025-12-05T11:55:00")
		require.NoError(t, err)
		assert.Equal(t, 2025, got.Year())
		assert.Equal(t, 11, got.Hour())
		assert.Equal(t, 55, got.Minute())
	})

	t.Run("zone-qualified fallback", func(t *testing.T) {
		_, err := parseLocalTime("2025-12-05T11:55:00Z")
		assert.NoError(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := parseLocalTime("tomorrow at noon")
		assert.Error(t, err)
	})
}

func TestNormalizeDates(t *testing.T) {
	dates := []flightDate{
		{DepartureDate: "2025-12-05", Price: datePrice{Total: "550.00"}},
		{DepartureDate: "2025-12-10", Price: datePrice{Total: "not-a-number"}},
		{DepartureDate: "", Price: datePrice{Total: "580.00"}},
		{DepartureDate: "2025-12-15", Price: datePrice{Total: "580.40"}},
	}

	result := normalizeDates(dates)

	require.Len(t, result, 2)
	assert.Equal(t, "2025-12-05", result[0].Date)
	assert.Equal(t, 550.00, result[0].Price)
	assert.Equal(t, "2025-12-15", result[1].Date)
	assert.Equal(t, 580.40, result[1].Price)
}

func TestNormalizeOffers(t *testing.T) {
	offers := []offerPayload{
		{
			ID:    "1",
			Price: offerPrice{Total: "549.90", Currency: "EUR"},
			Itineraries: []itineraryPayload{
				{
					Duration: "PT11H45M",
					Segments: []segmentPayload{
						{
							Departure:   segmentPoint{IataCode: "MAD", At: "2025-12-05T08:15:00"},
							Arrival:     segmentPoint{IataCode: "LIS", At: "2025-12-05T09:30:00"},
							CarrierCode: "UX",
							Number:      "1013",
						},
						{
							Departure:   segmentPoint{IataCode: "LIS", At: "2025-12-05T11:10:00"},
							Arrival:     segmentPoint{IataCode: "BOG", At: "2025-12-05T16:00:00"},
							CarrierCode: "UX",
							Number:      "0731",
						},
					},
				},
			},
		},
		{
			// No itineraries - skipped
			ID:    "2",
			Price: offerPrice{Total: "300.00", Currency: "EUR"},
		},
		{
			// Unparseable price - skipped
			ID:    "3",
			Price: offerPrice{Total: "free", Currency: "EUR"},
			Itineraries: []itineraryPayload{
				{
					Duration: "PT10H",
					Segments: []segmentPayload{
						{
							Departure: segmentPoint{IataCode: "MAD", At: "2025-12-05T08:15:00"},
							Arrival:   segmentPoint{IataCode: "BOG", At: "2025-12-05T18:15:00"},
						},
					},
				},
			},
		},
	}

	result := normalizeOffers(offers, "2025-12-05")

	require.Len(t, result, 1)
	offer := result[0]
	assert.Equal(t, "1", offer.ID)
	assert.Equal(t, "2025-12-05", offer.DepartureDate)
	assert.Equal(t, 549.90, offer.Price)
	assert.Equal(t, "EUR", offer.Currency)
	assert.Equal(t, 705, offer.Duration.TotalMinutes)
	assert.Equal(t, "11h 45m", offer.Duration.Formatted)
	require.Len(t, offer.Segments, 2)
	assert.Equal(t, "UX", offer.Segments[0].CarrierCode)
	assert.Equal(t, "LIS", offer.Segments[0].ArrivalAirport)
	assert.Equal(t, 1, offer.Stops())
}

func TestNormalizeOffer_BadSegmentTime(t *testing.T) {
	_, err := normalizeOffer(offerPayload{
		ID:    "1",
		Price: offerPrice{Total: "100.00"},
		Itineraries: []itineraryPayload{
			{Segments: []segmentPayload{
				{Departure: segmentPoint{IataCode: "MAD", At: "???"}},
			}},
		},
	}, "2025-12-05")

	assert.Error(t, err)
}
