package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validWindow returns a search window that passes validation.
func validWindow() SearchWindow {
	return SearchWindow{
		Origin:       "MAD",
		Destination:  "BOG",
		EarliestDate: "2025-12-01",
		LatestDate:   "2025-12-21",
		Adults:       1,
		Currency:     "EUR",
	}
}

func TestSearchWindow_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SearchWindow)
		wantErr string
	}{
		{
			name:   "valid window",
			mutate: func(w *SearchWindow) {},
		},
		{
			name:    "missing origin",
			mutate:  func(w *SearchWindow) { w.Origin = "" },
			wantErr: "origin is required",
		},
		{
			name:    "lowercase origin",
			mutate:  func(w *SearchWindow) { w.Origin = "mad" },
			wantErr: "must be a valid 3-letter IATA code",
		},
		{
			name:    "missing destination",
			mutate:  func(w *SearchWindow) { w.Destination = "" },
			wantErr: "destination is required",
		},
		{
			name:    "same origin and destination",
			mutate:  func(w *SearchWindow) { w.Destination = "MAD" },
			wantErr: "must be different",
		},
		{
			name:    "missing earliest date",
			mutate:  func(w *SearchWindow) { w.EarliestDate = "" },
			wantErr: "earliest date is required",
		},
		{
			name:    "malformed latest date",
			mutate:  func(w *SearchWindow) { w.LatestDate = "21-12-2025" },
			wantErr: "must be in YYYY-MM-DD format",
		},
		{
			name:    "impossible date",
			mutate:  func(w *SearchWindow) { w.EarliestDate = "2025-02-30" },
			wantErr: "not a valid date",
		},
		{
			name: "inverted range",
			mutate: func(w *SearchWindow) {
				w.EarliestDate = "2025-12-21"
				w.LatestDate = "2025-12-01"
			},
			wantErr: "before earliest date",
		},
		{
			name:    "zero adults",
			mutate:  func(w *SearchWindow) { w.Adults = 0 },
			wantErr: "exactly one adult",
		},
		{
			name:    "two adults",
			mutate:  func(w *SearchWindow) { w.Adults = 2 },
			wantErr: "exactly one adult",
		},
		{
			name:    "bad currency",
			mutate:  func(w *SearchWindow) { w.Currency = "eur" },
			wantErr: "ISO 4217",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWindow()
			tt.mutate(&w)

			err := w.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidWindow)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSearchWindow_DateRange(t *testing.T) {
	w := validWindow()
	assert.Equal(t, "2025-12-01,2025-12-21", w.DateRange())
}
