package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderError_WithStatus(t *testing.T) {
	err := &ProviderError{
		Operation:  "flight-offers",
		StatusCode: 429,
		Body:       `{"errors":[{"title":"Rate limit exceeded"}]}`,
	}

	assert.Contains(t, err.Error(), "flight-offers")
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "Rate limit exceeded")
}

func TestProviderError_TransportFailure(t *testing.T) {
	underlying := errors.New("connection refused")
	err := &ProviderError{Operation: "flight-dates", Err: underlying}

	assert.Contains(t, err.Error(), "flight-dates")
	assert.ErrorIs(t, err, underlying)
}

func TestProviderError_As(t *testing.T) {
	var pErr *ProviderError
	wrapped := fmt.Errorf("run aborted: %w", &ProviderError{Operation: "flight-dates", StatusCode: 500})

	require.ErrorAs(t, wrapped, &pErr)
	assert.Equal(t, 500, pErr.StatusCode)
}

func TestSentinelErrors_Wrapping(t *testing.T) {
	err := fmt.Errorf("%w: window is empty", ErrNoDatesFound)
	assert.ErrorIs(t, err, ErrNoDatesFound)
	assert.NotErrorIs(t, err, ErrInvalidWindow)
}
