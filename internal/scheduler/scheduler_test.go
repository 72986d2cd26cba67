package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fare-tracker/amadeus-fare-tracker/internal/domain"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/infrastructure/logger"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/infrastructure/timeutil"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/usecase"
)

// fakePipeline is a controllable usecase.Pipeline.
type fakePipeline struct {
	mu      sync.Mutex
	runs    int
	result  *usecase.RunResult
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakePipeline) Run(ctx context.Context) (*usecase.RunResult, error) {
	f.mu.Lock()
	f.runs++
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.result, f.err
}

func (f *fakePipeline) Runs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs
}

func successResult() *usecase.RunResult {
	return &usecase.RunResult{
		RunID:      "run-1",
		StartedAt:  time.Date(2025, 11, 20, 8, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2025, 11, 20, 8, 0, 5, 0, time.UTC),
		Offers: []domain.ValidatedOffer{
			{ID: "a", Price: 433.59, Currency: "EUR"},
			{ID: "b", Price: 489.00, Currency: "EUR"},
		},
	}
}

func newTestScheduler(t *testing.T, p usecase.Pipeline) *Scheduler {
	t.Helper()
	clock := timeutil.NewMockClock(time.Date(2025, 11, 20, 8, 0, 0, 0, time.UTC))
	s, err := New(p, "0 8,14,20 * * *", clock, logger.Nop())
	require.NoError(t, err)
	return s
}

func TestNew_RejectsBadCronSpec(t *testing.T) {
	_, err := New(&fakePipeline{}, "not a cron spec", nil, logger.Nop())
	assert.Error(t, err)
}

func TestTriggerAndWait_RecordsSuccess(t *testing.T) {
	p := &fakePipeline{result: successResult()}
	s := newTestScheduler(t, p)

	accepted := s.TriggerAndWait(context.Background())

	assert.True(t, accepted)
	assert.Equal(t, 1, p.Runs())

	status, ok := s.LastRun()
	require.True(t, ok)
	assert.Equal(t, "run-1", status.RunID)
	assert.Equal(t, 2, status.OfferCount)
	assert.Equal(t, 433.59, status.CheapestPrice)
	assert.Empty(t, status.Err)
}

func TestTriggerAndWait_RecordsFailure(t *testing.T) {
	p := &fakePipeline{err: errors.New("provider down")}
	s := newTestScheduler(t, p)

	s.TriggerAndWait(context.Background())

	status, ok := s.LastRun()
	require.True(t, ok)
	assert.Empty(t, status.RunID)
	assert.Zero(t, status.OfferCount)
	assert.Equal(t, "provider down", status.Err)
	assert.False(t, status.StartedAt.IsZero())
	assert.False(t, status.FinishedAt.IsZero())
}

func TestLastRun_EmptyBeforeFirstRun(t *testing.T) {
	s := newTestScheduler(t, &fakePipeline{result: successResult()})

	_, ok := s.LastRun()
	assert.False(t, ok)
}

func TestTrigger_RejectsOverlappingRun(t *testing.T) {
	p := &fakePipeline{
		result:  successResult(),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	s := newTestScheduler(t, p)

	require.True(t, s.Trigger())
	<-p.started

	// A second trigger while the first run is in flight is dropped.
	assert.False(t, s.Trigger())
	assert.False(t, s.TriggerAndWait(context.Background()))

	close(p.release)
	require.Eventually(t, func() bool {
		_, ok := s.LastRun()
		return ok
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, p.Runs())
	assert.True(t, s.Trigger())
}

func TestTrigger_AllowsSequentialRuns(t *testing.T) {
	p := &fakePipeline{result: successResult()}
	s := newTestScheduler(t, p)

	assert.True(t, s.TriggerAndWait(context.Background()))
	assert.True(t, s.TriggerAndWait(context.Background()))
	assert.Equal(t, 2, p.Runs())
}
