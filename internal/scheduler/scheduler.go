// Package scheduler triggers pipeline runs on a cron cadence and guards
// against overlapping executions.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fare-tracker/amadeus-fare-tracker/internal/infrastructure/logger"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/infrastructure/timeutil"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/usecase"
)

// RunStatus is the recorded outcome of the most recent pipeline run.
type RunStatus struct {
	// RunID identifies the run; empty when the run failed before producing a result
	RunID string `json:"run_id,omitempty"`

	// StartedAt and FinishedAt bound the run
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// OfferCount is the number of ranked offers the run produced
	OfferCount int `json:"offer_count"`

	// CheapestPrice is the lowest ranked price; zero when no offers survived
	CheapestPrice float64 `json:"cheapest_price,omitempty"`

	// Err holds the failure message of an aborted run
	Err string `json:"error,omitempty"`
}

// Scheduler owns the cron loop around the pipeline. At most one run is in
// flight at any time; a trigger that arrives while a run is active is
// dropped, never queued.
type Scheduler struct {
	pipeline usecase.Pipeline
	cron     *cron.Cron
	clock    timeutil.Clock
	log      *logger.Logger

	running atomic.Bool

	mu   sync.Mutex
	last *RunStatus
}

// New creates a Scheduler firing on the given 5-field cron expression.
func New(pipeline usecase.Pipeline, cronSpec string, clock timeutil.Clock, log *logger.Logger) (*Scheduler, error) {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}

	s := &Scheduler{
		pipeline: pipeline,
		cron:     cron.New(),
		clock:    clock,
		log:      log.WithComponent("scheduler"),
	}

	if _, err := s.cron.AddFunc(cronSpec, s.runScheduled); err != nil {
		return nil, fmt.Errorf("cron spec %q: %w", cronSpec, err)
	}
	return s, nil
}

// Start begins firing scheduled runs. It returns immediately.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("Scheduler started")
}

// Stop halts the cron loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("Scheduler stopped")
}

// Trigger starts a run in the background unless one is already in flight.
// It reports whether the run was accepted.
func (s *Scheduler) Trigger() bool {
	if !s.running.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer s.running.Store(false)
		s.execute(context.Background())
	}()
	return true
}

// TriggerAndWait runs the pipeline synchronously unless one is already in
// flight. Used for the eager startup run.
func (s *Scheduler) TriggerAndWait(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		return false
	}
	defer s.running.Store(false)
	s.execute(ctx)
	return true
}

// LastRun returns the most recent run status. The second return value is
// false until a first run has completed.
func (s *Scheduler) LastRun() (RunStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return RunStatus{}, false
	}
	return *s.last, true
}

// runScheduled is the cron callback. A tick that lands while the previous
// run is still active is skipped.
func (s *Scheduler) runScheduled() {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn().Msg("Previous run still in progress, tick skipped")
		return
	}
	defer s.running.Store(false)
	s.execute(context.Background())
}

// execute runs the pipeline once and records the outcome. The caller holds
// the running flag.
func (s *Scheduler) execute(ctx context.Context) {
	startedAt := s.clock.Now()

	result, err := s.pipeline.Run(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Run failed")
		s.record(RunStatus{
			StartedAt:  startedAt,
			FinishedAt: s.clock.Now(),
			Err:        err.Error(),
		})
		return
	}

	status := RunStatus{
		RunID:      result.RunID,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
		OfferCount: len(result.Offers),
	}
	if len(result.Offers) > 0 {
		status.CheapestPrice = result.Offers[0].Price
	}
	s.record(status)
}

// record stores the status of the latest run.
func (s *Scheduler) record(status RunStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &status
}
