// Package main is the entry point for the fare tracker daemon. It polls the
// Amadeus API on a cron cadence, filters and ranks the offers, and serves
// the operational endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/fare-tracker/amadeus-fare-tracker/internal/adapter/amadeus"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/adapter/email"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/adapter/ops"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/config"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/domain"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/infrastructure/logger"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/infrastructure/retry"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/infrastructure/timeutil"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/scheduler"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
	startupRunLimit = 5 * time.Minute
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "fare-tracker",
	})

	log.Info().
		Str("origin", cfg.Search.Origin).
		Str("destination", cfg.Search.Destination).
		Str("cron", cfg.Schedule.CronSpec).
		Bool("notify", cfg.Notify.Enabled).
		Msg("Configuration loaded")

	// Build the provider client
	api := amadeus.NewClient(amadeus.Config{
		Host:         cfg.Amadeus.Host,
		ClientID:     cfg.Amadeus.ClientID,
		ClientSecret: cfg.Amadeus.ClientSecret,
		Timeout:      cfg.Amadeus.Timeout,
		Retry:        retryConfig(cfg.Amadeus.RetryAttempts),
	}, log)

	// Build the pipeline and its optional notifier
	notifier, err := buildNotifier(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build notifier")
	}

	pipeline, err := usecase.NewPipeline(api, pipelineConfig(cfg), notifier, cfg.Notify.Enabled, timeutil.NewRealClock(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build pipeline")
	}

	// Build the scheduler
	sched, err := scheduler.New(pipeline, cfg.Schedule.CronSpec, timeutil.NewRealClock(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build scheduler")
	}

	// Create Echo instance for the ops endpoints
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Ops.ReadTimeout
	e.Server.WriteTimeout = cfg.Ops.WriteTimeout

	setupMiddleware(e, log)
	ops.NewHandler(sched, log).RegisterRoutes(e)

	// Start the ops server
	addr := fmt.Sprintf(":%d", cfg.Ops.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting ops server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start ops server")
		}
	}()

	// Run once at startup before handing control to the cron loop
	if cfg.Schedule.RunOnStart {
		runCtx, cancel := context.WithTimeout(context.Background(), startupRunLimit)
		sched.TriggerAndWait(runCtx)
		cancel()
	}

	sched.Start()

	// Wait for interrupt signal
	gracefulShutdown(e, sched, log)
}

// retryConfig maps the configured attempt count onto a retry policy.
// One attempt means no retrying at all.
func retryConfig(attempts int) retry.Config {
	if attempts <= 1 {
		return retry.SingleAttempt
	}
	return retry.ProviderConfig(attempts)
}

// pipelineConfig maps process configuration onto the pipeline settings.
func pipelineConfig(cfg *config.Config) usecase.Config {
	return usecase.Config{
		Window: domain.SearchWindow{
			Origin:       cfg.Search.Origin,
			Destination:  cfg.Search.Destination,
			EarliestDate: cfg.Search.EarliestDate,
			LatestDate:   cfg.Search.LatestDate,
			Adults:       1,
			Currency:     cfg.Search.Currency,
		},
		MaxPrice:           cfg.Search.MaxPrice,
		RoundTrip:          cfg.Search.RoundTrip,
		ReturnDate:         cfg.Search.ReturnDate,
		ReturnOffsetDays:   cfg.Search.ReturnOffsetDays,
		ForbiddenCountries: cfg.Search.ForbiddenCountries,
		OnLookupFailure:    usecase.LookupFailurePolicy(cfg.Search.OnLookupFailure),
	}
}

// buildNotifier creates the email notifier when notifications are enabled.
// With notifications off it returns nil and the pipeline never dispatches.
func buildNotifier(cfg *config.Config, log *logger.Logger) (usecase.Notifier, error) {
	if !cfg.Notify.Enabled {
		return nil, nil
	}

	return email.NewMailer(email.Config{
		Host:        cfg.Notify.SMTPHost,
		Port:        cfg.Notify.SMTPPort,
		From:        cfg.Notify.From,
		Password:    cfg.Notify.Password,
		To:          cfg.Notify.To,
		Origin:      cfg.Search.Origin,
		Destination: cfg.Search.Destination,
		MaxPrice:    cfg.Search.MaxPrice,
		Currency:    cfg.Search.Currency,
	}, log)
}

// setupMiddleware configures the Echo middleware stack.
func setupMiddleware(e *echo.Echo, log *logger.Logger) {
	// Recovery middleware - recover from panics
	e.Use(middleware.Recover())

	// Request ID middleware
	e.Use(middleware.RequestID())

	// Logger middleware with zerolog integration
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("HTTP request")
			return nil
		},
	}))
}

// gracefulShutdown stops the scheduler and the ops server on interrupt.
func gracefulShutdown(e *echo.Echo, sched *scheduler.Scheduler, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down...")

	// Stop firing new runs and wait for an in-flight one
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during ops server shutdown")
	}

	log.Info().Msg("Tracker stopped")
}
