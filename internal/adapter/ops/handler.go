// Package ops exposes the operational HTTP endpoints: health, latest run
// status, and manual run triggering.
package ops

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fare-tracker/amadeus-fare-tracker/internal/infrastructure/logger"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/scheduler"
)

// TrackerService is the slice of the scheduler the handlers need.
type TrackerService interface {
	// Trigger starts a background run; false means one is already in flight.
	Trigger() bool

	// LastRun returns the latest recorded run status, if any.
	LastRun() (scheduler.RunStatus, bool)
}

// Handler serves the operational endpoints.
type Handler struct {
	svc TrackerService
	log *logger.Logger
}

// NewHandler creates a Handler.
func NewHandler(svc TrackerService, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{svc: svc, log: log.WithComponent("ops")}
}

// RegisterRoutes attaches the operational endpoints to the echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	v1 := e.Group("/api/v1")
	v1.GET("/runs/latest", h.LatestRun)
	v1.POST("/runs/trigger", h.TriggerRun)
}

// Health reports process liveness.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// LatestRun returns the status of the most recent pipeline run.
func (h *Handler) LatestRun(c echo.Context) error {
	status, ok := h.svc.LastRun()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "no run has completed yet",
		})
	}
	return c.JSON(http.StatusOK, status)
}

// TriggerRun starts a pipeline run in the background. A run already in
// flight yields a conflict; triggers are dropped, never queued.
func (h *Handler) TriggerRun(c echo.Context) error {
	if !h.svc.Trigger() {
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "a run is already in progress",
		})
	}

	h.log.Info().Msg("Manual run triggered")
	return c.JSON(http.StatusAccepted, map[string]string{"status": "accepted"})
}
