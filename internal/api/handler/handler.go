// Package handler provides HTTP handlers for the service's entry points.
// The reconcile and reset endpoints carry no request body: they exist to be
// hit by a scheduler (Cloud Scheduler, cron) or a human.
package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nonobot/nono-alert/internal/api/respond"
	"github.com/nonobot/nono-alert/internal/nohitter"
)

// Runner is the slice of the reconciliation engine the handlers invoke.
type Runner interface {
	Reconcile(ctx context.Context) (*nohitter.Report, error)
	Reset(ctx context.Context) *nohitter.ResetReport
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	runner Runner
	pool   *pgxpool.Pool

	mu     sync.Mutex
	last   *nohitter.Report
	lastAt time.Time
}

// New creates a Handler. pool may be nil in tests; only /health/db uses it.
func New(runner Runner, pool *pgxpool.Pool) *Handler {
	return &Handler{runner: runner, pool: pool}
}

// Root serves API info at /.
// @Summary API root info
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "NoNo Alert",
		"version": "1.0.0",
		"status":  "running",
		"endpoints": []string{
			"/reconcile", "/reset", "/status", "/health", "/health/db",
		},
	})
}

// Reconcile runs one reconciliation pass.
// Returns 200 with a run report whenever partition + per-team processing
// completes, even with isolated per-team errors (they are in the report).
// Returns 400 only when the upstream fetch phase fails, before any writes.
// @Summary Run reconciliation
// @Tags reconcile
// @Produce json
// @Success 200 {object} nohitter.Report
// @Failure 400 {object} respond.ErrorResponse
// @Router /reconcile [post]
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.runner.Reconcile(r.Context())
	if err != nil {
		var upstream *nohitter.UpstreamError
		code := "RECONCILE_FAILED"
		if errors.As(err, &upstream) {
			code = "UPSTREAM_ERROR"
		}
		respond.WriteErrorDetail(w, http.StatusBadRequest, code,
			"Live game fetch failed", err.Error())
		return
	}

	h.mu.Lock()
	h.last = report
	h.lastAt = time.Now().UTC()
	h.mu.Unlock()

	respond.WriteJSONObject(w, http.StatusOK, report)
}

// Reset clears every team's no-hitter flags. Always 200: the reset contract
// is best effort and row failures are logged, not surfaced.
// @Summary Reset all team flags
// @Tags reconcile
// @Produce json
// @Success 200 {object} nohitter.ResetReport
// @Router /reset [post]
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	report := h.runner.Reset(r.Context())
	respond.WriteJSONObject(w, http.StatusOK, report)
}

// Status returns the most recent reconcile report from this process.
// @Summary Last reconcile report
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	last, lastAt := h.last, h.lastAt
	h.mu.Unlock()

	if last == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"last_run": nil,
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"last_run":    last,
		"last_run_at": lastAt.Format(time.RFC3339),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	var n int
	err := h.pool.QueryRow(r.Context(), "health_check").Scan(&n)
	if err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
