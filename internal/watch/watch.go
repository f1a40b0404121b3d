// Package watch runs the in-process trigger loop: reconcile on an interval
// and a daily flag reset. Deployments with an external HTTP scheduler run
// with the loop disabled and hit /reconcile instead.
package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/nonobot/nono-alert/internal/nohitter"
)

// Config controls the watch loop. Zero Interval disables it.
type Config struct {
	Interval  time.Duration // reconcile cadence
	ResetHour int           // local hour for the daily flag reset
}

// Start runs the loop. Blocks until ctx is cancelled. Intended to be called
// with `go`. Cycles run strictly serially on one goroutine, so the built-in
// trigger can never race itself over a team row.
func Start(ctx context.Context, engine *nohitter.Engine, cfg Config, logger *slog.Logger) {
	if cfg.Interval <= 0 {
		logger.Info("Watch loop disabled")
		return
	}
	logger.Info("Watch loop started", "interval", cfg.Interval, "reset_hour", cfg.ResetHour)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	resetTimer := time.NewTimer(untilNextReset(time.Now(), cfg.ResetHour))
	defer resetTimer.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := engine.Reconcile(ctx); err != nil {
				logger.Error("Scheduled reconcile failed", "error", err)
			}
		case <-resetTimer.C:
			engine.Reset(ctx)
			resetTimer.Reset(untilNextReset(time.Now(), cfg.ResetHour))
		case <-ctx.Done():
			logger.Info("Watch loop stopped")
			return
		}
	}
}

// untilNextReset returns the duration until the next occurrence of hour
// o'clock local time, always in the future.
func untilNextReset(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}
