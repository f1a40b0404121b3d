// Command api is the NoNo Alert server: HTTP entry points for the
// reconcile and reset flows, plus an optional in-process watch loop.
//
// Usage:
//
//	nono-api
//	API_PORT=8080 WATCH_INTERVAL_SECONDS=60 nono-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/nonobot/nono-alert/internal/api"
	"github.com/nonobot/nono-alert/internal/config"
	"github.com/nonobot/nono-alert/internal/db"
	"github.com/nonobot/nono-alert/internal/mlb"
	"github.com/nonobot/nono-alert/internal/nohitter"
	"github.com/nonobot/nono-alert/internal/notify"
	"github.com/nonobot/nono-alert/internal/store"
	"github.com/nonobot/nono-alert/internal/watch"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Wire the engine: statsapi client, team store, SMS sender.
	games := mlb.NewClient(cfg.MLBBaseURL, cfg.MLBRequestsPerMinute, logger)
	teams := store.NewTeams(pool.Pool)
	det := nohitter.Detector{MinInnings: cfg.MinInnings, MaxHits: cfg.MaxHits}

	sender := notify.NewSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken,
		cfg.TwilioFromNumber, cfg.AlertToNumber, logger)
	var notifier nohitter.Notifier
	if sender != nil {
		notifier = sender
		logger.Info("SMS sender configured", "sender", sender.String())
	} else {
		logger.Info("SMS sender disabled (no TWILIO_ACCOUNT_SID), detections will be logged only")
	}

	engine := nohitter.New(games, teams, notifier, det, logger)

	// Optional in-process trigger
	go watch.Start(ctx, engine, watch.Config{
		Interval:  cfg.WatchInterval,
		ResetHour: cfg.ResetHour,
	}, logger)

	// Create router
	router := api.NewRouter(engine, pool.Pool, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting NoNo Alert API",
			"addr", addr,
			"environment", cfg.Environment,
			"min_innings", cfg.MinInnings,
			"max_hits", cfg.MaxHits)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
