// Command nonoctl is the NoNo Alert operations CLI: one-shot runs of the
// flows the server exposes over HTTP.
//
// Usage:
//
//	nonoctl reconcile
//	nonoctl reset
//	nonoctl seed teams
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nonobot/nono-alert/internal/config"
	"github.com/nonobot/nono-alert/internal/db"
	"github.com/nonobot/nono-alert/internal/mlb"
	"github.com/nonobot/nono-alert/internal/nohitter"
	"github.com/nonobot/nono-alert/internal/notify"
	"github.com/nonobot/nono-alert/internal/seed"
	"github.com/nonobot/nono-alert/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "nonoctl",
		Short: "NoNo Alert operations CLI",
	}

	root.AddCommand(reconcileCmd())
	root.AddCommand(resetCmd())
	root.AddCommand(seedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// reconcile command
// --------------------------------------------------------------------------

func reconcileCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Run one reconciliation pass against live games",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				engine := buildEngine(cfg, pool, dryRun)
				start := time.Now()
				report, err := engine.Reconcile(ctx)
				if err != nil {
					return err
				}
				logger.Info("Reconcile finished",
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", report.Message)
				for _, e := range report.TeamErrors {
					logger.Error("team error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log detections instead of sending texts")
	return cmd
}

// --------------------------------------------------------------------------
// reset command
// --------------------------------------------------------------------------

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all persisted no-hitter flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				engine := buildEngine(cfg, pool, true)
				report := engine.Reset(ctx)
				logger.Info("Reset finished", "teams_cleared", report.TeamsCleared)
				for _, e := range report.Errors {
					logger.Error("reset error", "error", e)
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed reference data",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "teams",
		Short: "Seed the MLB team table from statsapi",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				client := mlb.NewClient(cfg.MLBBaseURL, cfg.MLBRequestsPerMinute, logger)
				start := time.Now()
				result := seed.Teams(ctx, pool.Pool, client, logger)
				logger.Info("Seed finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("seed error", "error", e)
				}
				return nil
			})
		},
	})
	return cmd
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// withDeps loads config, opens the pool, and runs fn with an interruptible
// context.
func withDeps(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}

// buildEngine wires the engine from config. dryRun skips the SMS sender.
func buildEngine(cfg *config.Config, pool *db.Pool, dryRun bool) *nohitter.Engine {
	games := mlb.NewClient(cfg.MLBBaseURL, cfg.MLBRequestsPerMinute, logger)
	teams := store.NewTeams(pool.Pool)
	det := nohitter.Detector{MinInnings: cfg.MinInnings, MaxHits: cfg.MaxHits}

	var notifier nohitter.Notifier
	if !dryRun {
		if sender := notify.NewSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken,
			cfg.TwilioFromNumber, cfg.AlertToNumber, logger); sender != nil {
			notifier = sender
		}
	}
	return nohitter.New(games, teams, notifier, det, logger)
}
