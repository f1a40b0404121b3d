// Package seed populates the team table from the statsapi teams listing.
// Run once at setup; re-running refreshes names without touching flags.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nonobot/nono-alert/internal/mlb"
)

// Result summarizes a seed run.
type Result struct {
	TeamsUpserted int
	Errors        []string
}

// AddErrorf appends a formatted error to the result.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a one-line human-readable summary.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d teams upserted", r.TeamsUpserted)
	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, ", %d errors", len(r.Errors))
	}
	return b.String()
}

// Teams fetches the MLB team list and upserts one row per team with the
// no-hitter flags zeroed. Per-row failures are collected, not fatal.
func Teams(ctx context.Context, pool *pgxpool.Pool, client *mlb.Client, logger *slog.Logger) Result {
	var result Result

	logger.Info("Seeding MLB teams...")
	teams, err := client.Teams(ctx)
	if err != nil {
		result.AddErrorf("fetch MLB teams: %v", err)
		return result
	}

	for _, team := range teams {
		if _, err := pool.Exec(ctx, "upsert_team", team.ID, team.Name, team.Code); err != nil {
			result.AddErrorf("upsert team %d: %v", team.ID, err)
		} else {
			result.TeamsUpserted++
		}
	}

	logger.Info("MLB teams done", "count", result.TeamsUpserted)
	return result
}
