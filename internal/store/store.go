// Package store is the Postgres-backed team state store. Statements are
// prepared once per connection in internal/db; this package only executes
// them.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nonobot/nono-alert/internal/nohitter"
)

// Teams implements nohitter.TeamStore over a pgx pool.
type Teams struct {
	pool *pgxpool.Pool
}

// NewTeams creates a Teams store.
func NewTeams(pool *pgxpool.Pool) *Teams {
	return &Teams{pool: pool}
}

// GetTeam reads one team row. A missing row means the team table was never
// seeded for that ID.
func (s *Teams) GetTeam(ctx context.Context, id int) (*nohitter.Team, error) {
	var t nohitter.Team
	err := s.pool.QueryRow(ctx, "get_team", id).Scan(
		&t.ID, &t.Name, &t.Code, &t.ActiveNoHitter, &t.TextedInning,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("team %d: %w", id, nohitter.ErrTeamNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get team %d: %w", id, err)
	}
	return &t, nil
}

// UpdateTeam writes both mutable flags together. They are never written
// separately: texted_inning is meaningless without active_no_hitter.
func (s *Teams) UpdateTeam(ctx context.Context, id int, active bool, textedInning int) error {
	tag, err := s.pool.Exec(ctx, "update_team_flags", id, active, textedInning)
	if err != nil {
		return fmt.Errorf("update team %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("team %d: %w", id, nohitter.ErrTeamNotFound)
	}
	return nil
}

// ListTeams returns every seeded team.
func (s *Teams) ListTeams(ctx context.Context) ([]nohitter.Team, error) {
	rows, err := s.pool.Query(ctx, "list_teams")
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var teams []nohitter.Team
	for rows.Next() {
		var t nohitter.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Code, &t.ActiveNoHitter, &t.TextedInning); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}
