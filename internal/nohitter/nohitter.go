// Package nohitter is the decision core of the alert service.
//
// Each invocation reconciles live MLB game state against per-team flags
// persisted in Postgres: detect sides currently being held hitless, text an
// alert at most once per team per inning, and clear the flag once the
// no-hitter is over.
package nohitter

import "context"

// Defaults for the detection thresholds. Both are configuration, not code:
// production runs with MaxHits 0 (a real no-hitter), staging runs looser so
// the pipeline can be exercised on ordinary games.
const (
	DefaultMinInnings = 1
	DefaultMaxHits    = 0
)

// Side identifies one half of a matchup. No-hitter state is tracked per
// team-side, not per game: a single game can carry two active no-hitters.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Opponent returns the other side of the matchup.
func (s Side) Opponent() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// SideState is one team's line in a live game.
type SideState struct {
	TeamID   int
	TeamName string
	Hits     int
	Runs     int
}

// LiveGame is the canonical slice of a statsapi live feed the detector
// needs. Built fresh every invocation and never persisted.
type LiveGame struct {
	GamePk        int
	AbstractState string // "Preview" | "Live" | "Final"
	Inning        int
	InningOrdinal string // "1st", "7th", ...
	InningHalf    string // "Top" | "Bottom"
	InningState   string // "Top" | "Bottom" | "Middle" | "End"
	Home          SideState
	Away          SideState
}

// Side returns the state for the given team-side.
func (g *LiveGame) Side(s Side) SideState {
	if s == SideHome {
		return g.Home
	}
	return g.Away
}

// Team is a persisted team row. ActiveNoHitter and TextedInning are the
// only mutable fields and are always written together: TextedInning is
// meaningless unless ActiveNoHitter is set.
type Team struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	ActiveNoHitter bool   `json:"active_no_hitter"`
	TextedInning   int    `json:"texted_inning"`
}

// GameSource lists live games and fetches their feeds.
type GameSource interface {
	LiveGameIDs(ctx context.Context) ([]int, error)
	GameFeed(ctx context.Context, gamePk int) (*LiveGame, error)
}

// TeamStore reads and writes persisted per-team flags.
type TeamStore interface {
	GetTeam(ctx context.Context, id int) (*Team, error)
	UpdateTeam(ctx context.Context, id int, active bool, textedInning int) error
	ListTeams(ctx context.Context) ([]Team, error)
}

// Notifier delivers an alert and returns the provider's message ID.
type Notifier interface {
	Send(ctx context.Context, body string) (string, error)
}
