package nohitter

import (
	"context"
	"fmt"
	"log/slog"
)

// Engine runs one reconciliation per invocation. All collaborators are
// injected so the engine is testable with fakes.
type Engine struct {
	games    GameSource
	store    TeamStore
	notifier Notifier
	det      Detector
	logger   *slog.Logger
}

// New creates an Engine. notifier may be nil, in which case detections are
// logged but no texts go out (development mode).
func New(games GameSource, store TeamStore, notifier Notifier, det Detector, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{games: games, store: store, notifier: notifier, det: det, logger: logger}
}

// Report summarizes one reconciliation run.
type Report struct {
	LiveGames  int      `json:"live_games"`
	InProgress int      `json:"no_hitters_in_progress"`
	Resolved   int      `json:"resolved"`
	TextsSent  int      `json:"texts_sent"`
	TeamErrors []string `json:"team_errors,omitempty"`
	Message    string   `json:"message"`
}

// Reconcile fetches current live-game state, compares it against the
// persisted per-team flags, texts where a transition calls for it, and
// writes the new flags back.
//
// The fetch phase is all-or-nothing: one failed feed aborts the whole
// invocation before any writes, so persisted state never reflects a mix of
// old and new observations. Per-team store and delivery failures after the
// fetch phase are logged and isolated.
func (e *Engine) Reconcile(ctx context.Context) (*Report, error) {
	report := &Report{}

	// 1. Live game IDs. Nothing live is the common case for most of the day.
	ids, err := e.games.LiveGameIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list live games: %w", err)
	}
	report.LiveGames = len(ids)
	if len(ids) == 0 {
		e.logger.Info("No live games")
		report.Message = "no live games"
		return report, nil
	}

	// 2. Full feed per game, sequentially.
	games := make([]*LiveGame, 0, len(ids))
	for _, id := range ids {
		g, err := e.games.GameFeed(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetch game %d: %w", id, err)
		}
		games = append(games, g)
	}

	// 3. Partition eligible games: any hitless side means in-progress,
	// both sides over the threshold means resolved. Pre-threshold games
	// fall through both.
	var inProgress, resolved []*LiveGame
	for _, g := range games {
		if !e.det.Eligible(g) {
			continue
		}
		if e.det.Classify(g) == Ordinary {
			resolved = append(resolved, g)
		} else {
			inProgress = append(inProgress, g)
		}
	}
	report.InProgress = len(inProgress)
	report.Resolved = len(resolved)

	// 4. Active no-hitters: text on first detection and on each new inning.
	for _, g := range inProgress {
		for _, side := range e.det.HitlessSides(g) {
			sent, err := e.processHitless(ctx, g, side)
			if err != nil {
				e.logger.Warn("process hitless side failed",
					"game_pk", g.GamePk, "side", side, "error", err)
				report.TeamErrors = append(report.TeamErrors, err.Error())
				continue
			}
			if sent {
				report.TextsSent++
			}
		}
	}

	// 5. Resolved games: clear any stale flags. Both fields reset together.
	for _, g := range resolved {
		for _, side := range []Side{SideHome, SideAway} {
			if err := e.clearIfFlagged(ctx, g, side); err != nil {
				e.logger.Warn("clear resolved side failed",
					"game_pk", g.GamePk, "side", side, "error", err)
				report.TeamErrors = append(report.TeamErrors, err.Error())
			}
		}
	}

	report.Message = fmt.Sprintf("%d live, %d no-hitters in progress, %d texts sent",
		report.LiveGames, report.InProgress, report.TextsSent)
	e.logger.Info("Reconcile complete",
		"live_games", report.LiveGames,
		"in_progress", report.InProgress,
		"resolved", report.Resolved,
		"texts_sent", report.TextsSent,
		"team_errors", len(report.TeamErrors))
	return report, nil
}

// processHitless handles one hitless team-side: at most one text per team
// per inning while the no-hitter continues.
func (e *Engine) processHitless(ctx context.Context, g *LiveGame, side Side) (sent bool, err error) {
	st := g.Side(side)
	team, err := e.store.GetTeam(ctx, st.TeamID)
	if err != nil {
		return false, &StoreError{Op: "get", TeamID: st.TeamID, Err: err}
	}

	if team.ActiveNoHitter && team.TextedInning == g.Inning {
		e.logger.Info("Already texted this inning",
			"team", team.Name, "inning", g.Inning)
		return false, nil
	}
	if team.ActiveNoHitter {
		e.logger.Info("No-hitter reached a new inning",
			"team", team.Name, "texted_inning", team.TextedInning, "current_inning", g.Inning)
	}

	body := e.det.StatusLine(g, side)
	if e.notifier != nil {
		sid, err := e.notifier.Send(ctx, body)
		if err != nil {
			// Skip the state write so the next run retries the text.
			// Delivery and state are not transactional either way: a text
			// that lands while the ack is lost will repeat next run.
			return false, &DeliveryError{Err: err}
		}
		e.logger.Info("Text message sent", "sid", sid, "body", body)
		sent = true
	} else {
		e.logger.Info("Notifier not configured, logging only", "body", body)
	}

	if err := e.store.UpdateTeam(ctx, st.TeamID, true, g.Inning); err != nil {
		return sent, &StoreError{Op: "update", TeamID: st.TeamID, Err: err}
	}
	return sent, nil
}

// clearIfFlagged resets a team whose no-hitter is over. No text on
// resolution; the streak ending is observable in the logs only.
func (e *Engine) clearIfFlagged(ctx context.Context, g *LiveGame, side Side) error {
	st := g.Side(side)
	team, err := e.store.GetTeam(ctx, st.TeamID)
	if err != nil {
		return &StoreError{Op: "get", TeamID: st.TeamID, Err: err}
	}
	if !team.ActiveNoHitter {
		return nil
	}
	if err := e.store.UpdateTeam(ctx, st.TeamID, false, 0); err != nil {
		return &StoreError{Op: "update", TeamID: st.TeamID, Err: err}
	}
	e.logger.Info("No-hitter over, flag cleared",
		"team", team.Name, "game_pk", g.GamePk, "hits", st.Hits)
	return nil
}

// ResetReport summarizes a reset run.
type ResetReport struct {
	TeamsCleared int      `json:"teams_cleared"`
	Errors       []string `json:"errors,omitempty"`
	Message      string   `json:"message"`
}

// Reset unconditionally clears every team's flags. Best effort: row
// failures are logged and counted, never surfaced as a failure. Used for
// end-of-day cleanup and manual recovery.
func (e *Engine) Reset(ctx context.Context) *ResetReport {
	report := &ResetReport{Message: "cleaned"}

	teams, err := e.store.ListTeams(ctx)
	if err != nil {
		e.logger.Error("Reset: list teams failed", "error", err)
		report.Errors = append(report.Errors, err.Error())
		return report
	}

	for _, team := range teams {
		if err := e.store.UpdateTeam(ctx, team.ID, false, 0); err != nil {
			e.logger.Warn("Reset: clear team failed", "team", team.Name, "error", err)
			report.Errors = append(report.Errors, err.Error())
			continue
		}
		report.TeamsCleared++
	}

	e.logger.Info("Reset complete",
		"teams_cleared", report.TeamsCleared, "errors", len(report.Errors))
	return report
}
