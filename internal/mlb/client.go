// Package mlb is the read-only client for the public MLB statsapi.
//
// The API is unauthenticated but shared infrastructure, so requests go
// through a token-bucket limiter. Every failure surfaces as a
// nohitter.UpstreamError: callers treat the whole fetch phase as
// all-or-nothing.
package mlb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/nonobot/nono-alert/internal/nohitter"
)

// sportIDMLB filters the majors out of schedule and team listings; the
// statsapi also serves minor-league and international play.
const sportIDMLB = 1

// Client is the statsapi HTTP client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a rate-limited statsapi client.
func NewClient(baseURL string, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// LiveGameIDs returns the gamePk of every game currently live. An empty
// schedule (off-day, offseason) is an empty slice, not an error.
func (c *Client) LiveGameIDs(ctx context.Context) ([]int, error) {
	var sched scheduleResponse
	path := fmt.Sprintf("/api/v1/schedule/games/?sportId=%d", sportIDMLB)
	if err := c.get(ctx, path, &sched); err != nil {
		return nil, &nohitter.UpstreamError{Op: "schedule", Err: err}
	}

	var ids []int
	for _, date := range sched.Dates {
		for _, game := range date.Games {
			if game.Status.AbstractGameState == "Live" {
				ids = append(ids, game.GamePk)
			}
		}
	}
	return ids, nil
}

// GameFeed fetches the full live feed for one game and maps it down to the
// canonical LiveGame the detector works on.
func (c *Client) GameFeed(ctx context.Context, gamePk int) (*nohitter.LiveGame, error) {
	var feed feedResponse
	path := fmt.Sprintf("/api/v1.1/game/%d/feed/live", gamePk)
	if err := c.get(ctx, path, &feed); err != nil {
		return nil, &nohitter.UpstreamError{Op: fmt.Sprintf("feed %d", gamePk), Err: err}
	}

	ls := feed.LiveData.Linescore
	return &nohitter.LiveGame{
		GamePk:        gamePk,
		AbstractState: feed.GameData.Status.AbstractGameState,
		Inning:        ls.CurrentInning,
		InningOrdinal: ls.CurrentInningOrdinal,
		InningHalf:    ls.InningHalf,
		InningState:   ls.InningState,
		Home: nohitter.SideState{
			TeamID:   feed.GameData.Teams.Home.ID,
			TeamName: feed.GameData.Teams.Home.Name,
			Hits:     ls.Teams.Home.Hits,
			Runs:     ls.Teams.Home.Runs,
		},
		Away: nohitter.SideState{
			TeamID:   feed.GameData.Teams.Away.ID,
			TeamName: feed.GameData.Teams.Away.Name,
			Hits:     ls.Teams.Away.Hits,
			Runs:     ls.Teams.Away.Runs,
		},
	}, nil
}

// Teams lists the 30 MLB teams, used by the seeding flow.
func (c *Client) Teams(ctx context.Context) ([]TeamInfo, error) {
	var resp teamsResponse
	if err := c.get(ctx, "/api/v1/teams", &resp); err != nil {
		return nil, &nohitter.UpstreamError{Op: "teams", Err: err}
	}

	var teams []TeamInfo
	for _, t := range resp.Teams {
		if t.Sport.ID != sportIDMLB {
			continue
		}
		teams = append(teams, TeamInfo{ID: t.ID, Name: t.Name, Code: t.TeamCode})
	}
	return teams, nil
}

// get performs a rate-limited GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("statsapi %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
