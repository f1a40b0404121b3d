package nohitter

import (
	"fmt"
	"strings"
)

// Detector classifies live games. Pure functions over LiveGame; all
// thresholds live here so call sites never carry literals.
type Detector struct {
	// MinInnings is the first inning a game becomes eligible for
	// detection. 1 catches everything; production typically raises it so
	// early-game noise never pages anyone.
	MinInnings int
	// MaxHits is the most hits a side can have while still counting as
	// "held hitless". 0 is a real no-hitter.
	MaxHits int
}

// Classification of a single live game. Exactly one applies.
type Classification int

const (
	// Ordinary: both sides have exceeded the hit threshold.
	Ordinary Classification = iota
	// HitlessHome: the home batters are hitless — the away pitching
	// staff has the no-hitter.
	HitlessHome
	// HitlessAway: the away batters are hitless.
	HitlessAway
	// HitlessBoth: a dual no-hitter.
	HitlessBoth
)

// Eligible reports whether a game has reached the detection threshold with
// an inning underway. Games before the threshold are dropped entirely:
// neither notified nor reset.
func (d Detector) Eligible(g *LiveGame) bool {
	return g.Inning >= d.MinInnings && g.InningState != ""
}

// HeldHitless reports whether the given side's batters are at or below the
// hit threshold.
func (d Detector) HeldHitless(g *LiveGame, side Side) bool {
	return g.Side(side).Hits <= d.MaxHits
}

// Classify buckets a game by which sides are currently hitless.
func (d Detector) Classify(g *LiveGame) Classification {
	home := d.HeldHitless(g, SideHome)
	away := d.HeldHitless(g, SideAway)
	switch {
	case home && away:
		return HitlessBoth
	case home:
		return HitlessHome
	case away:
		return HitlessAway
	default:
		return Ordinary
	}
}

// HitlessSides returns the sides currently held hitless, home first.
func (d Detector) HitlessSides(g *LiveGame) []Side {
	var sides []Side
	if d.HeldHitless(g, SideHome) {
		sides = append(sides, SideHome)
	}
	if d.HeldHitless(g, SideAway) {
		sides = append(sides, SideAway)
	}
	return sides
}

// StatusLine builds the text-message body for one hitless side. The
// pitching staff owns the no-hitter, so the named team is the opponent of
// the hitless side. Dual no-hitters get their own wording.
func (d Detector) StatusLine(g *LiveGame, hitless Side) string {
	situation := fmt.Sprintf("It's the %s of the %s. The score is %d (home) to %d (away).",
		strings.ToLower(g.InningHalf), d.inningOrdinal(g), g.Home.Runs, g.Away.Runs)

	if d.Classify(g) == HitlessBoth {
		return fmt.Sprintf("The %s (away) and the %s (home) both have no-hitters going. %s",
			g.Away.TeamName, g.Home.TeamName, situation)
	}

	pitching := g.Side(hitless.Opponent())
	batting := g.Side(hitless)
	return fmt.Sprintf("The %s (%s) have a no-hitter going against the %s (%s). %s",
		pitching.TeamName, hitless.Opponent(), batting.TeamName, hitless, situation)
}

// inningOrdinal prefers the feed's own ordinal and falls back to building
// one, since some feeds omit currentInningOrdinal between half-innings.
func (d Detector) inningOrdinal(g *LiveGame) string {
	if g.InningOrdinal != "" {
		return g.InningOrdinal
	}
	return fmt.Sprintf("%d%s", g.Inning, ordinalSuffix(g.Inning))
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
