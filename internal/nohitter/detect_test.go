package nohitter

import (
	"strings"
	"testing"
)

func game(inning int, homeHits, awayHits int) *LiveGame {
	return &LiveGame{
		GamePk:        778505,
		AbstractState: "Live",
		Inning:        inning,
		InningOrdinal: "",
		InningHalf:    "Top",
		InningState:   "Top",
		Home:          SideState{TeamID: 108, TeamName: "Los Angeles Angels", Hits: homeHits, Runs: 2},
		Away:          SideState{TeamID: 147, TeamName: "New York Yankees", Hits: awayHits, Runs: 0},
	}
}

func TestClassify(t *testing.T) {
	det := Detector{MinInnings: 1, MaxHits: 0}
	tests := []struct {
		name     string
		homeHits int
		awayHits int
		want     Classification
	}{
		{"both hitless", 0, 0, HitlessBoth},
		{"home hitless only", 0, 3, HitlessHome},
		{"away hitless only", 4, 0, HitlessAway},
		{"ordinary game", 5, 7, Ordinary},
		{"one hit each breaks both", 1, 1, Ordinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := det.Classify(game(5, tt.homeHits, tt.awayHits))
			if got != tt.want {
				t.Errorf("Classify(home=%d away=%d) = %v, want %v",
					tt.homeHits, tt.awayHits, got, tt.want)
			}
		})
	}
}

func TestClassifyRespectsMaxHits(t *testing.T) {
	// Staging tolerance: up to 5 hits still counts as "in progress".
	det := Detector{MinInnings: 1, MaxHits: 5}
	if got := det.Classify(game(5, 5, 8)); got != HitlessHome {
		t.Errorf("Classify with MaxHits=5, home 5 hits = %v, want HitlessHome", got)
	}
	if got := det.Classify(game(5, 6, 8)); got != Ordinary {
		t.Errorf("Classify with MaxHits=5, home 6 hits = %v, want Ordinary", got)
	}
}

func TestEligible(t *testing.T) {
	det := Detector{MinInnings: 6, MaxHits: 0}
	tests := []struct {
		name        string
		inning      int
		inningState string
		want        bool
	}{
		{"before threshold", 5, "Top", false},
		{"at threshold", 6, "Top", true},
		{"past threshold", 8, "Bottom", true},
		{"no inning underway", 7, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := game(tt.inning, 0, 4)
			g.InningState = tt.inningState
			if got := det.Eligible(g); got != tt.want {
				t.Errorf("Eligible(inning=%d state=%q) = %v, want %v",
					tt.inning, tt.inningState, got, tt.want)
			}
		})
	}
}

func TestHitlessSides(t *testing.T) {
	det := Detector{MinInnings: 1, MaxHits: 0}

	sides := det.HitlessSides(game(7, 0, 0))
	if len(sides) != 2 || sides[0] != SideHome || sides[1] != SideAway {
		t.Fatalf("HitlessSides(dual) = %v, want [home away]", sides)
	}

	sides = det.HitlessSides(game(7, 3, 0))
	if len(sides) != 1 || sides[0] != SideAway {
		t.Fatalf("HitlessSides(away hitless) = %v, want [away]", sides)
	}

	if sides = det.HitlessSides(game(7, 3, 4)); sides != nil {
		t.Fatalf("HitlessSides(ordinary) = %v, want none", sides)
	}
}

func TestStatusLineSingle(t *testing.T) {
	det := Detector{MinInnings: 1, MaxHits: 0}

	// Home batters hitless: the away staff owns the no-hitter.
	g := game(7, 0, 6)
	g.InningOrdinal = "7th"
	got := det.StatusLine(g, SideHome)
	want := "The New York Yankees (away) have a no-hitter going against the Los Angeles Angels (home). It's the top of the 7th. The score is 2 (home) to 0 (away)."
	if got != want {
		t.Errorf("StatusLine(home hitless) =\n%q\nwant\n%q", got, want)
	}

	// Away batters hitless: wording flips.
	g = game(7, 6, 0)
	g.InningOrdinal = "7th"
	g.InningHalf = "Bottom"
	got = det.StatusLine(g, SideAway)
	if !strings.Contains(got, "The Los Angeles Angels (home) have a no-hitter going against the New York Yankees (away).") {
		t.Errorf("StatusLine(away hitless) names wrong pitching team: %q", got)
	}
	if !strings.Contains(got, "bottom of the 7th") {
		t.Errorf("StatusLine(away hitless) missing lower-cased inning half: %q", got)
	}
}

func TestStatusLineDual(t *testing.T) {
	det := Detector{MinInnings: 1, MaxHits: 0}
	g := game(9, 0, 0)
	g.InningOrdinal = "9th"

	got := det.StatusLine(g, SideHome)
	if !strings.Contains(got, "both have no-hitters going") {
		t.Errorf("StatusLine(dual) = %q, want dual wording", got)
	}
	if !strings.Contains(got, "New York Yankees") || !strings.Contains(got, "Los Angeles Angels") {
		t.Errorf("StatusLine(dual) must name both teams: %q", got)
	}
}

func TestStatusLineOrdinalFallback(t *testing.T) {
	det := Detector{MinInnings: 1, MaxHits: 0}
	g := game(2, 0, 5)
	// Feed omitted currentInningOrdinal between half-innings.
	g.InningOrdinal = ""
	if got := det.StatusLine(g, SideHome); !strings.Contains(got, "of the 2nd") {
		t.Errorf("StatusLine without feed ordinal = %q, want built 2nd", got)
	}
}

func TestOrdinalSuffix(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "st"}, {2, "nd"}, {3, "rd"}, {4, "th"},
		{11, "th"}, {12, "th"}, {13, "th"}, {21, "st"},
	}
	for _, tt := range tests {
		if got := ordinalSuffix(tt.n); got != tt.want {
			t.Errorf("ordinalSuffix(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
