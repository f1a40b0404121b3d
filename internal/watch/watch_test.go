package watch

import (
	"testing"
	"time"
)

func TestUntilNextReset(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Duration
	}{
		{"before reset hour", time.Date(2026, 6, 1, 2, 0, 0, 0, loc), 4, 2 * time.Hour},
		{"after reset hour", time.Date(2026, 6, 1, 6, 0, 0, 0, loc), 4, 22 * time.Hour},
		{"exactly at reset hour", time.Date(2026, 6, 1, 4, 0, 0, 0, loc), 4, 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := untilNextReset(tt.now, tt.hour)
			if got != tt.want {
				t.Errorf("untilNextReset(%v, %d) = %v, want %v", tt.now, tt.hour, got, tt.want)
			}
			if got <= 0 {
				t.Error("next reset must always be in the future")
			}
		})
	}
}
