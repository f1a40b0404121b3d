package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SUPABASE_DB_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load with no DATABASE_URL must fail")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/nono")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIPort != 8080 {
		t.Errorf("APIPort = %d, want 8080", cfg.APIPort)
	}
	if cfg.MLBBaseURL != "https://statsapi.mlb.com" {
		t.Errorf("MLBBaseURL = %q", cfg.MLBBaseURL)
	}
	if cfg.MinInnings != 1 {
		t.Errorf("MinInnings = %d, want 1", cfg.MinInnings)
	}
	if cfg.MaxHits != 0 {
		t.Errorf("MaxHits = %d, want 0 (strict no-hitter)", cfg.MaxHits)
	}
	if cfg.WatchInterval != 0 {
		t.Errorf("WatchInterval = %v, want disabled by default", cfg.WatchInterval)
	}
	if cfg.IsProduction() {
		t.Error("default environment must not be production")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SUPABASE_DB_URL", "postgres://db.supabase.co/nono")
	t.Setenv("MIN_INNINGS", "6")
	t.Setenv("MAX_HITS", "5")
	t.Setenv("WATCH_INTERVAL_SECONDS", "60")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabaseURL != "postgres://db.supabase.co/nono" {
		t.Errorf("DatabaseURL fallback not applied: %q", cfg.DatabaseURL)
	}
	if cfg.MinInnings != 6 || cfg.MaxHits != 5 {
		t.Errorf("thresholds = %d/%d, want 6/5", cfg.MinInnings, cfg.MaxHits)
	}
	if cfg.WatchInterval != time.Minute {
		t.Errorf("WatchInterval = %v, want 1m", cfg.WatchInterval)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false with ENVIRONMENT=production")
	}
}

func TestEnvList(t *testing.T) {
	t.Setenv("CORS_TEST_LIST", "http://a.example, http://b.example ,")
	got := envList("CORS_TEST_LIST", nil)
	if len(got) != 2 || got[0] != "http://a.example" || got[1] != "http://b.example" {
		t.Errorf("envList = %v", got)
	}
}
