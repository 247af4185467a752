package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is not set")
	}
}

func TestLoad_UsesDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/pirouette")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.ScrapeInterval != 6*time.Hour {
		t.Errorf("ScrapeInterval = %v, want 6h", cfg.ScrapeInterval)
	}
	if cfg.MatchToleranceDays != 3 {
		t.Errorf("MatchToleranceDays = %d, want 3", cfg.MatchToleranceDays)
	}
	if cfg.DedupToleranceDays != 2 {
		t.Errorf("DedupToleranceDays = %d, want 2", cfg.DedupToleranceDays)
	}
	if cfg.DateFallbackDays != 14 {
		t.Errorf("DateFallbackDays = %d, want 14", cfg.DateFallbackDays)
	}
	if cfg.ScrapeGlobalTimeout != 30*time.Minute {
		t.Errorf("ScrapeGlobalTimeout = %v, want 30m", cfg.ScrapeGlobalTimeout)
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want 120", cfg.RateLimitGeneral)
	}
}

func TestLoad_OverridesFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/pirouette")
	t.Setenv("SCRAPE_INTERVAL", "1h")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RENDER_ENDPOINT", "https://r.jina.ai")
	t.Setenv("MATCH_TOLERANCE_DAYS", "5")
	t.Setenv("SCRAPE_GLOBAL_TIMEOUT", "45m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ScrapeInterval != time.Hour {
		t.Errorf("ScrapeInterval = %v, want 1h", cfg.ScrapeInterval)
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.RenderEndpoint != "https://r.jina.ai" {
		t.Errorf("RenderEndpoint = %q", cfg.RenderEndpoint)
	}
	if cfg.MatchToleranceDays != 5 {
		t.Errorf("MatchToleranceDays = %d, want 5", cfg.MatchToleranceDays)
	}
	if cfg.ScrapeGlobalTimeout != 45*time.Minute {
		t.Errorf("ScrapeGlobalTimeout = %v, want 45m", cfg.ScrapeGlobalTimeout)
	}
}

func TestLoad_IgnoresMalformedOptionalValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/pirouette")
	t.Setenv("SCRAPE_INTERVAL", "not-a-duration")
	t.Setenv("MATCH_TOLERANCE_DAYS", "many")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ScrapeInterval != 6*time.Hour {
		t.Errorf("ScrapeInterval = %v, want default 6h", cfg.ScrapeInterval)
	}
	if cfg.MatchToleranceDays != 3 {
		t.Errorf("MatchToleranceDays = %d, want default 3", cfg.MatchToleranceDays)
	}
}
