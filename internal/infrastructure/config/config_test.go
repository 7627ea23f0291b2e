package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LedgerCacheTTL != 5*time.Minute {
		t.Fatalf("expected default cache TTL 5m, got %v", cfg.LedgerCacheTTL)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.HTTPPort)
	}
	if !cfg.RedisEnabled {
		t.Fatal("expected redis to be enabled by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LEDGER_CACHE_TTL", "90s")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("BREAKER_MAX_FAILURES", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LedgerCacheTTL != 90*time.Second {
		t.Fatalf("expected 90s, got %v", cfg.LedgerCacheTTL)
	}
	if cfg.RedisEnabled {
		t.Fatal("expected redis to be disabled")
	}
	if cfg.BreakerMaxFailures != 7 {
		t.Fatalf("expected 7, got %d", cfg.BreakerMaxFailures)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("LEDGER_CACHE_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected parse error for invalid duration")
	}
}
