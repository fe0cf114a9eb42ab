package config

import (
	"testing"
	"time"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_STR", "value")
	t.Setenv("X_BOOL", "off")
	t.Setenv("X_INT", "42")
	t.Setenv("X_DUR", "90s")
	t.Setenv("X_BAD_INT", "junk")

	if got := envStr("X_STR", "d"); got != "value" {
		t.Errorf("envStr = %q", got)
	}
	if got := envStr("X_UNSET", "d"); got != "d" {
		t.Errorf("envStr default = %q", got)
	}
	if envBool("X_BOOL", true) {
		t.Error("envBool should parse off as false")
	}
	if !envBool("X_UNSET", true) {
		t.Error("envBool should fall back to the default")
	}
	if got := envInt("X_INT", 0); got != 42 {
		t.Errorf("envInt = %d", got)
	}
	if got := envInt("X_BAD_INT", 7); got != 7 {
		t.Errorf("envInt should ignore junk, got %d", got)
	}
	if got := envDur("X_DUR", time.Second); got != 90*time.Second {
		t.Errorf("envDur = %v", got)
	}
}

func TestLoadRateLimitConfigClampsValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-5")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("expected capacity clamped to 1, got %d", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Errorf("expected refill tokens clamped to 1, got %d", cfg.RefillTokens)
	}
	// TTL shorter than a few refill intervals would expire live buckets.
	if cfg.TTL != 10*time.Second {
		t.Errorf("expected TTL raised to 10s, got %v", cfg.TTL)
	}
}

func TestLoadCacheConfigMethods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head ,")
	cfg := LoadCacheConfig()
	if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] {
		t.Errorf("expected GET and HEAD cacheable, got %v", cfg.Methods)
	}
	if len(cfg.Methods) != 2 {
		t.Errorf("expected exactly 2 methods, got %v", cfg.Methods)
	}
}
