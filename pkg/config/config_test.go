package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validYAML = `
environment: test
server:
  port: 9090
  read_timeout: 5s
  write_timeout: 5s
  shutdown_timeout: 3s
log:
  level: debug
  format: console
  output: stdout
market:
  tick_period_min: 500ms
  tick_period_max: 2s
  history_days: 30
  history_ttl: 1m
stream:
  max_per_second: 10
  buffer_size: 64
cache:
  backend: memory
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "test" {
		t.Fatalf("environment = %q", cfg.Environment)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
	if cfg.Market.TickPeriodMin != 500*time.Millisecond {
		t.Fatalf("tick_period_min = %v", cfg.Market.TickPeriodMin)
	}
	if cfg.Market.HistoryDays != 30 {
		t.Fatalf("history_days = %d", cfg.Market.HistoryDays)
	}
	if cfg.Cache.Backend != "memory" {
		t.Fatalf("cache backend = %q", cfg.Cache.Backend)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidateRejectsBadBackend(t *testing.T) {
	body := `
environment: test
cache:
  backend: memcached
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected error for unknown cache backend")
	}
}

func TestValidateRejectsInvertedTickPeriod(t *testing.T) {
	body := `
environment: test
market:
  tick_period_min: 3s
  tick_period_max: 1s
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected error for max <= min")
	}
}

func TestValidateRequiresEnvironment(t *testing.T) {
	if _, err := Load(writeConfig(t, "server:\n  port: 1\n")); err == nil {
		t.Fatalf("expected error for missing environment")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7001")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_HOST", "cache.internal")

	cfg, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Fatalf("PORT override ignored, port = %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("LOG_LEVEL override ignored")
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.Redis.Host != "cache.internal" {
		t.Fatalf("redis overrides ignored")
	}
}
