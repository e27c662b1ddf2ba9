package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_STORAGE", "redis")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_STORAGE")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Storage != StorageMemory {
		t.Fatalf("expected default storage memory, got %q", cfg.Storage)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.GlobalLockAt != nil {
		t.Fatalf("expected GlobalLockAt unset by default")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_GlobalLockAtParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("GLOBAL_LOCK_AT", "2026-09-13T17:00:00Z")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.GlobalLockAt == nil {
		t.Fatalf("expected GlobalLockAt to be set")
	}
	want := time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC)
	if !cfg.GlobalLockAt.Equal(want) {
		t.Fatalf("unexpected GlobalLockAt: %s", cfg.GlobalLockAt)
	}
}

func TestLoad_GlobalLockAtRejectsGarbage(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("GLOBAL_LOCK_AT", "next sunday")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid GLOBAL_LOCK_AT")
	}
}

func TestLoad_GridStatsRequiresAPIKeyWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("GRIDSTATS_ENABLED", "true")
	t.Setenv("GRIDSTATS_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when GRIDSTATS_ENABLED=true without GRIDSTATS_API_KEY")
	}
}

func TestLoad_GridStatsConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("GRIDSTATS_ENABLED", "true")
	t.Setenv("GRIDSTATS_API_KEY", "key-123")
	t.Setenv("GRIDSTATS_TIMEOUT", "8s")
	t.Setenv("GRIDSTATS_POOL_SIZE", "4")
	t.Setenv("GRIDSTATS_CIRCUIT_FAILURE_COUNT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.GridStatsEnabled {
		t.Fatalf("expected GridStatsEnabled=true")
	}
	if cfg.GridStatsTimeout != 8*time.Second {
		t.Fatalf("unexpected GridStatsTimeout: %s", cfg.GridStatsTimeout)
	}
	if cfg.GridStatsPoolSize != 4 {
		t.Fatalf("unexpected GridStatsPoolSize: %d", cfg.GridStatsPoolSize)
	}
	if cfg.GridStatsCircuitFailureCount != 3 {
		t.Fatalf("unexpected GridStatsCircuitFailureCount: %d", cfg.GridStatsCircuitFailureCount)
	}
}

func TestLoad_JobQueueRequiresTokensWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("JOBQUEUE_ENABLED", "true")
	t.Setenv("JOBQUEUE_TOKEN", "qs-token")
	t.Setenv("JOBQUEUE_TARGET_BASE_URL", "https://api.example.com")
	t.Setenv("INTERNAL_JOB_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when JOBQUEUE_ENABLED=true without INTERNAL_JOB_TOKEN")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}
