package config

import (
	"testing"
	"time"

	"github.com/brfutdata/matchgraph/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StoreBackendValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORE_BACKEND", "cassandra")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid STORE_BACKEND")
	}
}

func TestLoad_PostgresRequiresDBURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORE_BACKEND", StorePostgres)
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when STORE_BACKEND=postgres without DB_URL")
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

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("DB_URL", "")
	t.Setenv("MERGE_WORKERS", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.StoreBackend != StoreMemory {
		t.Fatalf("unexpected StoreBackend: %q", cfg.StoreBackend)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.MergeWorkers != 8 {
		t.Fatalf("unexpected MergeWorkers: %d", cfg.MergeWorkers)
	}
	if cfg.RosterNationality != "Brazil" {
		t.Fatalf("unexpected RosterNationality: %q", cfg.RosterNationality)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("STORE_BACKEND", StorePostgres)
	t.Setenv("DB_URL", "postgres://localhost:5432/matchgraph?sslmode=disable")
	t.Setenv("HTTP_READ_TIMEOUT", "20s")
	t.Setenv("MERGE_WORKERS", "16")
	t.Setenv("ROSTER_NATIONALITY", "Argentina")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StoreBackend != StorePostgres {
		t.Fatalf("unexpected StoreBackend: %q", cfg.StoreBackend)
	}
	if cfg.ReadTimeout != 20*time.Second {
		t.Fatalf("unexpected ReadTimeout: %s", cfg.ReadTimeout)
	}
	if cfg.MergeWorkers != 16 {
		t.Fatalf("unexpected MergeWorkers: %d", cfg.MergeWorkers)
	}
	if cfg.RosterNationality != "Argentina" {
		t.Fatalf("unexpected RosterNationality: %q", cfg.RosterNationality)
	}
	if cfg.LogLevel != logging.LevelWarn {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}

func TestLoad_InvalidDurations(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid HTTP_READ_TIMEOUT")
	}
}
