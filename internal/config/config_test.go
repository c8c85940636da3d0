package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Fatalf("expected default env to be development")
	}
	if cfg.JWTSecret == "" || cfg.RefreshSecret == "" {
		t.Fatalf("expected dev fallback secrets")
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("expected address :8080, got %s", cfg.Address())
	}
}

func TestLoadDurationOverrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "90")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AccessTokenTTL != 90*time.Second {
		t.Fatalf("expected 90s access TTL, got %s", cfg.AccessTokenTTL)
	}
	if cfg.ShutdownPeriod != 30*time.Second {
		t.Fatalf("expected 30s shutdown period, got %s", cfg.ShutdownPeriod)
	}
}

func TestLoadProductionRequiresBackends(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REFRESH_SECRET", "secret")

	if _, err := Load(); err == nil {
		t.Fatalf("expected missing DATABASE_URL to fail in production")
	}
}
