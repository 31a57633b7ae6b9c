package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.DirectoryMode != DirectoryModeDatabase {
		t.Errorf("DirectoryMode = %q, want %q", cfg.Auth.DirectoryMode, DirectoryModeDatabase)
	}
	if cfg.Auth.SessionBackend != SessionBackendRedis {
		t.Errorf("SessionBackend = %q, want %q", cfg.Auth.SessionBackend, SessionBackendRedis)
	}
	if cfg.Auth.MinLoginLatency != 400*time.Millisecond {
		t.Errorf("MinLoginLatency = %v, want 400ms", cfg.Auth.MinLoginLatency)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port = %d, want 5432", cfg.Postgres.Port)
	}
}

func TestAppConfig_ParseAuthEnv(t *testing.T) {
	t.Setenv("AUTH_DIRECTORY_MODE", "seed")
	t.Setenv("AUTH_SESSION_BACKEND", "memory")
	t.Setenv("AUTH_SESSION_TTL", "24h")
	t.Setenv("AUTH_MIN_LOGIN_LATENCY", "150ms")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.DirectoryMode != DirectoryModeSeed {
		t.Errorf("DirectoryMode = %q, want seed", cfg.Auth.DirectoryMode)
	}
	if cfg.Auth.SessionBackend != SessionBackendMemory {
		t.Errorf("SessionBackend = %q, want memory", cfg.Auth.SessionBackend)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.MinLoginLatency != 150*time.Millisecond {
		t.Errorf("MinLoginLatency = %v, want 150ms", cfg.Auth.MinLoginLatency)
	}
	if cfg.Postgres.Host != "db.internal" {
		t.Errorf("Postgres.Host = %q, want db.internal", cfg.Postgres.Host)
	}
	if cfg.Redis.Addr != "redis.internal:6379" {
		t.Errorf("Redis.Addr = %q, want redis.internal:6379", cfg.Redis.Addr)
	}
}

func TestDirectoryMode_UnmarshalText(t *testing.T) {
	var m DirectoryMode
	if err := m.UnmarshalText([]byte("SEED")); err != nil {
		t.Fatalf("UnmarshalText(SEED): %v", err)
	}
	if m != DirectoryModeSeed {
		t.Errorf("mode = %q, want seed", m)
	}
	if err := m.UnmarshalText([]byte("ldap")); err == nil {
		t.Error("UnmarshalText(ldap) should fail")
	}
}

func TestSessionBackend_UnmarshalText(t *testing.T) {
	var b SessionBackend
	if err := b.UnmarshalText([]byte("Memory")); err != nil {
		t.Fatalf("UnmarshalText(Memory): %v", err)
	}
	if b != SessionBackendMemory {
		t.Errorf("backend = %q, want memory", b)
	}
	if err := b.UnmarshalText([]byte("dynamo")); err == nil {
		t.Error("UnmarshalText(dynamo) should fail")
	}
}

func TestAuthConfig_SanitizeClampsNegatives(t *testing.T) {
	a := AuthConfig{SessionTTL: -time.Hour, MinLoginLatency: -time.Second}
	a.Sanitize()
	if a.SessionTTL != 0 {
		t.Errorf("SessionTTL = %v, want 0", a.SessionTTL)
	}
	if a.MinLoginLatency != 0 {
		t.Errorf("MinLoginLatency = %v, want 0", a.MinLoginLatency)
	}
}

func TestAppConfig_DetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("IsDev should be true when NODE_ENV=development")
	}
}
