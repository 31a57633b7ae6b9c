package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rotorops/rotorops/config"
)

func devConfig() *config.AppConfig {
	cfg := &config.AppConfig{}
	cfg.Auth.DirectoryMode = config.DirectoryModeSeed
	cfg.Auth.SessionBackend = config.SessionBackendMemory
	cfg.Auth.SeedSecret = "hangar-9"
	cfg.Auth.MinLoginLatency = 5 * time.Millisecond
	return cfg
}

func TestBuildAuth_SeedModeNeedsNoInfrastructure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	stack, err := BuildAuth(context.Background(), AuthDeps{Config: devConfig(), Logger: logger})
	if err != nil {
		t.Fatalf("BuildAuth: %v", err)
	}
	if stack.Registry == nil {
		t.Fatal("registry not built")
	}
	if stack.Personnel == nil {
		t.Fatal("personnel lister not built")
	}

	sc, err := stack.Registry.Context(context.Background(), "slot-1")
	if err != nil {
		t.Fatalf("Registry.Context: %v", err)
	}

	snap, err := sc.Login(context.Background(), "pilot@rotorops.dev", "hangar-9")
	if err != nil {
		t.Fatalf("Login with seeded identity: %v", err)
	}
	if !snap.IsAuthenticated {
		t.Error("seeded login should authenticate")
	}
}

func TestBuildAuth_DatabaseModeRequiresDB(t *testing.T) {
	cfg := devConfig()
	cfg.Auth.DirectoryMode = config.DirectoryModeDatabase

	_, err := BuildAuth(context.Background(), AuthDeps{Config: cfg})
	if err == nil {
		t.Fatal("expected error without a database connection")
	}
}

func TestBuildAuth_RedisBackendRequiresClient(t *testing.T) {
	cfg := devConfig()
	cfg.Auth.SessionBackend = config.SessionBackendRedis

	_, err := BuildAuth(context.Background(), AuthDeps{Config: cfg})
	if err == nil {
		t.Fatal("expected error without a redis connection")
	}
}

func TestStartHTTPServer_NilConfig(t *testing.T) {
	if StartHTTPServer(nil) != nil {
		t.Error("nil config should not start a server")
	}
}
