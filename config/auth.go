package config

import (
	"fmt"
	"strings"
	"time"
)

// DirectoryMode selects where the user directory comes from.
type DirectoryMode string

const (
	// DirectoryModeDatabase reads directory entries from postgres.
	DirectoryModeDatabase DirectoryMode = "database"
	// DirectoryModeSeed uses the in-process seeded directory (for
	// development and testing).
	DirectoryModeSeed DirectoryMode = "seed"
)

// UnmarshalText implements encoding.TextUnmarshaler for DirectoryMode.
func (d *DirectoryMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "database", "seed":
		*d = DirectoryMode(v)
		return nil
	default:
		return fmt.Errorf("invalid DirectoryMode: %q (valid options: database, seed)", v)
	}
}

// SessionBackend selects where session slots are persisted.
type SessionBackend string

const (
	// SessionBackendRedis persists session slots in redis.
	SessionBackendRedis SessionBackend = "redis"
	// SessionBackendMemory keeps session slots in process memory only
	// (development and tests; sessions do not survive a restart).
	SessionBackendMemory SessionBackend = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionBackend.
func (s *SessionBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "redis", "memory":
		*s = SessionBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionBackend: %q (valid options: redis, memory)", v)
	}
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// DirectoryMode determines which directory backs credential lookups.
	DirectoryMode DirectoryMode `env:"AUTH_DIRECTORY_MODE" envDefault:"database"`

	// SessionBackend determines where session slots live.
	SessionBackend SessionBackend `env:"AUTH_SESSION_BACKEND" envDefault:"redis"`

	// SessionTTL is how long a persisted session survives without a new
	// login. Zero means no expiry.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"720h"`

	// MinLoginLatency is the floor applied to every login attempt so that
	// success and failure are not distinguishable by response time.
	MinLoginLatency time.Duration `env:"AUTH_MIN_LOGIN_LATENCY" envDefault:"400ms"`

	// SeedSecret is the shared secret assigned to seeded directory entries
	// when DirectoryMode=seed.
	SeedSecret string `env:"AUTH_SEED_SECRET" envDefault:"rotorops-dev"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL < 0 {
		a.SessionTTL = 0
	}
	if a.MinLoginLatency < 0 {
		a.MinLoginLatency = 0
	}
}
