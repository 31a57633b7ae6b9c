package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rotorops/rotorops/config"
	"github.com/rotorops/rotorops/internal/adapters/memstore"
	sessredis "github.com/rotorops/rotorops/internal/adapters/redis"
	"github.com/rotorops/rotorops/internal/data"
	"github.com/rotorops/rotorops/internal/devseed"
	httpx "github.com/rotorops/rotorops/internal/http"
	"github.com/rotorops/rotorops/internal/ports"
	"github.com/rotorops/rotorops/internal/service"
)

// AuthDeps groups the infrastructure needed to assemble the auth stack.
type AuthDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient goredis.UniversalClient
	Logger      *slog.Logger
}

// AuthStack is the assembled authentication wiring consumed by the HTTP
// server: the per-slot session registry and the directory read surface.
type AuthStack struct {
	Registry  *service.Registry
	Personnel httpx.DirectoryLister
}

// BuildAuth wires the directory, authenticator, session store factory and
// registry according to configuration. In seed mode it also provisions the
// development identities.
func BuildAuth(ctx context.Context, deps AuthDeps) (*AuthStack, error) {
	cfg := deps.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	dir, personnel, err := buildDirectory(ctx, cfg, deps.DB, logger)
	if err != nil {
		return nil, err
	}

	authenticator, err := service.NewAuthenticator(service.AuthenticatorOptions{
		Directory:  dir,
		MinLatency: cfg.Auth.MinLoginLatency,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build authenticator: %w", err)
	}

	factory, err := buildStoreFactory(cfg, deps.RedisClient)
	if err != nil {
		return nil, err
	}

	registry, err := service.NewRegistry(service.RegistryOptions{
		NewStore:      factory,
		Authenticator: authenticator,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build session registry: %w", err)
	}

	return &AuthStack{Registry: registry, Personnel: personnel}, nil
}

func buildDirectory(
	ctx context.Context,
	cfg *config.AppConfig,
	db *sql.DB,
	logger *slog.Logger,
) (ports.Directory, httpx.DirectoryLister, error) {
	switch cfg.Auth.DirectoryMode {
	case config.DirectoryModeSeed:
		dir, err := devseed.Directory(cfg.Auth.SeedSecret)
		if err != nil {
			return nil, nil, fmt.Errorf("build seeded directory: %w", err)
		}
		logger.InfoContext(ctx, "using seeded directory", "identities", dir.Len())
		return dir, dir, nil
	default:
		if db == nil {
			return nil, nil, fmt.Errorf("database directory mode requires a database connection")
		}
		repo := data.NewDirectoryRepo(db)
		if cfg.IsDev {
			if err := devseed.SeedDatabase(ctx, db, cfg.Auth.SeedSecret, logger); err != nil {
				return nil, nil, err
			}
		}
		return repo, repo, nil
	}
}

func buildStoreFactory(cfg *config.AppConfig, client goredis.UniversalClient) (service.StoreFactory, error) {
	switch cfg.Auth.SessionBackend {
	case config.SessionBackendMemory:
		return func(string) (ports.SessionStore, error) {
			return memstore.New(), nil
		}, nil
	default:
		if client == nil {
			return nil, fmt.Errorf("redis session backend requires a redis connection")
		}
		ttl := cfg.Auth.SessionTTL
		if ttl <= 0 {
			ttl = 720 * time.Hour
		}
		return func(slotID string) (ports.SessionStore, error) {
			return sessredis.NewSessionStore(client, sessredis.Options{SlotID: slotID, TTL: ttl})
		}, nil
	}
}
