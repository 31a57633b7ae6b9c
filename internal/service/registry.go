package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/rotorops/rotorops/internal/ports"
)

// StoreFactory builds the single-slot session store for a device slot.
type StoreFactory func(slotID string) (ports.SessionStore, error)

// RegistryOptions groups dependencies for NewRegistry.
type RegistryOptions struct {
	NewStore      StoreFactory
	Authenticator ports.Authenticator
	Logger        *slog.Logger
}

// Registry hands out the one SessionContext per device slot. Contexts are
// created lazily on first use, bootstrapping from their store at that
// moment, and live for the process lifetime.
type Registry struct {
	mu       sync.Mutex
	contexts map[string]*SessionContext

	newStore      StoreFactory
	authenticator ports.Authenticator
	logger        *slog.Logger
}

// NewRegistry constructs a Registry.
func NewRegistry(opts RegistryOptions) (*Registry, error) {
	if opts.NewStore == nil {
		return nil, errors.New("store factory is required")
	}
	if opts.Authenticator == nil {
		return nil, errors.New("authenticator is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		contexts:      make(map[string]*SessionContext),
		newStore:      opts.NewStore,
		authenticator: opts.Authenticator,
		logger:        logger,
	}, nil
}

// Context returns the session context for slotID, creating and
// bootstrapping it on first use.
func (r *Registry) Context(ctx context.Context, slotID string) (*SessionContext, error) {
	if slotID == "" {
		return nil, errors.New("slot ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if sc, ok := r.contexts[slotID]; ok {
		return sc, nil
	}

	store, err := r.newStore(slotID)
	if err != nil {
		return nil, err
	}
	sc, err := NewSessionContext(ctx, SessionContextOptions{
		Store:         store,
		Authenticator: r.authenticator,
		Logger:        r.logger,
	})
	if err != nil {
		return nil, err
	}
	r.contexts[slotID] = sc
	return sc, nil
}
