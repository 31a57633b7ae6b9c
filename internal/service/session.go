package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/rotorops/rotorops/internal/domain/auth"
	"github.com/rotorops/rotorops/internal/ports"
)

// SessionContext owns the authentication state for one device slot. It is
// the single source of truth consumed by every view: it owns the session
// store and the authenticator, and it is the sole writer of session state.
//
// Lifecycle: construction bootstraps from the store; Login and Logout are
// the only mutations; Logout (or a corrupt store record) resets to empty.
type SessionContext struct {
	mu      sync.Mutex
	user    *auth.Identity
	loading bool

	store         ports.SessionStore
	authenticator ports.Authenticator
	flight        singleflight.Group
	logger        *slog.Logger

	obsMu     sync.Mutex
	observers []func(auth.Snapshot)
}

// SessionContextOptions groups dependencies for NewSessionContext.
type SessionContextOptions struct {
	Store         ports.SessionStore
	Authenticator ports.Authenticator
	Logger        *slog.Logger
}

// NewSessionContext constructs a session context and bootstraps it from the
// store. A missing or corrupt record starts the context unauthenticated;
// bootstrap never fails the construction.
func NewSessionContext(ctx context.Context, opts SessionContextOptions) (*SessionContext, error) {
	if opts.Store == nil {
		return nil, errors.New("session store is required")
	}
	if opts.Authenticator == nil {
		return nil, errors.New("authenticator is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &SessionContext{
		store:         opts.Store,
		authenticator: opts.Authenticator,
		logger:        logger,
	}

	user, err := opts.Store.Read(ctx)
	switch {
	case err == nil:
		c.user = &user
	case errors.Is(err, ports.ErrNoSession):
		// Fresh device or corrupt record: start unauthenticated.
	default:
		// A store outage is equivalent to "no session"; the app must come
		// up rather than crash on bootstrap.
		logger.WarnContext(ctx, "session bootstrap read failed", "error", err)
	}

	return c, nil
}

// Snapshot returns a read-only copy of the current session state.
func (c *SessionContext) Snapshot() auth.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *SessionContext) snapshotLocked() auth.Snapshot {
	snap := auth.Snapshot{
		IsAuthenticated: c.user != nil,
		IsLoading:       c.loading,
	}
	if c.user != nil {
		user := *c.user
		snap.User = &user
	}
	return snap
}

// Login validates the credentials and, on success, installs the returned
// identity and persists it to the store. While a call is pending the
// snapshot exposes IsLoading=true and concurrent calls join the in-flight
// one rather than issuing a second authenticate (single-flight per context).
// On failure the session state is left exactly as it was.
func (c *SessionContext) Login(ctx context.Context, email, secret string) (auth.Snapshot, error) {
	v, err, _ := c.flight.Do("login", func() (any, error) {
		c.setLoading(true)

		identity, authErr := c.authenticator.Authenticate(ctx, email, secret)
		if authErr != nil {
			c.setLoading(false)
			return nil, authErr
		}

		// Settle the login in one state transition: authenticated and no
		// longer loading.
		c.mu.Lock()
		c.user = &identity
		c.loading = false
		snap := c.snapshotLocked()
		c.mu.Unlock()

		if writeErr := c.store.Write(ctx, identity); writeErr != nil {
			// The in-memory state is authoritative; a persistence failure
			// only costs the session its durability across restarts.
			c.logger.WarnContext(ctx, "session store write failed", "error", writeErr)
		}

		c.notify(snap)
		return snap, nil
	})
	if err != nil {
		return c.Snapshot(), err
	}

	snap, ok := v.(auth.Snapshot)
	if !ok {
		return c.Snapshot(), errors.New("unexpected login result type")
	}
	return snap, nil
}

// Logout resets the context to empty and clears the store. It is
// idempotent: logging out an already signed-out context is a no-op with the
// same observable end state.
func (c *SessionContext) Logout(ctx context.Context) error {
	c.mu.Lock()
	changed := c.user != nil
	c.user = nil
	snap := c.snapshotLocked()
	c.mu.Unlock()

	err := c.store.Clear(ctx)

	if changed {
		c.notify(snap)
	}
	return err
}

// OnChange registers an observer invoked with a snapshot after every settled
// state change, including loading transitions. Consumers use it to
// re-evaluate the route guard for the current location.
func (c *SessionContext) OnChange(fn func(auth.Snapshot)) {
	if fn == nil {
		return
	}
	c.obsMu.Lock()
	c.observers = append(c.observers, fn)
	c.obsMu.Unlock()
}

func (c *SessionContext) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

func (c *SessionContext) notify(snap auth.Snapshot) {
	c.obsMu.Lock()
	observers := append(([]func(auth.Snapshot))(nil), c.observers...)
	c.obsMu.Unlock()
	for _, fn := range observers {
		fn(snap)
	}
}
