package ports

// Package ports defines interfaces (hexagonal ports) for session-related
// behavior. Implementations live in internal/adapters and internal/data;
// orchestration in internal/service.

import (
	"context"
	"errors"

	"github.com/rotorops/rotorops/internal/domain/auth"
)

// ErrNoSession is returned by SessionStore.Read when the slot holds no
// readable record. A malformed record reads as absent, never as an error.
var ErrNoSession = errors.New("no session")

// ErrEntryNotFound is returned by Directory.FindByEmail when no entry
// matches the normalized email.
var ErrEntryNotFound = errors.New("directory entry not found")

// SessionStore is the single-slot durable store for one device's session.
// The slot holds at most one record; Write overwrites atomically and Clear
// removes the record entirely.
type SessionStore interface {
	Read(ctx context.Context) (auth.Identity, error)
	Write(ctx context.Context, user auth.Identity) error
	Clear(ctx context.Context) error
}

// DirectoryEntry is a known identity as held by the user directory,
// including the expected secret in hashed form.
type DirectoryEntry struct {
	ID          string
	DisplayName string
	Email       string
	SecretHash  []byte
	Role        auth.Role
	AvatarRef   string
}

// Identity maps the directory entry to the Identity issued on login.
func (e DirectoryEntry) Identity() auth.Identity {
	return auth.Identity{
		ID:          e.ID,
		DisplayName: e.DisplayName,
		Email:       e.Email,
		Role:        e.Role,
		AvatarRef:   e.AvatarRef,
	}
}

// Directory is the read-only lookup of known identities, queried by
// normalized email.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (DirectoryEntry, error)
}

// Authenticator validates an (email, secret) pair against the directory and
// returns a verified identity or a failure. Implementations never reveal
// which of the two fields was wrong.
type Authenticator interface {
	Authenticate(ctx context.Context, email, secret string) (auth.Identity, error)
}
