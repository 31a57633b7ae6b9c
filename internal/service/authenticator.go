package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rotorops/rotorops/internal/domain/auth"
	"github.com/rotorops/rotorops/internal/ports"
)

// ErrInvalidCredentials is the single failure surfaced for a wrong email or
// wrong secret. The two cases are indistinguishable to prevent account
// enumeration, and any directory transport failure maps here as well.
var ErrInvalidCredentials = errors.New("invalid credentials")

// DefaultMinLatency is the floor applied to every authenticate call when no
// explicit value is configured.
const DefaultMinLatency = 400 * time.Millisecond

// AuthenticatorOptions groups dependencies for Authenticator.
type AuthenticatorOptions struct {
	Directory ports.Directory
	// MinLatency is the minimum wall-clock duration of an Authenticate
	// call; defaults to DefaultMinLatency. Keeps directory misses and hash
	// mismatches indistinguishable by timing and gives callers a real
	// suspend point.
	MinLatency time.Duration
	Logger     *slog.Logger
}

// Authenticator validates (email, secret) pairs against the directory.
type Authenticator struct {
	directory  ports.Directory
	minLatency time.Duration
	logger     *slog.Logger
}

// NewAuthenticator constructs an Authenticator.
func NewAuthenticator(opts AuthenticatorOptions) (*Authenticator, error) {
	if opts.Directory == nil {
		return nil, errors.New("directory is required")
	}
	minLatency := opts.MinLatency
	if minLatency == 0 {
		minLatency = DefaultMinLatency
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		directory:  opts.Directory,
		minLatency: minLatency,
		logger:     logger,
	}, nil
}

// Authenticate normalizes the email, looks the entry up in the directory and
// compares the trimmed secret against the entry's hash. On any failure it
// returns ErrInvalidCredentials without revealing which field was wrong.
func (a *Authenticator) Authenticate(ctx context.Context, email, secret string) (auth.Identity, error) {
	started := time.Now()

	identity, err := a.verify(ctx, email, secret)

	if waitErr := a.holdMinLatency(ctx, started); waitErr != nil {
		return auth.Identity{}, waitErr
	}
	if err != nil {
		return auth.Identity{}, err
	}
	return identity, nil
}

func (a *Authenticator) verify(ctx context.Context, email, secret string) (auth.Identity, error) {
	normalized := auth.NormalizeEmail(email)
	trimmedSecret := strings.TrimSpace(secret)
	if normalized == "" || trimmedSecret == "" {
		return auth.Identity{}, ErrInvalidCredentials
	}

	entry, err := a.directory.FindByEmail(ctx, normalized)
	if err != nil {
		if !errors.Is(err, ports.ErrEntryNotFound) {
			// Transport-level detail never leaks past this boundary.
			a.logger.WarnContext(ctx, "directory lookup failed", "error", err)
		}
		return auth.Identity{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword(entry.SecretHash, []byte(trimmedSecret)) != nil {
		return auth.Identity{}, ErrInvalidCredentials
	}

	return entry.Identity(), nil
}

// holdMinLatency blocks until the minimum latency since started has elapsed.
func (a *Authenticator) holdMinLatency(ctx context.Context, started time.Time) error {
	remaining := a.minLatency - time.Since(started)
	if remaining <= 0 {
		return nil
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("authenticate: %w", ctx.Err())
	}
}

// HashSecret produces the bcrypt hash stored in the directory for a secret.
func HashSecret(secret string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(secret)), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}
	return hash, nil
}
