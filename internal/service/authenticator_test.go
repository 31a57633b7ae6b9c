package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rotorops/rotorops/internal/adapters/directory"
	"github.com/rotorops/rotorops/internal/domain/auth"
	"github.com/rotorops/rotorops/internal/mocks"
	"github.com/rotorops/rotorops/internal/ports"
)

const testMinLatency = 10 * time.Millisecond

func testDirectory(t *testing.T) *directory.Static {
	t.Helper()
	hash, err := HashSecret("fly-safe")
	require.NoError(t, err)
	d, err := directory.NewStatic([]ports.DirectoryEntry{
		{
			ID:          "u-1",
			DisplayName: "Avery Castillo",
			Email:       "pilot@org.com",
			SecretHash:  hash,
			Role:        auth.RolePilot,
			AvatarRef:   "avatars/u-1.png",
		},
	})
	require.NoError(t, err)
	return d
}

func newTestAuthenticator(t *testing.T, dir ports.Directory) *Authenticator {
	t.Helper()
	a, err := NewAuthenticator(AuthenticatorOptions{Directory: dir, MinLatency: testMinLatency})
	require.NoError(t, err)
	return a
}

func TestAuthenticator_Success(t *testing.T) {
	a := newTestAuthenticator(t, testDirectory(t))

	identity, err := a.Authenticate(context.Background(), "pilot@org.com", "fly-safe")

	require.NoError(t, err)
	assert.Equal(t, "u-1", identity.ID)
	assert.Equal(t, "Avery Castillo", identity.DisplayName)
	assert.Equal(t, auth.RolePilot, identity.Role)
	assert.Equal(t, "avatars/u-1.png", identity.AvatarRef)
}

func TestAuthenticator_EmailIsNormalized(t *testing.T) {
	a := newTestAuthenticator(t, testDirectory(t))

	identity, err := a.Authenticate(context.Background(), "  PILOT@org.com ", "fly-safe")

	require.NoError(t, err)
	assert.Equal(t, "u-1", identity.ID)
}

func TestAuthenticator_SecretIsTrimmedNotFolded(t *testing.T) {
	a := newTestAuthenticator(t, testDirectory(t))

	_, err := a.Authenticate(context.Background(), "pilot@org.com", "  fly-safe  ")
	require.NoError(t, err)

	// Case matters for secrets.
	_, err = a.Authenticate(context.Background(), "pilot@org.com", "FLY-SAFE")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticator_WrongEmailAndWrongSecretAreIndistinguishable(t *testing.T) {
	a := newTestAuthenticator(t, testDirectory(t))
	ctx := context.Background()

	_, wrongEmail := a.Authenticate(ctx, "nobody@org.com", "fly-safe")
	_, wrongSecret := a.Authenticate(ctx, "pilot@org.com", "x")

	assert.ErrorIs(t, wrongEmail, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongSecret, ErrInvalidCredentials)
	assert.Equal(t, wrongEmail.Error(), wrongSecret.Error())
}

func TestAuthenticator_EmptyInputsFail(t *testing.T) {
	a := newTestAuthenticator(t, testDirectory(t))
	ctx := context.Background()

	_, err := a.Authenticate(ctx, "", "fly-safe")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "pilot@org.com", "   ")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticator_DirectoryFailureMapsToInvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := mocks.NewMockDirectory(ctrl)
	dir.EXPECT().
		FindByEmail(gomock.Any(), "pilot@org.com").
		Return(ports.DirectoryEntry{}, errors.New("connection refused"))

	a := newTestAuthenticator(t, dir)

	_, err := a.Authenticate(context.Background(), "pilot@org.com", "fly-safe")

	// Transport detail must not leak to the caller.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotContains(t, err.Error(), "connection refused")
}

func TestAuthenticator_LookupReceivesNormalizedEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := mocks.NewMockDirectory(ctrl)
	dir.EXPECT().
		FindByEmail(gomock.Any(), "pilot@org.com").
		Return(ports.DirectoryEntry{}, ports.ErrEntryNotFound)

	a := newTestAuthenticator(t, dir)

	_, err := a.Authenticate(context.Background(), " PILOT@ORG.COM ", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticator_MinimumLatencyHolds(t *testing.T) {
	a, err := NewAuthenticator(AuthenticatorOptions{
		Directory:  testDirectory(t),
		MinLatency: 60 * time.Millisecond,
	})
	require.NoError(t, err)

	// A directory miss settles fast; the latency floor must still apply.
	started := time.Now()
	_, err = a.Authenticate(context.Background(), "nobody@org.com", "x")
	elapsed := time.Since(started)

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.GreaterOrEqual(t, elapsed, 60*time.Millisecond)
}

func TestNewAuthenticator_RequiresDirectory(t *testing.T) {
	_, err := NewAuthenticator(AuthenticatorOptions{})
	require.Error(t, err)
}
