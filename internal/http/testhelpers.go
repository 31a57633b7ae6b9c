package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rotorops/rotorops/internal/adapters/directory"
	"github.com/rotorops/rotorops/internal/adapters/memstore"
	"github.com/rotorops/rotorops/internal/domain/auth"
	"github.com/rotorops/rotorops/internal/ports"
	"github.com/rotorops/rotorops/internal/service"
)

// testSecret is the shared secret for every seeded test identity.
const testSecret = "fly-safe"

func testDirectoryEntries(t *testing.T) []ports.DirectoryEntry {
	t.Helper()
	hash, err := service.HashSecret(testSecret)
	require.NoError(t, err)

	return []ports.DirectoryEntry{
		{ID: "u-pilot", DisplayName: "Avery Castillo", Email: "pilot@org.com", SecretHash: hash, Role: auth.RolePilot},
		{ID: "u-admin", DisplayName: "Morgan Zhu", Email: "admin@org.com", SecretHash: hash, Role: auth.RoleAdmin},
		{ID: "u-tech", DisplayName: "Riley Okafor", Email: "tech@org.com", SecretHash: hash, Role: auth.RoleTechnician},
		{ID: "u-ground", DisplayName: "Sam Ibarra", Email: "ground@org.com", SecretHash: hash, Role: auth.RoleGroundSupport},
	}
}

// newTestRouter builds the full middleware chain over an in-memory store
// and a seeded directory, the same wiring bootstrap uses in seed mode.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dir, err := directory.NewStatic(testDirectoryEntries(t))
	require.NoError(t, err)

	authenticator, err := service.NewAuthenticator(service.AuthenticatorOptions{
		Directory:  dir,
		MinLatency: 5 * time.Millisecond,
	})
	require.NoError(t, err)

	registry, err := service.NewRegistry(service.RegistryOptions{
		NewStore:      func(string) (ports.SessionStore, error) { return memstore.New(), nil },
		Authenticator: authenticator,
	})
	require.NoError(t, err)

	return NewRouter(RouterServices{
		Sessions:  registry,
		Personnel: dir,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// do runs one request against the router, carrying the slot cookie between
// calls the way a browser would.
func do(t *testing.T, h http.Handler, req *http.Request, slot *http.Cookie) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()
	if slot != nil {
		req.AddCookie(slot)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == SlotCookieName {
			slot = c
		}
	}
	return rec, slot
}

// loginAs signs in the given identity and returns its slot cookie.
func loginAs(t *testing.T, h http.Handler, email string) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"`+email+`","secret":"`+testSecret+`"}`))
	req.Header.Set("Content-Type", "application/json")
	rec, slot := do(t, h, req, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, slot)
	return slot
}
