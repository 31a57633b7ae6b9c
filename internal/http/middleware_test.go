package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotorops/rotorops/internal/domain/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDeviceSlot_MintsSlotForNewBrowser(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = GetSlotFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	DeviceSlot("")(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SlotCookieName, cookies[0].Name)
	assert.Equal(t, seen, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestDeviceSlot_ReusesExistingSlot(t *testing.T) {
	slotID := uuid.NewString()
	var seen string
	inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = GetSlotFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SlotCookieName, Value: slotID})
	rec := httptest.NewRecorder()
	DeviceSlot("")(inner).ServeHTTP(rec, req)

	assert.Equal(t, slotID, seen)
	assert.Empty(t, rec.Result().Cookies(), "a valid slot must not be reissued")
}

func TestDeviceSlot_ReplacesMalformedSlot(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = GetSlotFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SlotCookieName, Value: "not-a-uuid"})
	rec := httptest.NewRecorder()
	DeviceSlot("")(inner).ServeHTTP(rec, req)

	require.NotEqual(t, "not-a-uuid", seen)
	require.Len(t, rec.Result().Cookies(), 1)
}

func guardedProbe(rules []auth.RouteRule, snap auth.Snapshot, path string) *httptest.ResponseRecorder {
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(SetSnapshotInContext(req.Context(), snap))
	rec := httptest.NewRecorder()
	Guard(rules)(inner).ServeHTTP(rec, req)
	return rec
}

func TestGuard_PendingAnswers503WithRetryAfter(t *testing.T) {
	rec := guardedProbe(auth.DefaultRouteTable(), auth.Snapshot{IsLoading: true}, "/pilot")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "session_pending")
}

func TestGuard_UnauthenticatedRedirectsWithoutReturnTo(t *testing.T) {
	rec := guardedProbe(auth.DefaultRouteTable(), auth.Snapshot{}, "/admin/fleet")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	// The originally requested path is discarded, not carried as a query
	// parameter.
	assert.Equal(t, auth.LoginPath, rec.Header().Get("Location"))
}

func TestGuard_ForbiddenRedirectsToRoleHome(t *testing.T) {
	snap := auth.Snapshot{
		User:            &auth.Identity{ID: "u-1", Role: auth.RolePilot},
		IsAuthenticated: true,
	}
	rec := guardedProbe(auth.DefaultRouteTable(), snap, "/admin")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/pilot", rec.Header().Get("Location"))
}

func TestGuard_PublicPathBypasses(t *testing.T) {
	rec := guardedProbe(auth.DefaultRouteTable(), auth.Snapshot{}, "/login")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecover_Returns500(t *testing.T) {
	inner := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()
	Recover(discardLogger())(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
