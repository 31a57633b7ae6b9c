package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rotorops/rotorops/internal/domain/auth"
)

func pilotSnapshot() auth.Snapshot {
	return auth.Snapshot{
		User:            &auth.Identity{ID: "u-1", Email: "pilot@org.com", Role: auth.RolePilot},
		IsAuthenticated: true,
	}
}

func TestDecide_AuthorizedForOwnArea(t *testing.T) {
	rules := []auth.RouteRule{{PathPrefix: "/pilot", AllowedRoles: []auth.Role{auth.RolePilot}}}

	d := Decide(pilotSnapshot(), "/pilot/history", rules)

	assert.Equal(t, StateAuthorized, d.State)
	assert.Empty(t, d.RedirectTo)
}

func TestDecide_ForbiddenRedirectsToRoleHome(t *testing.T) {
	rules := []auth.RouteRule{{PathPrefix: "/admin", AllowedRoles: []auth.Role{auth.RoleAdmin, auth.RoleOperator}}}

	d := Decide(pilotSnapshot(), "/admin", rules)

	assert.Equal(t, StateForbidden, d.State)
	assert.Equal(t, "/pilot", d.RedirectTo)
}

func TestDecide_UnauthenticatedRedirectsToLogin(t *testing.T) {
	d := Decide(auth.Snapshot{}, "/admin", auth.DefaultRouteTable())

	assert.Equal(t, StateUnauthenticated, d.State)
	assert.Equal(t, auth.LoginPath, d.RedirectTo)
}

func TestDecide_PendingWinsOverEverything(t *testing.T) {
	// While a login is settling the guard must not redirect, authenticated
	// or not.
	rules := auth.DefaultRouteTable()

	d := Decide(auth.Snapshot{IsLoading: true}, "/pilot", rules)
	assert.Equal(t, StatePending, d.State)

	snap := pilotSnapshot()
	snap.IsLoading = true
	d = Decide(snap, "/admin", rules)
	assert.Equal(t, StatePending, d.State)
}

func TestDecide_UnknownRoleNeverRendersProtectedContent(t *testing.T) {
	snap := auth.Snapshot{
		User:            &auth.Identity{ID: "u-2", Email: "x@org.com", Role: auth.Role("superuser")},
		IsAuthenticated: true,
	}

	for _, path := range []string{"/pilot", "/admin", "/ground/docs"} {
		d := Decide(snap, path, auth.DefaultRouteTable())
		assert.Equal(t, StateForbidden, d.State, "path %s", path)
		assert.Equal(t, auth.LoginPath, d.RedirectTo, "path %s", path)
	}
}

func TestDecide_PublicPathIsAlwaysAuthorized(t *testing.T) {
	for _, snap := range []auth.Snapshot{{}, pilotSnapshot()} {
		d := Decide(snap, "/login", auth.DefaultRouteTable())
		assert.Equal(t, StateAuthorized, d.State)
	}
}

func TestDecide_Pure(t *testing.T) {
	// Same inputs, same decision; re-evaluating without a state change must
	// not alter the outcome.
	snap := pilotSnapshot()
	rules := auth.DefaultRouteTable()
	first := Decide(snap, "/admin", rules)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Decide(snap, "/admin", rules))
	}
}

func TestDecide_NilUserWithAuthenticatedFlag(t *testing.T) {
	// Defensive: a snapshot violating the session invariant still resolves
	// to a login redirect instead of a nil dereference.
	snap := auth.Snapshot{IsAuthenticated: true}

	d := Decide(snap, "/pilot", auth.DefaultRouteTable())

	assert.Equal(t, StateUnauthenticated, d.State)
}
