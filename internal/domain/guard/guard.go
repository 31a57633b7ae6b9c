package guard

// Package guard holds the per-navigation authorization decision. Decide is a
// pure function of the session snapshot and the requested path; it never
// errors and every branch is terminal. Failures are navigational (redirects),
// not exceptions.

import (
	"github.com/rotorops/rotorops/internal/domain/auth"
)

// State classifies the outcome of a navigation decision.
type State string

const (
	// StatePending means a login is settling; render a neutral loading
	// indicator and do not redirect.
	StatePending State = "pending"
	// StateUnauthenticated means there is no session for a protected path;
	// redirect to login. The originally requested path is discarded.
	StateUnauthenticated State = "unauthenticated"
	// StateForbidden means the session's role may not enter the path;
	// redirect to the role's home route.
	StateForbidden State = "forbidden"
	// StateAuthorized means the requested subtree renders unchanged.
	StateAuthorized State = "authorized"
)

// Decision is the terminal outcome for one navigation. RedirectTo is set
// only for the redirecting states.
type Decision struct {
	State      State
	RedirectTo string
}

// Decide evaluates the guard state machine for path under the given rule
// table. Branches are checked in fixed order; the first match wins:
//
//  1. loading session        -> Pending
//  2. no session             -> Unauthenticated (redirect login)
//  3. role not in rule set   -> Forbidden (redirect role home; unmapped
//     roles land on login, never on protected content)
//  4. otherwise              -> Authorized
//
// Paths matching no rule are public and always Authorized.
func Decide(snap auth.Snapshot, path string, rules []auth.RouteRule) Decision {
	rule, protected := auth.RuleForPath(path, rules)
	if !protected {
		return Decision{State: StateAuthorized}
	}

	if snap.IsLoading {
		return Decision{State: StatePending}
	}

	if !snap.IsAuthenticated || snap.User == nil {
		return Decision{State: StateUnauthenticated, RedirectTo: auth.LoginPath}
	}

	if !rule.Allows(snap.User.Role) {
		return Decision{State: StateForbidden, RedirectTo: auth.HomePath(snap.User.Role)}
	}

	return Decision{State: StateAuthorized}
}
