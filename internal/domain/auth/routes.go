package auth

import "strings"

// RouteRule declares which roles may enter the route subtree under
// PathPrefix. Every protected prefix maps to a non-empty role set; paths
// matching no rule are implicitly public.
type RouteRule struct {
	PathPrefix   string
	AllowedRoles []Role
}

// Allows reports whether the rule admits the given role.
func (r RouteRule) Allows(role Role) bool {
	for _, allowed := range r.AllowedRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

// DefaultRouteTable returns the static protected-area declarations for the
// application's top-level areas.
//
// Technician is admitted to /admin because /admin is the technician home
// route; a home route its own role cannot enter would redirect forever.
func DefaultRouteTable() []RouteRule {
	return []RouteRule{
		{PathPrefix: "/pilot", AllowedRoles: []Role{RolePilot}},
		{PathPrefix: "/admin", AllowedRoles: []Role{RoleAdmin, RoleOperator, RoleTechnician}},
		{PathPrefix: "/ground", AllowedRoles: []Role{RoleGroundSupport}},
	}
}

// RuleForPath returns the rule whose prefix matches path, if any.
// Matching is segment-aware: "/pilot" matches "/pilot" and "/pilot/history"
// but not "/pilots".
func RuleForPath(path string, rules []RouteRule) (RouteRule, bool) {
	for _, rule := range rules {
		if matchesPrefix(path, rule.PathPrefix) {
			return rule, true
		}
	}
	return RouteRule{}, false
}

func matchesPrefix(path, prefix string) bool {
	if prefix == "" || prefix == "/" {
		return prefix == "/"
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
