package httpx

import (
	"log/slog"
	"net/http"

	"github.com/rotorops/rotorops/internal/domain/auth"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions     SessionResolver
	Personnel    DirectoryLister
	RouteTable   []auth.RouteRule
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures a new HTTP router. Every route runs
// behind the device slot and session middleware; the protected areas run
// behind the guard as well.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rules := services.RouteTable
	if rules == nil {
		rules = auth.DefaultRouteTable()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Logger: logger}
	mux.Handle("POST /auth/login", http.HandlerFunc(authHandlers.Login))
	mux.Handle("POST /auth/logout", http.HandlerFunc(authHandlers.Logout))
	mux.Handle("GET /auth/status", http.HandlerFunc(authHandlers.Status))

	dashboards := &DashboardHandlers{Personnel: services.Personnel, Logger: logger}
	mux.Handle("GET /pilot", http.HandlerFunc(dashboards.Pilot))
	mux.Handle("GET /pilot/", http.HandlerFunc(dashboards.Pilot))
	mux.Handle("GET /admin", http.HandlerFunc(dashboards.Admin))
	mux.Handle("GET /admin/", http.HandlerFunc(dashboards.Admin))
	mux.Handle("GET /ground", http.HandlerFunc(dashboards.Ground))
	mux.Handle("GET /ground/", http.HandlerFunc(dashboards.Ground))

	mux.Handle("GET "+auth.LoginPath, http.HandlerFunc(LoginPage))

	var handler http.Handler = mux
	handler = Guard(rules)(handler)
	handler = WithSession(services.Sessions, logger)(handler)
	handler = DeviceSlot(services.CookieDomain)(handler)

	// Health probes bypass the session chain so liveness checks do not mint
	// device slots.
	root := http.NewServeMux()
	root.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	root.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	root.Handle("/", handler)

	var outer http.Handler = root
	outer = Logging(logger)(outer)
	outer = Recover(logger)(outer)
	return outer
}
