package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/rotorops/rotorops/internal/domain/auth"
	"github.com/rotorops/rotorops/internal/ports"
)

// DirectoryLister is the read surface of the user directory needed by the
// admin personnel view. Both the postgres repository and the seeded
// directory satisfy it.
type DirectoryLister interface {
	List(ctx context.Context, limit, offset int) ([]ports.DirectoryEntry, error)
	Count(ctx context.Context) (int, error)
}

// DashboardHandlers serves the protected area payloads. Each area handler
// runs behind the guard middleware, so by the time one executes the session
// is settled, authenticated, and authorized for the area.
type DashboardHandlers struct {
	Personnel DirectoryLister
	Logger    *slog.Logger
}

func (h *DashboardHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// areaPayload is the common response shape for the dashboard areas.
type areaPayload struct {
	Area string         `json:"area"`
	User *auth.Identity `json:"user"`
}

// personnelEntry is the admin personnel listing shape. Secret hashes never
// appear on the wire.
type personnelEntry struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        auth.Role `json:"role"`
}

// Pilot handles GET /pilot, the pilot home area.
func (h *DashboardHandlers) Pilot(w http.ResponseWriter, r *http.Request) {
	snap := GetSnapshotFromContext(r.Context())
	WriteJSON(w, http.StatusOK, areaPayload{Area: "pilot", User: snap.User})
}

// Ground handles GET /ground, the ground support area.
func (h *DashboardHandlers) Ground(w http.ResponseWriter, r *http.Request) {
	snap := GetSnapshotFromContext(r.Context())
	WriteJSON(w, http.StatusOK, areaPayload{Area: "ground", User: snap.User})
}

// adminPayload extends the area payload with the personnel roster.
type adminPayload struct {
	areaPayload
	Personnel []personnelEntry `json:"personnel"`
	Total     int              `json:"total"`
}

// Admin handles GET /admin, the administration area, including the
// personnel roster from the directory.
func (h *DashboardHandlers) Admin(w http.ResponseWriter, r *http.Request) {
	snap := GetSnapshotFromContext(r.Context())
	payload := adminPayload{
		areaPayload: areaPayload{Area: "admin", User: snap.User},
		Personnel:   []personnelEntry{},
	}

	if h.Personnel != nil {
		entries, err := h.Personnel.List(r.Context(), 100, 0)
		if err != nil {
			h.logger().ErrorContext(r.Context(), "personnel list failed", "error", err)
			WriteAppError(w, err)
			return
		}
		total, err := h.Personnel.Count(r.Context())
		if err != nil {
			h.logger().ErrorContext(r.Context(), "personnel count failed", "error", err)
			WriteAppError(w, err)
			return
		}
		for _, e := range entries {
			payload.Personnel = append(payload.Personnel, personnelEntry{
				ID:          e.ID,
				DisplayName: e.DisplayName,
				Email:       e.Email,
				Role:        e.Role,
			})
		}
		payload.Total = total
	}

	WriteJSON(w, http.StatusOK, payload)
}

// LoginPage handles GET /login. The JSON API has no HTML login form; this
// endpoint tells redirected clients how to sign in.
func LoginPage(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"message": "sign in with POST /auth/login",
	})
}
