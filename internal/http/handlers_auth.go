package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rotorops/rotorops/internal/domain/auth"
	"github.com/rotorops/rotorops/internal/service"
)

var (
	errSessionPending = errors.New("a sign-in attempt is still settling")
	errNoSlot         = errors.New("no device slot for this request")
)

// AuthHandlers provides HTTP handlers for session operations. The session
// context itself is resolved per request by the WithSession middleware.
type AuthHandlers struct {
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// loginRequest is the wire shape for POST /auth/login.
type loginRequest struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
}

// loginResponse is the settled snapshot plus the signed-in role's home
// path, so clients land on the right area without consulting their own
// role-to-route table.
type loginResponse struct {
	auth.Snapshot
	Home string `json:"home"`
}

// Login handles the credential sign-in endpoint.
// POST /auth/login with a JSON body {"email": ..., "secret": ...}.
//
// Success returns the settled session snapshot and the role's home path.
// Every failed attempt, whatever the underlying cause, reads as invalid
// credentials.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	sc, ok := GetSessionContextFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "no_session_slot", Err: errNoSlot})
		return
	}

	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	snap, err := sc.Login(r.Context(), req.Email, req.Secret)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "invalid_credentials", Err: err})
			return
		}
		h.logger().ErrorContext(r.Context(), "login failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: errors.New("login failed")})
		return
	}

	resp := loginResponse{Snapshot: snap, Home: auth.LoginPath}
	if snap.User != nil {
		resp.Home = auth.HomePath(snap.User.Role)
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Logout handles the sign-out endpoint.
// POST /auth/logout.
//
// Logout is idempotent; signing out an already signed-out slot succeeds. A
// store clear failure is logged but the response still reflects the signed
// out in-memory state.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sc, ok := GetSessionContextFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "no_session_slot", Err: errNoSlot})
		return
	}

	if err := sc.Logout(r.Context()); err != nil {
		h.logger().WarnContext(r.Context(), "session store clear failed", "error", err)
	}

	WriteJSON(w, http.StatusOK, sc.Snapshot())
}

// Status handles the session inspection endpoint.
// GET /auth/status.
//
// The snapshot is read live from the session context, not from the request
// snapshot, so clients polling during a login see the pending flag settle.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sc, ok := GetSessionContextFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "no_session_slot", Err: errNoSlot})
		return
	}

	WriteJSON(w, http.StatusOK, sc.Snapshot())
}
