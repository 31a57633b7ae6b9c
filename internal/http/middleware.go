package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/rotorops/rotorops/internal/domain/auth"
	"github.com/rotorops/rotorops/internal/domain/guard"
	"github.com/rotorops/rotorops/internal/service"
)

// SlotCookieName is the cookie that pins a browser to its device slot.
const SlotCookieName = "slot_id"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// DeviceSlot returns a middleware that pins each browser to a device slot
// via the slot_id cookie, minting a fresh slot for first-time visitors. The
// slot ID is added to the request context for downstream middleware.
func DeviceSlot(cookieDomain string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slotID := ""
			if cookie, err := r.Cookie(SlotCookieName); err == nil {
				slotID = cookie.Value
			}
			if _, parseErr := uuid.Parse(slotID); parseErr != nil {
				slotID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SlotCookieName,
					Value:    slotID,
					Path:     "/",
					Domain:   cookieDomain,
					HttpOnly: true,
					Secure:   r.TLS != nil,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := SetSlotInContext(r.Context(), slotID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionResolver hands out the session context owning a device slot.
type SessionResolver interface {
	Context(ctx context.Context, slotID string) (*service.SessionContext, error)
}

// WithSession returns a middleware that resolves the request's session
// context from its device slot and stashes both the context and a snapshot
// of its state in the request context. A request without a slot proceeds
// signed out.
func WithSession(resolver SessionResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slotID, ok := GetSlotFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			sc, err := resolver.Context(r.Context(), slotID)
			if err != nil {
				logger.WarnContext(r.Context(), "session resolve failed",
					"slot_id", slotID, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := SetSessionContextInContext(r.Context(), sc)
			ctx = SetSnapshotInContext(ctx, sc.Snapshot())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// guardRetryAfter is the client hint for re-polling while a login settles.
const guardRetryAfter = "1"

// Guard returns a middleware that applies the navigation guard to every
// request. The decision is made once per request from the snapshot taken by
// WithSession:
//
//   - Pending: 503 with Retry-After, the client re-polls rather than being
//     bounced to a stale destination
//   - Unauthenticated and Forbidden: 303 redirect to the decided target
//   - Authorized: pass through
func Guard(rules []auth.RouteRule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := GetSnapshotFromContext(r.Context())
			decision := guard.Decide(snap, r.URL.Path, rules)

			switch decision.State {
			case guard.StatePending:
				w.Header().Set("Retry-After", guardRetryAfter)
				WriteError(w, ErrorParams{
					Code:    http.StatusServiceUnavailable,
					ErrCode: "session_pending",
					Err:     errSessionPending,
				})
			case guard.StateUnauthenticated, guard.StateForbidden:
				http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
