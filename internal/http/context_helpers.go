package httpx

import (
	"context"

	"github.com/rotorops/rotorops/internal/domain/auth"
	"github.com/rotorops/rotorops/internal/service"
)

// Unexported context key types to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same keys.
type slotKey struct{}
type sessionContextKey struct{}
type snapshotKey struct{}

// SetSlotInContext returns a child context carrying the device slot ID.
func SetSlotInContext(ctx context.Context, slotID string) context.Context {
	if slotID == "" {
		return ctx
	}
	return context.WithValue(ctx, slotKey{}, slotID)
}

// GetSlotFromContext returns the device slot ID and whether one is present.
func GetSlotFromContext(ctx context.Context) (string, bool) {
	if slotID, ok := ctx.Value(slotKey{}).(string); ok && slotID != "" {
		return slotID, true
	}
	return "", false
}

// SetSessionContextInContext returns a child context carrying the slot's
// session context. If sc is nil, the original ctx is returned unchanged.
func SetSessionContextInContext(ctx context.Context, sc *service.SessionContext) context.Context {
	if sc == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey{}, sc)
}

// GetSessionContextFromContext returns the slot's session context and a
// boolean indicating presence.
func GetSessionContextFromContext(ctx context.Context) (*service.SessionContext, bool) {
	if sc, ok := ctx.Value(sessionContextKey{}).(*service.SessionContext); ok && sc != nil {
		return sc, true
	}
	return nil, false
}

// SetSnapshotInContext returns a child context carrying the session snapshot
// taken when the request entered the middleware chain.
func SetSnapshotInContext(ctx context.Context, snap auth.Snapshot) context.Context {
	return context.WithValue(ctx, snapshotKey{}, snap)
}

// GetSnapshotFromContext returns the request's session snapshot. A request
// that never passed the session middleware reads as signed out.
func GetSnapshotFromContext(ctx context.Context) auth.Snapshot {
	if snap, ok := ctx.Value(snapshotKey{}).(auth.Snapshot); ok {
		return snap
	}
	return auth.Snapshot{}
}
