// Package auth extracts caller identity forwarded by the external identity
// provider. Token validation happens upstream; by the time a request reaches
// this service the proxy has already verified the bearer token and attached
// the subject and role as headers.
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/hlog"
)

// Forwarded identity headers set by the auth proxy.
const (
	HeaderUserID = "X-User-Id"
	HeaderRole   = "X-User-Role"
)

// Caller roles
const (
	RoleVolunteer    = "volunteer"
	RoleOrganization = "organization"
	RoleAdmin        = "admin"
)

// Identity is the authenticated caller.
type Identity struct {
	UserID string
	Role   string
}

type contextKey struct{}

// FromContext returns the caller identity, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// WithIdentity returns a context carrying the given identity. Used by tests
// and by the extraction middleware.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// Middleware reads the forwarded identity headers into the request context.
// Requests without identity headers pass through anonymous; role enforcement
// happens per-route via Require.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(HeaderUserID)
		if userID != "" {
			id := Identity{UserID: userID, Role: r.Header.Get(HeaderRole)}
			r = r.WithContext(WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuthenticated rejects requests without a caller identity.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			hlog.FromRequest(r).Warn().Str("path", r.URL.Path).Msg("Missing caller identity")
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Require rejects requests whose caller is missing (401) or holds a
// different role (403).
func Require(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := FromContext(r.Context())
			if !ok {
				hlog.FromRequest(r).Warn().Str("path", r.URL.Path).Msg("Missing caller identity")
				writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required.")
				return
			}
			if id.Role != role {
				hlog.FromRequest(r).Warn().
					Str("path", r.URL.Path).
					Str("role", id.Role).
					Str("required", role).
					Msg("Caller role rejected")
				writeAuthError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
