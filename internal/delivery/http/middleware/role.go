package middleware

import (
	"context"
	"net/http"
	"strings"

	h "lineupplanner/internal/delivery/http/helpers"
	"lineupplanner/internal/domain"
)

// Headers a client uses to pick its view. They are trusted as sent.
const (
	RoleHeader   = "X-Lineup-Role"
	ArtistHeader = "X-Lineup-Artist"
)

type contextKey string

const (
	roleKey     contextKey = "role"
	artistIDKey contextKey = "artistID"
)

// SetRole returns a context carrying the request's role and, for artists, their artist ID.
func SetRole(ctx context.Context, role domain.Role, artistID string) context.Context {
	ctx = context.WithValue(ctx, roleKey, role)
	return context.WithValue(ctx, artistIDKey, artistID)
}

// RoleFromContext returns the role attached by Roles, if present.
func RoleFromContext(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(roleKey).(domain.Role)
	return role, ok
}

// ArtistIDFromContext returns the artist ID attached by Roles. It is empty when none was sent.
func ArtistIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(artistIDKey).(string)
	return id
}

// Roles attaches a role to every request: the X-Lineup-Role header when present,
// otherwise defaultRole. An unknown role is rejected with 400.
func Roles(defaultRole domain.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := defaultRole
		if v := strings.TrimSpace(r.Header.Get(RoleHeader)); v != "" {
			role = domain.Role(strings.ToLower(v))
		}
		if !role.Valid() {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "unknown role "+string(role))
			return
		}
		artistID := strings.TrimSpace(r.Header.Get(ArtistHeader))
		next.ServeHTTP(w, r.WithContext(SetRole(r.Context(), role, artistID)))
	})
}

// RequireRole returns a wrapper that responds 403 unless the request's role is one of roles.
// The artist role additionally needs an artist ID.
func RequireRole(roles ...domain.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok || !containsRole(roles, role) {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "this action is not available to your role")
				return
			}
			if role == domain.RoleArtist && ArtistIDFromContext(r.Context()) == "" {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "missing "+ArtistHeader+" header")
				return
			}
			next(w, r)
		}
	}
}

func containsRole(roles []domain.Role, role domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
