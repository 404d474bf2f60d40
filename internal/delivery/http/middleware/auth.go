package middleware

import (
	"context"
	"net/http"
	"strings"

	h "sponsorhub/internal/delivery/http/helpers"
	"sponsorhub/internal/domain"
)

type contextKey string

const organiserIDKey contextKey = "organiserID"

// SetOrganiserID returns a context with the organiser ID set. Used by auth middleware.
func SetOrganiserID(ctx context.Context, organiserID string) context.Context {
	return context.WithValue(ctx, organiserIDKey, organiserID)
}

// OrganiserIDFromContext returns the authenticated organiser ID from the context, if present.
func OrganiserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(organiserIDKey).(string)
	return id, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// organiser ID in the request context. If the token is missing or invalid, it
// responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			organiserID, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetOrganiserID(r.Context(), organiserID))
			next(w, r)
		}
	}
}
