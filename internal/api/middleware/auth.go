package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/taskhive/taskhive/internal/api/response"
	"github.com/taskhive/taskhive/internal/auth"
)

const identityKey contextKey = "identity"

// Auth is middleware that extracts the Authorization bearer token and
// resolves it to an Identity via the auth service. A missing or invalid
// token returns 401; an authenticated caller a later check rejects gets
// 403 from the handler, never from here.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			header := r.Header.Get("Authorization")
			if header == "" {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "No token provided", requestID)
				return
			}

			raw := strings.TrimPrefix(header, "Bearer ")
			if raw == header || raw == "" {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "No token provided", requestID)
				return
			}

			identity, err := authService.Authenticate(r.Context(), raw)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidToken) {
					response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token", requestID)
					return
				}
				response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Authentication failed", requestID)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity retrieves the authenticated Identity from the request context.
func GetIdentity(ctx context.Context) *auth.Identity {
	if id, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return id
	}
	return nil
}
