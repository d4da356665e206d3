package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// UserIDKey is the context key under which the middleware stores the
// authenticated user's ID.
const UserIDKey = contextKey("userID")

// Identifier resolves a bearer token to a user ID.
type Identifier interface {
	Identify(tokenStr string) (string, error)
}

// Middleware creates a middleware protecting routes with bearer tokens.
func Middleware(identifier Identifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenStr = parts[1]
				}
			}

			if tokenStr == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "missing auth token", http.StatusUnauthorized)
				return
			}

			userID, err := identifier.Identify(tokenStr)
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "could not validate credentials", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user ID stored by the
// middleware, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok
}
