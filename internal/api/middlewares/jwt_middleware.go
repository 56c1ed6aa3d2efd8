package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/markdave123-py/Convosum/internal/auth"
)

type contextKey string

// UserKey is the request-context key the middleware stores the verified
// token subject under.
const UserKey contextKey = "username"

// JWTMiddleware validates the Authorization header and attaches the
// authenticated username to the request context. A missing, malformed,
// or expired token terminates the request here; handlers never run
// unauthenticated.
func JWTMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing or invalid token", http.StatusUnauthorized)
				return
			}

			username, err := auth.VerifySubject(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext returns the subject stored by JWTMiddleware.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UserKey).(string)
	return username, ok
}
