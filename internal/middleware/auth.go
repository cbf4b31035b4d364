package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stockpulse/stockpulse/internal/token"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// GetUserID returns the authenticated user id attached by RequireAuth.
func GetUserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// WithUserID attaches a user id to the context. Exposed for handler tests
// that exercise protected handlers without the middleware.
func WithUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// RequireAuth gates protected routes behind a valid bearer token. The token
// is taken from "Authorization: Bearer <token>"; on success the resolved
// user id is attached to the request context and the chain continues. All
// verification failures produce the same 401 body.
func RequireAuth(verifier *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthenticated(w, "Authentication required")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			userID, err := verifier.Verify(tokenStr)
			if err != nil {
				unauthenticated(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthenticated(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
