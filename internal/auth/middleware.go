package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/membersonly/backend/internal/models"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	levelKey  contextKey = "level"
)

// Middleware validates the JWT access token and requires the caller's capability
// level to be at least requiredLevel. An absent or invalid token, as well as an
// insufficient level, fails with 401: the session is missing or too weak either way.
func Middleware(tokenGenerator *TokenGenerator, requiredLevel models.Level) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				respondUnauthorized(w, "authentication required")
				return
			}

			// Validate token and extract userID and level
			userID, level, err := tokenGenerator.ValidateAccessToken(token)
			if err != nil {
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			if level < requiredLevel {
				respondUnauthorized(w, "insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, levelKey, level)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the access token from the Authorization header or the cookie
func extractToken(r *http.Request) string {
	// Try Authorization header first
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// If not in header, try cookie
	cookie, err := r.Cookie("access_token")
	if err == nil {
		return cookie.Value
	}

	return ""
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}

// GetUserID retrieves the user ID from context
func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}

// GetLevel retrieves the capability level from context
func GetLevel(ctx context.Context) (models.Level, bool) {
	level, ok := ctx.Value(levelKey).(models.Level)
	return level, ok
}
