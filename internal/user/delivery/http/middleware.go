package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jingxi/marketplace/internal/user/domain"
	"github.com/jingxi/marketplace/pkg/auth"
)

type contextKey string

const (
	// UserIDKey holds the resolved caller id.
	UserIDKey contextKey = "user_id"
	// UsernameKey holds the resolved caller username.
	UsernameKey contextKey = "username"
	// RoleKey holds the resolved caller role.
	RoleKey contextKey = "role"
)

// AuthMiddleware resolves the bearer token into a stored user record.
// A token whose subject no longer exists (deleted account) is rejected
// the same way as an invalid token.
type AuthMiddleware struct {
	tokens *auth.TokenManager
	repo   domain.UserRepository
}

// NewAuthMiddleware creates the middleware with its token manager and
// user repository.
func NewAuthMiddleware(tokens *auth.TokenManager, repo domain.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, repo: repo}
}

// Authenticate validates the Authorization header and loads the caller.
func (m *AuthMiddleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondMiddlewareError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondMiddlewareError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := m.tokens.Validate(parts[1])
		if err != nil {
			respondMiddlewareError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := m.repo.FindByID(claims.UserID)
		if err != nil || !user.IsActive {
			respondMiddlewareError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
		ctx = context.WithValue(ctx, UsernameKey, user.Username)
		ctx = context.WithValue(ctx, RoleKey, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireAdmin composes on Authenticate and rejects non-admin callers.
func (m *AuthMiddleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(RoleKey).(string)
		if !ok || role != domain.RoleAdmin {
			respondMiddlewareError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CallerID extracts the resolved user id from the request context.
func CallerID(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(UserIDKey).(uint)
	return id, ok
}

func respondMiddlewareError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
