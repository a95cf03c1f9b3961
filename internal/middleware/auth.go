package middleware

import (
	"context"
	"net/http"

	"eventsphere/internal/models"

	"github.com/gorilla/sessions"
)

type contextKey string

const (
	// UserContextKey is the context key under which the current user is stored
	UserContextKey contextKey = "user"

	sessionName    = "session"
	userIDValueKey = "user_id"
)

// UserLoader resolves a user id from the session into a full user
type UserLoader interface {
	GetUserByID(id int) (*models.User, error)
}

// AuthMiddleware loads the current user from the session. Establishing the
// session (login) is the hosting deployment's concern; this middleware only
// consumes the user_id the session already carries.
type AuthMiddleware struct {
	users UserLoader
	store sessions.Store
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(users UserLoader, store sessions.Store) *AuthMiddleware {
	return &AuthMiddleware{users: users, store: store}
}

// LoadUser loads the current user from the session and adds it to the request
// context. Requests without a session user continue anonymously.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, sessionName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, ok := session.Values[userIDValueKey].(int)
		if !ok || userID == 0 {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.users.GetUserByID(userID)
		if err != nil || !user.IsActive {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests without an authenticated user
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose user has none of the given roles
func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(r.Context())
			if user == nil {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			http.Error(w, "Insufficient permissions", http.StatusForbidden)
		})
	}
}

// GetUserFromContext returns the current user, or nil for anonymous requests
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}

// WithUser returns a context carrying the given user. Used by tests and by
// internal request handling.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}
