package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"reelguess/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserIDContextKey ContextKey = "userID"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens *security.TokenIssuer
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *security.TokenIssuer) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireAuth verifies the Bearer token and injects the user id into the
// request context. Downstream handlers and the game engine trust that id.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondWithError(w, http.StatusUnauthorized, "Missing bearer token", nil)
			return
		}

		userID, err := m.tokens.Verify(token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// Logging middleware logs HTTP requests with a per-request id
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		next.ServeHTTP(w, r)

		log.Printf("[%s] %s %s %s", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}

// UserIDFromContext retrieves the authenticated user id from the request
// context, zero when the request was not authenticated.
func UserIDFromContext(ctx context.Context) int64 {
	userID, ok := ctx.Value(UserIDContextKey).(int64)
	if !ok {
		return 0
	}
	return userID
}
