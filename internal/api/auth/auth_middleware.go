package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aeschyllus/expensetracker-be/internal/api"
)

// Typed context keys for values injected by Authenticate.
type contextKey string

const UserIDKey contextKey = "userID"

// Authenticate is middleware validating bearer access tokens. Any verification
// failure (missing header, bad format, bad signature, expiry) maps to a single
// 401 outcome.
func Authenticate(verifier *TokenIssuer, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "Authenticate"))

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				l.WarnContext(ctx, "Missing Authorization header")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header required")
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				l.WarnContext(ctx, "Invalid Authorization header format")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
				return
			}

			claims, err := verifier.Verify(headerParts[1])
			if err != nil {
				l.WarnContext(ctx, "Token verification failed", slog.Any("error", err))
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
			l.DebugContext(ctx, "Authentication successful", slog.String("userID", claims.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext returns the authenticated user's id set by Authenticate.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
