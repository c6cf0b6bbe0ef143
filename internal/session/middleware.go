package session

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"redis-shopping-api/pkg/logging"
)

type ctxKey int

const userIDKey ctxKey = iota

// UserID extracts the authenticated user id placed in the context by
// RequireAuth.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// RequireAuth rejects requests without a live bearer session and puts
// the resolved user id into the request context.
func RequireAuth(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID, err := m.Authenticate(ctx, r.Header.Get("Authorization"))
			if err != nil {
				logging.L(ctx).Warn("auth rejected", zap.Error(err))

				status := http.StatusUnauthorized
				var body string
				switch {
				case errors.Is(err, ErrMissingToken):
					body = `{"error":"Missing token"}`
				case errors.Is(err, ErrInvalidOrExpired):
					body = `{"error":"Invalid or expired session"}`
				default:
					// session store unreachable
					status = http.StatusInternalServerError
					body = `{"error":"internal_server_error"}`
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_, _ = w.Write([]byte(body))
				return
			}

			ctx = context.WithValue(ctx, userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
