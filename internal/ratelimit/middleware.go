package ratelimit

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"redis-shopping-api/pkg/logging"
)

// Middleware gates every request through the limiter, keyed by client
// IP and route path. Rejections carry a Retry-After hint.
func Middleware(l *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			err := l.Check(ctx, clientIP(r), r.URL.Path)
			if err == nil {
				next.ServeHTTP(w, r)
				return
			}

			var limitErr *LimitError
			if errors.As(err, &limitErr) {
				seconds := int(limitErr.RetryAfter.Seconds())
				logging.L(ctx).Warn("rate limit exceeded",
					zap.String("client_ip", clientIP(r)),
					zap.String("route", r.URL.Path),
					zap.Int("retry_after_seconds", seconds),
				)

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = fmt.Fprintf(w, `{"error":"Rate limit exceeded. Retry in %ds","retry_after":%d}`, seconds, seconds)
				return
			}

			// counter store unreachable with fail-closed policy
			logging.L(ctx).Error("rate limit check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"internal_server_error"}`))
		})
	}
}

// clientIP returns the caller identity for rate limiting. chi's RealIP
// middleware rewrites RemoteAddr when forwarding headers are present.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
