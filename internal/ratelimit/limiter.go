package ratelimit

import (
	"context"
	"fmt"
	"time"

	"redis-shopping-api/internal/metrics"
	"redis-shopping-api/internal/store"
)

// LimitError reports a rejected request and how long the client should
// wait before retrying.
type LimitError struct {
	RetryAfter time.Duration
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry in %ds", int(e.RetryAfter.Seconds()))
}

// Limiter is a fixed-window counter per (client, route) pair backed by
// the ratelimit namespace. The window resets only when the counter
// expires, so bursts around window boundaries are possible; that is
// the intended behavior of this counter, not a defect.
type Limiter struct {
	store    store.Store
	limit    int64
	window   time.Duration
	failOpen bool
}

// New builds a limiter allowing limit requests per window. failOpen
// selects the policy when the counter store is unreachable: admit the
// request (true) or fail it (false, the default posture).
func New(st store.Store, limit int64, window time.Duration, failOpen bool) *Limiter {
	return &Limiter{store: st, limit: limit, window: window, failOpen: failOpen}
}

// Check gates one request. It returns nil to admit, a *LimitError to
// reject, or the store error when the counter is unreachable and the
// limiter fails closed.
//
// The counter's expiry is set only on the increment that created it.
// Increment and expire are two operations; a concurrent reader may
// briefly observe a counter without an expiry between them.
func (l *Limiter) Check(ctx context.Context, clientID, route string) error {
	key := store.RateLimitKey(clientID, route)

	hits, err := l.store.Incr(ctx, key)
	if err != nil {
		if l.failOpen {
			return nil
		}
		return fmt.Errorf("rate limit counter: %w", err)
	}

	if hits == 1 {
		if err := l.store.Expire(ctx, key, l.window); err != nil && !l.failOpen {
			return fmt.Errorf("rate limit window: %w", err)
		}
	}

	if hits > l.limit {
		retryAfter := l.window
		if ttl, err := l.store.TTL(ctx, key); err == nil && ttl > 0 {
			retryAfter = ttl
		}
		metrics.RateLimitRejectionsTotal.Inc()
		return &LimitError{RetryAfter: retryAfter}
	}

	return nil
}
