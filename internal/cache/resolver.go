package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"redis-shopping-api/internal/store"
	"redis-shopping-api/pkg/logging"
)

// Source tags where a resolved value came from.
type Source string

const (
	// SourceCache means the value was served from the cache namespace.
	SourceCache Source = "cache"
	// SourceOrigin means the cache missed and the value came from the
	// (slow) origin fetch.
	SourceOrigin Source = "origin"
)

// OriginFunc fetches the authoritative value on a cache miss. It
// returns the serialized payload, or an error (e.g. a not-found) that
// is propagated to the caller without touching the cache.
type OriginFunc func(ctx context.Context) ([]byte, error)

// Resolver implements the cache-aside pattern over one store
// namespace: check the cache, fall back to the origin on a miss, and
// populate the cache with the origin's result.
//
// Writes are plain overwrites. Two concurrent misses for the same key
// both fetch and both write; last write wins. No request coalescing.
type Resolver struct {
	store store.Store
	delay Delayer
}

// NewResolver builds a resolver over the cache namespace. delay is
// waited before every origin fetch to model the slow backing store;
// pass NoDelay in tests.
func NewResolver(st store.Store, delay Delayer) *Resolver {
	if delay == nil {
		delay = NoDelay{}
	}
	return &Resolver{store: st, delay: delay}
}

// Resolve returns the payload under key, tagged with its source. On a
// miss the origin result is stored under key with the given ttl —
// unless the origin fails, in which case nothing is cached.
func (r *Resolver) Resolve(ctx context.Context, key string, ttl time.Duration, origin OriginFunc) ([]byte, Source, error) {
	logger := logging.L(ctx)
	lookupStart := time.Now()

	cached, hit, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("cache lookup: %w", err)
	}
	if hit {
		logger.Info("cache_decision",
			zap.String("key", key),
			zap.Bool("cache_hit", true),
			zap.Duration("lookup_latency", time.Since(lookupStart)),
		)
		return []byte(cached), SourceCache, nil
	}

	// Miss: pay the simulated backing-store latency, then fetch.
	if err := r.delay.Wait(ctx); err != nil {
		return nil, "", err
	}

	originStart := time.Now()
	payload, err := origin(ctx)
	if err != nil {
		return nil, "", err
	}

	if err := r.store.Set(ctx, key, string(payload), ttl); err != nil {
		return nil, "", fmt.Errorf("cache populate: %w", err)
	}

	logger.Info("cache_decision",
		zap.String("key", key),
		zap.Bool("cache_hit", false),
		zap.Duration("origin_latency", time.Since(originStart)),
	)
	return payload, SourceOrigin, nil
}
