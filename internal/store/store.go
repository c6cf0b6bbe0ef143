package store

import (
	"context"
	"time"
)

// Store is the contract every logical key-value namespace is accessed
// through. Absence and expiry are indistinguishable: both surface as a
// miss from Get and as TTLMissing from TTL.
//
// Implemented by RedisStore (prod) and MemoryStore (dev, tests).
type Store interface {
	// Get returns the value under key, or ok=false on a miss.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key. A ttl > 0 sets an expiry; ttl <= 0
	// stores without one.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Incr atomically increments the integer counter under key,
	// creating it at 1 if absent, and returns the post-increment value.
	Incr(ctx context.Context, key string) (int64, error)

	// Expire sets the remaining lifetime of an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// TTL reports the remaining lifetime of key, or TTLMissing if the
	// key does not exist.
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Del removes key. Deleting an absent key is not an error.
	Del(ctx context.Context, key string) error
}

// TTL sentinel for keys that do not exist (or have already expired).
const TTLMissing = time.Duration(-2)

// Stores bundles the four logical namespaces the API uses. Each handle
// may point at a distinct Redis database; constructed once in main and
// injected into every component — no package-level globals.
type Stores struct {
	Cache     Store
	Sessions  Store
	RateLimit Store
	Carts     Store
}
