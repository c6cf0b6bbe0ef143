package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Config selects the backend and, for Redis, the address plus the four
// logical database indices.
type Config struct {
	Backend     string // "memory" or "redis"
	Addr        string
	CacheDB     int
	SessionDB   int
	RateLimitDB int
	CartDB      int
}

// NewStores builds the four namespace handles for the configured
// backend. For Redis it fails fast when the server is unreachable.
func NewStores(ctx context.Context, cfg Config) (*Stores, error) {
	switch cfg.Backend {
	case "redis":
		return newRedisStores(ctx, cfg)
	default:
		return NewMemoryStores(), nil
	}
}

// NewMemoryStores builds four independent in-memory namespaces.
func NewMemoryStores() *Stores {
	return &Stores{
		Cache:     NewMemoryStore(0),
		Sessions:  NewMemoryStore(0),
		RateLimit: NewMemoryStore(0),
		Carts:     NewMemoryStore(0),
	}
}

func newRedisStores(ctx context.Context, cfg Config) (*Stores, error) {
	client := func(db int) *RedisStore {
		return NewRedisStore(redis.NewClient(&redis.Options{
			Addr: cfg.Addr,
			DB:   db,
		}))
	}

	cache := client(cfg.CacheDB)
	if err := cache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Stores{
		Cache:     cache,
		Sessions:  client(cfg.SessionDB),
		RateLimit: client(cfg.RateLimitDB),
		Carts:     client(cfg.CartDB),
	}, nil
}
