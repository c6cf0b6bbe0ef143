package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"redis-shopping-api/internal/metrics"
	"redis-shopping-api/pkg/logging"
)

// LoggingStore wraps a Store with per-lookup logging + metrics.
type LoggingStore struct {
	inner     Store
	namespace string
}

// NewLoggingStore returns a store that logs lookups and records them in
// the store_lookups_total counter under the given namespace label.
func NewLoggingStore(inner Store, namespace string) Store {
	return &LoggingStore{inner: inner, namespace: namespace}
}

func (s *LoggingStore) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, ok, err := s.inner.Get(ctx, key)
	latency := time.Since(start)

	result := "miss"
	if err != nil {
		result = "error"
	} else if ok {
		result = "hit"
	}
	metrics.StoreLookupsTotal.WithLabelValues(s.namespace, result).Inc()

	logger := logging.L(ctx)
	fields := []zap.Field{
		zap.String("namespace", s.namespace),
		zap.String("key", key),
		zap.String("store_result", result),
		zap.Duration("lookup_latency", latency),
	}
	if err != nil {
		logger.Warn("store_get_error", append(fields, zap.Error(err))...)
	} else {
		logger.Debug("store_get", fields...)
	}

	return value, ok, err
}

func (s *LoggingStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	err := s.inner.Set(ctx, key, value, ttl)
	if err != nil {
		logging.L(ctx).Warn("store_set_error",
			zap.String("namespace", s.namespace),
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return err
}

func (s *LoggingStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.inner.Incr(ctx, key)
}

func (s *LoggingStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.inner.Expire(ctx, key, ttl)
}

func (s *LoggingStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	return s.inner.TTL(ctx, key)
}

func (s *LoggingStore) Del(ctx context.Context, key string) error {
	return s.inner.Del(ctx, key)
}
