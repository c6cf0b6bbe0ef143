package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"redis-shopping-api/internal/store"
)

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	st := store.NewMemoryStore(time.Minute)
	defer st.Close()

	l := New(st, 3, time.Minute, false)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := l.Check(ctx, "10.0.0.1", "/product/1"); err != nil {
			t.Fatalf("request %d should be allowed: %v", i+1, err)
		}
	}

	err := l.Check(ctx, "10.0.0.1", "/product/1")
	var limitErr *LimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected LimitError on request 4, got %v", err)
	}
	if limitErr.RetryAfter <= 0 || limitErr.RetryAfter > time.Minute {
		t.Fatalf("expected retry hint in (0, window], got %v", limitErr.RetryAfter)
	}
}

func TestLimiter_SeparateClientsAndRoutes(t *testing.T) {
	st := store.NewMemoryStore(time.Minute)
	defer st.Close()

	l := New(st, 1, time.Minute, false)
	ctx := context.Background()

	if err := l.Check(ctx, "10.0.0.1", "/homepage"); err != nil {
		t.Fatalf("first request should pass: %v", err)
	}
	if err := l.Check(ctx, "10.0.0.1", "/homepage"); err == nil {
		t.Fatalf("second request on same key should be rejected")
	}

	// Different client and different route each have their own counter.
	if err := l.Check(ctx, "10.0.0.2", "/homepage"); err != nil {
		t.Fatalf("other client should pass: %v", err)
	}
	if err := l.Check(ctx, "10.0.0.1", "/product/1"); err != nil {
		t.Fatalf("other route should pass: %v", err)
	}
}

func TestLimiter_WindowResetsOnExpiry(t *testing.T) {
	st := store.NewMemoryStore(time.Minute)
	defer st.Close()

	l := New(st, 1, 20*time.Millisecond, false)
	ctx := context.Background()

	if err := l.Check(ctx, "c", "/r"); err != nil {
		t.Fatalf("first request should pass: %v", err)
	}
	if err := l.Check(ctx, "c", "/r"); err == nil {
		t.Fatalf("second request within window should be rejected")
	}

	time.Sleep(30 * time.Millisecond)

	if err := l.Check(ctx, "c", "/r"); err != nil {
		t.Fatalf("request after window expiry should pass: %v", err)
	}
}

type failingStore struct{ store.Store }

func (failingStore) Incr(context.Context, string) (int64, error) {
	return 0, errors.New("connection refused")
}

func TestLimiter_StoreFailurePolicy(t *testing.T) {
	ctx := context.Background()

	closed := New(failingStore{}, 10, time.Minute, false)
	if err := closed.Check(ctx, "c", "/r"); err == nil {
		t.Fatalf("fail-closed limiter should surface the store error")
	}

	open := New(failingStore{}, 10, time.Minute, true)
	if err := open.Check(ctx, "c", "/r"); err != nil {
		t.Fatalf("fail-open limiter should admit the request: %v", err)
	}
}
