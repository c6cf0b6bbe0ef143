package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"redis-shopping-api/internal/store"
)

var errMissingWidget = errors.New("widget not found")

func TestResolver_MissThenHit(t *testing.T) {
	st := store.NewMemoryStore(time.Minute)
	defer st.Close()

	r := NewResolver(st, NoDelay{})
	ctx := context.Background()

	originCalls := 0
	origin := func(context.Context) ([]byte, error) {
		originCalls++
		return []byte(`{"id":1}`), nil
	}

	data, src, err := r.Resolve(ctx, "widget:1", time.Minute, origin)
	if err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}
	if src != SourceOrigin {
		t.Fatalf("expected origin provenance on first fetch, got %q", src)
	}
	if string(data) != `{"id":1}` {
		t.Fatalf("unexpected payload: %s", data)
	}

	data2, src2, err := r.Resolve(ctx, "widget:1", time.Minute, origin)
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}
	if src2 != SourceCache {
		t.Fatalf("expected cache provenance on second fetch, got %q", src2)
	}
	if string(data2) != string(data) {
		t.Fatalf("cached payload differs: %s vs %s", data2, data)
	}
	if originCalls != 1 {
		t.Fatalf("expected a single origin fetch, got %d", originCalls)
	}
}

func TestResolver_TTLExpiryRefetches(t *testing.T) {
	st := store.NewMemoryStore(time.Minute)
	defer st.Close()

	r := NewResolver(st, NoDelay{})
	ctx := context.Background()

	originCalls := 0
	origin := func(context.Context) ([]byte, error) {
		originCalls++
		return []byte(`"v"`), nil
	}

	if _, _, err := r.Resolve(ctx, "k", 20*time.Millisecond, origin); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	_, src, err := r.Resolve(ctx, "k", 20*time.Millisecond, origin)
	if err != nil {
		t.Fatalf("Resolve after expiry failed: %v", err)
	}
	if src != SourceOrigin {
		t.Fatalf("expected origin provenance after TTL expiry, got %q", src)
	}
	if originCalls != 2 {
		t.Fatalf("expected origin re-invoked after expiry, got %d calls", originCalls)
	}
}

func TestResolver_NotFoundIsNeverCached(t *testing.T) {
	st := store.NewMemoryStore(time.Minute)
	defer st.Close()

	r := NewResolver(st, NoDelay{})
	ctx := context.Background()

	origin := func(context.Context) ([]byte, error) {
		return nil, errMissingWidget
	}

	for i := 0; i < 2; i++ {
		_, _, err := r.Resolve(ctx, "widget:999", time.Minute, origin)
		if !errors.Is(err, errMissingWidget) {
			t.Fatalf("attempt %d: expected origin error, got %v", i+1, err)
		}
	}

	if _, hit, _ := st.Get(ctx, "widget:999"); hit {
		t.Fatalf("origin failure must not populate the cache")
	}
}

func TestFixedDelay_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := FixedDelay(time.Minute).Wait(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if err := FixedDelay(0).Wait(ctx); err != nil {
		t.Fatalf("zero delay should never block or fail: %v", err)
	}
}

func TestResolver_DelayOnlyPaidOnMiss(t *testing.T) {
	st := store.NewMemoryStore(time.Minute)
	defer st.Close()

	r := NewResolver(st, FixedDelay(50*time.Millisecond))
	ctx := context.Background()

	origin := func(context.Context) ([]byte, error) {
		return []byte(`"v"`), nil
	}

	if _, _, err := r.Resolve(ctx, "k", time.Minute, origin); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	start := time.Now()
	_, src, err := r.Resolve(ctx, "k", time.Minute, origin)
	if err != nil {
		t.Fatalf("cached Resolve failed: %v", err)
	}
	if src != SourceCache {
		t.Fatalf("expected cache hit, got %q", src)
	}
	if elapsed := time.Since(start); elapsed > 25*time.Millisecond {
		t.Fatalf("cache hit should skip the miss delay, took %v", elapsed)
	}
}
