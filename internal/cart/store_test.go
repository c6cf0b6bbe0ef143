package cart

import (
	"context"
	"testing"
	"time"

	"redis-shopping-api/internal/cache"
	"redis-shopping-api/internal/store"
)

func TestStore_AppendsWithoutMerging(t *testing.T) {
	kv := store.NewMemoryStore(time.Minute)
	defer kv.Close()

	s := NewStore(kv, time.Minute, cache.NoDelay{})
	ctx := context.Background()

	// A, A, B must stay three separate lines in insertion order.
	if _, err := s.Add(ctx, 101, 1, 2); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	if _, err := s.Add(ctx, 101, 1, 2); err != nil {
		t.Fatalf("second Add failed: %v", err)
	}
	items, err := s.Add(ctx, 101, 2, 1)
	if err != nil {
		t.Fatalf("third Add failed: %v", err)
	}

	want := Cart{
		{ProductID: 1, Quantity: 2},
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d lines, got %d: %#v", len(want), len(items), items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("line %d: expected %+v, got %+v", i, want[i], items[i])
		}
	}
}

func TestStore_GetAbsentCart(t *testing.T) {
	kv := store.NewMemoryStore(time.Minute)
	defer kv.Close()

	s := NewStore(kv, time.Minute, cache.NoDelay{})
	ctx := context.Background()

	items, existed, err := s.Get(ctx, 101)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if existed {
		t.Fatalf("expected absent cart")
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %#v", items)
	}
}

func TestStore_CartsAreIsolatedPerUser(t *testing.T) {
	kv := store.NewMemoryStore(time.Minute)
	defer kv.Close()

	s := NewStore(kv, time.Minute, cache.NoDelay{})
	ctx := context.Background()

	if _, err := s.Add(ctx, 101, 1, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if _, existed, _ := s.Get(ctx, 202); existed {
		t.Fatalf("another user's cart must stay empty")
	}
	items, existed, err := s.Get(ctx, 101)
	if err != nil || !existed || len(items) != 1 {
		t.Fatalf("expected one line for user 101, got (%#v, %v, %v)", items, existed, err)
	}
}

func TestStore_MutationRefreshesTTLButReadsDoNot(t *testing.T) {
	kv := store.NewMemoryStore(time.Minute)
	defer kv.Close()

	s := NewStore(kv, 50*time.Millisecond, cache.NoDelay{})
	ctx := context.Background()

	if _, err := s.Add(ctx, 101, 1, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// A mutation inside the window resets the clock.
	time.Sleep(30 * time.Millisecond)
	if _, err := s.Add(ctx, 101, 2, 1); err != nil {
		t.Fatalf("second Add failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	items, existed, err := s.Get(ctx, 101)
	if err != nil || !existed {
		t.Fatalf("expected cart to survive thanks to TTL reset, got (%v, %v)", existed, err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %#v", items)
	}

	// Reads do not refresh: the cart eventually expires.
	time.Sleep(60 * time.Millisecond)
	if _, existed, _ := s.Get(ctx, 101); existed {
		t.Fatalf("expected cart to expire without mutations")
	}
}
