package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"redis-shopping-api/internal/cache"
)

func TestCatalog_ProductJSON(t *testing.T) {
	c := NewDemo(cache.NoDelay{}, cache.NoDelay{})
	ctx := context.Background()

	data, err := c.ProductJSON(ctx, 1)
	if err != nil {
		t.Fatalf("ProductJSON failed: %v", err)
	}

	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	if p.Name != "iPhone 15" || p.Price != 80000 {
		t.Fatalf("unexpected product: %+v", p)
	}

	if _, err := c.ProductJSON(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestCatalog_QueryDelayIsPaid(t *testing.T) {
	c := NewDemo(cache.FixedDelay(20*time.Millisecond), cache.NoDelay{})

	start := time.Now()
	if _, err := c.ProductJSON(context.Background(), 1); err != nil {
		t.Fatalf("ProductJSON failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected simulated query latency, took only %v", elapsed)
	}
}

func TestCatalog_VerifyUser(t *testing.T) {
	c := NewDemo(cache.NoDelay{}, cache.NoDelay{})

	id, ok := c.VerifyUser("user@example.com", "password123")
	if !ok || id != 101 {
		t.Fatalf("expected demo user 101, got (%d, %v)", id, ok)
	}

	if _, ok := c.VerifyUser("user@example.com", "wrong"); ok {
		t.Fatalf("wrong password must not verify")
	}
	if _, ok := c.VerifyUser("other@example.com", "password123"); ok {
		t.Fatalf("unknown email must not verify")
	}
}

func TestCatalog_HomepageJSON(t *testing.T) {
	c := NewDemo(cache.NoDelay{}, cache.NoDelay{})

	data, err := c.HomepageJSON(context.Background())
	if err != nil {
		t.Fatalf("HomepageJSON failed: %v", err)
	}

	var h Homepage
	if err := json.Unmarshal(data, &h); err != nil {
		t.Fatalf("decode homepage: %v", err)
	}
	if len(h.Banners) != 2 || len(h.Featured) != 2 {
		t.Fatalf("unexpected homepage payload: %+v", h)
	}
}
