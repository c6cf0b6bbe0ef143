package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"redis-shopping-api/internal/cache"
	"redis-shopping-api/internal/store"
)

// Item is one cart line. Adding the same product twice appends a
// second line; quantities are never merged.
type Item struct {
	ProductID int `json:"pid"`
	Quantity  int `json:"qty"`
}

// Cart is the ordered line-item sequence for one user.
type Cart []Item

// Store keeps per-user carts in the carts namespace with a TTL that is
// reset on every mutation. Reads do not refresh the TTL.
type Store struct {
	kv    store.Store
	ttl   time.Duration
	delay cache.Delayer
}

// NewStore builds a cart store. delay is paid once when a user's cart
// does not exist yet, modeling the slow path of creating one.
func NewStore(kv store.Store, ttl time.Duration, delay cache.Delayer) *Store {
	if delay == nil {
		delay = cache.NoDelay{}
	}
	return &Store{kv: kv, ttl: ttl, delay: delay}
}

// Add appends a line to the user's cart and writes it back with a
// fresh TTL, returning the full updated cart. The product id and
// quantity are stored as given: no existence check, no positivity
// check, no merging with prior lines.
func (s *Store) Add(ctx context.Context, userID, productID, qty int) (Cart, error) {
	key := store.CartKey(userID)

	items, existed, err := s.read(ctx, key)
	if err != nil {
		return nil, err
	}
	if !existed {
		if err := s.delay.Wait(ctx); err != nil {
			return nil, err
		}
	}

	items = append(items, Item{ProductID: productID, Quantity: qty})

	payload, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, key, string(payload), s.ttl); err != nil {
		return nil, fmt.Errorf("write cart: %w", err)
	}
	return items, nil
}

// Get returns the user's cart. existed reports whether the cart key
// was present; an absent cart pays the slow-path delay and comes back
// empty. Reading never refreshes the TTL.
func (s *Store) Get(ctx context.Context, userID int) (items Cart, existed bool, err error) {
	items, existed, err = s.read(ctx, store.CartKey(userID))
	if err != nil {
		return nil, false, err
	}
	if !existed {
		if err := s.delay.Wait(ctx); err != nil {
			return nil, false, err
		}
	}
	return items, existed, nil
}

func (s *Store) read(ctx context.Context, key string) (Cart, bool, error) {
	data, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("read cart: %w", err)
	}
	if !ok {
		return Cart{}, false, nil
	}

	var items Cart
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, false, fmt.Errorf("decode cart: %w", err)
	}
	return items, true, nil
}
