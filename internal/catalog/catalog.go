package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"redis-shopping-api/internal/cache"
)

// ErrNotFound is returned for product ids outside the demo catalog.
var ErrNotFound = errors.New("product not found")

// Product is one demo catalog entry. Price is in minor-unit-free
// decimal currency.
type Product struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Stock int    `json:"stock"`
}

// Homepage is the payload behind GET /homepage.
type Homepage struct {
	Banners  []string `json:"banners"`
	Featured []int    `json:"featured"`
}

// User is a demo account.
type User struct {
	ID       int
	Password string
}

// Catalog is the simulated backing database: an immutable demo data set
// fronted by injectable query delays so fetches are observably slower
// than cache hits.
type Catalog struct {
	products   map[int]Product
	users      map[string]User
	homepage   Homepage
	queryDelay cache.Delayer
	genDelay   cache.Delayer
}

// NewDemo builds the fixed demo data set. queryDelay models a product
// table query, genDelay models homepage generation; pass cache.NoDelay
// in tests.
func NewDemo(queryDelay, genDelay cache.Delayer) *Catalog {
	if queryDelay == nil {
		queryDelay = cache.NoDelay{}
	}
	if genDelay == nil {
		genDelay = cache.NoDelay{}
	}
	return &Catalog{
		products: map[int]Product{
			1: {ID: 1, Name: "iPhone 15", Price: 80000, Stock: 5},
			2: {ID: 2, Name: "MacBook Pro", Price: 180000, Stock: 3},
		},
		users: map[string]User{
			"user@example.com": {ID: 101, Password: "password123"},
		},
		homepage: Homepage{
			Banners:  []string{"Offer 1", "Offer 2"},
			Featured: []int{1, 2},
		},
		queryDelay: queryDelay,
		genDelay:   genDelay,
	}
}

// ProductJSON fetches one product as its serialized payload, paying the
// simulated query latency. Unknown ids return ErrNotFound.
func (c *Catalog) ProductJSON(ctx context.Context, pid int) ([]byte, error) {
	if err := c.queryDelay.Wait(ctx); err != nil {
		return nil, err
	}

	product, ok := c.products[pid]
	if !ok {
		return nil, ErrNotFound
	}
	return json.Marshal(product)
}

// HomepageJSON generates the homepage payload, paying the simulated
// generation latency.
func (c *Catalog) HomepageJSON(ctx context.Context) ([]byte, error) {
	if err := c.genDelay.Wait(ctx); err != nil {
		return nil, err
	}
	return json.Marshal(c.homepage)
}

// VerifyUser checks the demo credential table and returns the user id
// on a match.
func (c *Catalog) VerifyUser(email, password string) (int, bool) {
	user, ok := c.users[email]
	if !ok || user.Password != password {
		return 0, false
	}
	return user.ID, true
}
