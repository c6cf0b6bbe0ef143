package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"redis-shopping-api/internal/cache"
	"redis-shopping-api/internal/cart"
	"redis-shopping-api/internal/catalog"
	"redis-shopping-api/internal/session"
	"redis-shopping-api/pkg/logging"
)

// Provenance literals in responses. The exact strings distinguish the
// cache path from the origin path for observability and tests.
const (
	sourceCacheHit  = "redis_db0"
	sourceDatabase  = "database"
	sourceGenerated = "generated"
	sourceCached    = "cached"
	sourceNew       = "new"
)

// API holds dependencies for every shop endpoint.
type API struct {
	Resolver    *cache.Resolver
	Catalog     *catalog.Catalog
	Sessions    *session.Manager
	Carts       *cart.Store
	ProductTTL  time.Duration
	HomepageTTL time.Duration

	// LoginDelay is paid when a login misses the login-attempt cache,
	// modeling the slow credential check.
	LoginDelay cache.Delayer
}

func New(
	resolver *cache.Resolver,
	cat *catalog.Catalog,
	sessions *session.Manager,
	carts *cart.Store,
	productTTL, homepageTTL time.Duration,
	loginDelay cache.Delayer,
) *API {
	if loginDelay == nil {
		loginDelay = cache.NoDelay{}
	}
	return &API{
		Resolver:    resolver,
		Catalog:     cat,
		Sessions:    sessions,
		Carts:       carts,
		ProductTTL:  productTTL,
		HomepageTTL: homepageTTL,
		LoginDelay:  loginDelay,
	}
}

// Root handles GET /.
func (h *API) Root(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"message": "Redis Shopping API running"})
}

// writeJSON is a small helper to send JSON responses consistently.
func (h *API) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (h *API) httpError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// storeError logs a failed store operation and responds 500. Store
// unavailability is not retried here.
func (h *API) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logging.L(r.Context()).Error(op, zap.Error(err))
	h.httpError(w, http.StatusInternalServerError, "internal_server_error")
}
