package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"redis-shopping-api/internal/cache"
	"redis-shopping-api/internal/catalog"
	"redis-shopping-api/internal/store"
)

type payloadResponse struct {
	Source string          `json:"source"`
	Data   json.RawMessage `json:"data"`
}

// Product handles GET /product/{pid}: cache-aside over the product
// catalog with the product cache TTL.
func (h *API) Product(w http.ResponseWriter, r *http.Request) {
	pid, err := strconv.Atoi(chi.URLParam(r, "pid"))
	if err != nil {
		h.httpError(w, http.StatusNotFound, "product not found")
		return
	}

	data, src, err := h.Resolver.Resolve(r.Context(), store.ProductKey(pid), h.ProductTTL,
		func(ctx context.Context) ([]byte, error) {
			return h.Catalog.ProductJSON(ctx, pid)
		})
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			h.httpError(w, http.StatusNotFound, "product not found")
			return
		}
		h.storeError(w, r, "product lookup failed", err)
		return
	}

	source := sourceDatabase
	if src == cache.SourceCache {
		source = sourceCacheHit
	}
	h.writeJSON(w, payloadResponse{Source: source, Data: data})
}

// Homepage handles GET /homepage: cache-aside over the generated
// homepage payload with the homepage cache TTL.
func (h *API) Homepage(w http.ResponseWriter, r *http.Request) {
	data, src, err := h.Resolver.Resolve(r.Context(), store.HomepageKey, h.HomepageTTL,
		func(ctx context.Context) ([]byte, error) {
			return h.Catalog.HomepageJSON(ctx)
		})
	if err != nil {
		h.storeError(w, r, "homepage lookup failed", err)
		return
	}

	source := sourceGenerated
	if src == cache.SourceCache {
		source = sourceCacheHit
	}
	h.writeJSON(w, payloadResponse{Source: source, Data: data})
}
