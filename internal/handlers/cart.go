package handlers

import (
	"net/http"
	"strconv"

	"redis-shopping-api/internal/cart"
	"redis-shopping-api/internal/session"
)

type cartAddResponse struct {
	Message string    `json:"message"`
	Cart    cart.Cart `json:"cart"`
}

type cartGetResponse struct {
	Cart   cart.Cart `json:"cart"`
	Source string    `json:"source"`
}

// CartAdd handles POST /cart/add?pid&qty. qty defaults to 1. The
// product id and quantity are appended as given; whether they refer to
// a real product, or are even positive, is not checked.
func (h *API) CartAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserID(r.Context())
	if !ok {
		h.httpError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	pid, err := strconv.Atoi(r.URL.Query().Get("pid"))
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "invalid pid")
		return
	}
	qty := 1
	if q := r.URL.Query().Get("qty"); q != "" {
		qty, err = strconv.Atoi(q)
		if err != nil {
			h.httpError(w, http.StatusBadRequest, "invalid qty")
			return
		}
	}

	items, err := h.Carts.Add(r.Context(), userID, pid, qty)
	if err != nil {
		h.storeError(w, r, "cart add failed", err)
		return
	}
	h.writeJSON(w, cartAddResponse{Message: "Added to cart", Cart: items})
}

// CartGet handles GET /cart.
func (h *API) CartGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserID(r.Context())
	if !ok {
		h.httpError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	items, existed, err := h.Carts.Get(r.Context(), userID)
	if err != nil {
		h.storeError(w, r, "cart read failed", err)
		return
	}

	source := sourceNew
	if existed {
		source = sourceCached
	}
	h.writeJSON(w, cartGetResponse{Cart: items, Source: source})
}
