package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"redis-shopping-api/internal/session"
	"redis-shopping-api/pkg/logging"
)

type loginResponse struct {
	Token  string `json:"token"`
	Source string `json:"source"`
}

// Login handles POST /login. A token cached from a recent login for
// the same email is returned immediately, without re-checking the
// password — that is the login-attempt cache's contract for its
// lifetime. Otherwise the credential check pays the slow-path delay,
// a fresh session is minted, and its token is cached for the email.
func (h *API) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)

	email := r.FormValue("email")
	password := r.FormValue("password")

	if email != "" {
		cachedToken, ok, err := h.Sessions.CachedToken(ctx, email)
		if err != nil {
			h.storeError(w, r, "login cache lookup failed", err)
			return
		}
		if ok {
			logger.Info("login served from attempt cache", zap.String("email", email))
			h.writeJSON(w, loginResponse{Token: cachedToken, Source: sourceCached})
			return
		}
	}

	if err := h.LoginDelay.Wait(ctx); err != nil {
		h.storeError(w, r, "login delayed fetch canceled", err)
		return
	}

	userID, ok := h.Catalog.VerifyUser(email, password)
	if !ok {
		logger.Warn("login rejected", zap.String("email", email))
		h.httpError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.Sessions.Create(ctx, userID)
	if err != nil {
		h.storeError(w, r, "session create failed", err)
		return
	}
	if err := h.Sessions.CacheToken(ctx, email, token); err != nil {
		h.storeError(w, r, "login token cache failed", err)
		return
	}

	logger.Info("session created", zap.Int("user_id", userID))
	h.writeJSON(w, loginResponse{Token: token, Source: sourceNew})
}

// Me handles GET /me for an authenticated session.
func (h *API) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserID(r.Context())
	if !ok {
		h.httpError(w, http.StatusUnauthorized, "Missing token")
		return
	}
	h.writeJSON(w, map[string]int{"user_id": userID})
}
