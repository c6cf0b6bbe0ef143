package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"redis-shopping-api/internal/store"
)

var (
	// ErrMissingToken is returned when the Authorization header is
	// absent or not of the form "Bearer <token>".
	ErrMissingToken = errors.New("missing token")

	// ErrInvalidOrExpired is returned when a token does not resolve to
	// a live session.
	ErrInvalidOrExpired = errors.New("invalid or expired session")
)

type sessionRecord struct {
	UserID int `json:"user_id"`
}

// Manager mints and resolves session tokens against the sessions
// namespace. Tokens are UUIDv4; collisions are not checked.
type Manager struct {
	store         store.Store
	ttl           time.Duration
	loginCacheTTL time.Duration
}

// NewManager builds a session manager. ttl bounds every session from
// its creation time; there is no sliding expiration. loginCacheTTL
// bounds the per-email login-attempt token cache.
func NewManager(st store.Store, ttl, loginCacheTTL time.Duration) *Manager {
	return &Manager{store: st, ttl: ttl, loginCacheTTL: loginCacheTTL}
}

// Create mints a fresh token for userID and stores the association
// with the configured TTL.
func (m *Manager) Create(ctx context.Context, userID int) (string, error) {
	token := uuid.NewString()

	payload, err := json.Marshal(sessionRecord{UserID: userID})
	if err != nil {
		return "", err
	}
	if err := m.store.Set(ctx, store.SessionKey(token), string(payload), m.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Resolve looks up a token. A missing or expired key is ok=false, not
// an error. The TTL is not renewed on access.
func (m *Manager) Resolve(ctx context.Context, token string) (int, bool, error) {
	data, ok, err := m.store.Get(ctx, store.SessionKey(token))
	if err != nil {
		return 0, false, fmt.Errorf("resolve session: %w", err)
	}
	if !ok {
		return 0, false, nil
	}

	var rec sessionRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return 0, false, fmt.Errorf("decode session: %w", err)
	}
	return rec.UserID, true, nil
}

// Authenticate validates an Authorization header value and returns the
// session's user id. The header must be exactly "Bearer <token>".
func (m *Manager) Authenticate(ctx context.Context, header string) (int, error) {
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return 0, ErrMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return 0, ErrMissingToken
	}

	userID, ok, err := m.Resolve(ctx, token)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrInvalidOrExpired
	}
	return userID, nil
}

// CachedToken returns the token last issued for email, if the
// login-attempt cache still holds one.
func (m *Manager) CachedToken(ctx context.Context, email string) (string, bool, error) {
	token, ok, err := m.store.Get(ctx, store.LoginAttemptKey(email))
	if err != nil {
		return "", false, fmt.Errorf("login cache lookup: %w", err)
	}
	return token, ok, nil
}

// CacheToken remembers the token issued for email so repeated logins
// within the cache window skip credential verification.
func (m *Manager) CacheToken(ctx context.Context, email, token string) error {
	if err := m.store.Set(ctx, store.LoginAttemptKey(email), token, m.loginCacheTTL); err != nil {
		return fmt.Errorf("cache login token: %w", err)
	}
	return nil
}
