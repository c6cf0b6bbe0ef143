package store

import "strconv"

// Key builders for every namespace. Kept in one place so the wire format
// stays in sync with what operators see in redis-cli.

// ProductKey is the cache-namespace key for a single product.
func ProductKey(pid int) string {
	return "product:" + strconv.Itoa(pid)
}

// HomepageKey is the cache-namespace key for the homepage payload.
const HomepageKey = "homepage"

// SessionKey is the sessions-namespace key for a session token.
func SessionKey(token string) string {
	return "session:" + token
}

// LoginAttemptKey is the sessions-namespace key caching the last token
// issued for an email.
func LoginAttemptKey(email string) string {
	return "login_attempt:" + email
}

// RateLimitKey is the ratelimit-namespace counter key for one client on
// one route.
func RateLimitKey(clientID, route string) string {
	return "ratelimit:" + clientID + ":" + route
}

// CartKey is the carts-namespace key for a user's cart.
func CartKey(userID int) string {
	return "cart:" + strconv.Itoa(userID)
}
