package copilot

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// expirySlack is how long before expires_at a cached token is considered
// stale, so an in-flight stream never starts on a token about to lapse.
const expirySlack = 60 * time.Second

// tokenCache holds exchanged API tokens keyed by the GitHub token that
// produced them. Process-wide and safe for concurrent use; entries never
// outlive expires_at. Exchange failures are never cached.
var tokenCache = newTokenCache()

func newTokenCache() *lru.Cache[string, *APIToken] {
	cache, err := lru.New[string, *APIToken](16)
	if err != nil {
		// Only reachable with a non-positive size.
		panic("copilot: building token cache: " + err.Error())
	}
	return cache
}

// cachedToken returns a still-valid cached token for the GitHub token, if any.
func cachedToken(githubToken string) (*APIToken, bool) {
	tok, ok := tokenCache.Get(githubToken)
	if !ok {
		return nil, false
	}
	if time.Now().After(time.Unix(tok.ExpiresAt, 0).Add(-expirySlack)) {
		tokenCache.Remove(githubToken)
		return nil, false
	}
	return tok, true
}

// storeToken caches a freshly exchanged token.
func storeToken(githubToken string, tok *APIToken) {
	tokenCache.Add(githubToken, tok)
}
