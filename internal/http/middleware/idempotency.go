// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements idempotency support for unsafe HTTP methods. It
// validates an Idempotency-Key request header against a process-local TTL
// registry; a key seen before within its TTL marks the request as a
// replay, which downstream components can detect (IsReplay) and which the
// rate limiter waives.
package middleware

import (
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header carrying the client's
// idempotency key for unsafe operations.
const HeaderIdempotencyKey = "Idempotency-Key"

// Context keys used internally to stash idempotency state.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"
)

// GetIdempotencyKey returns the validated idempotency key stored in the
// Gin context. The second return value indicates presence.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether this request repeats a previously seen
// idempotency key within its TTL window.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions configures header validation and the registry TTL.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. If nil, a conservative
	// token pattern is used: ^[A-Za-z0-9._~\-:]+$
	Pattern *regexp.Regexp
	// TTL is how long a key counts as seen. Values <= 0 default to 24h.
	TTL time.Duration
}

// keyRegistry is a mutex-guarded map of key → first-seen expiry, with
// opportunistic eviction of expired entries.
type keyRegistry struct {
	mu       sync.Mutex
	seen     map[string]time.Time
	ttl      time.Duration
	cleanupN uint64
}

// remember records key and reports whether it was already present and
// unexpired.
func (r *keyRegistry) remember(key string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cleanupN++
	if r.cleanupN%256 == 0 {
		for k, exp := range r.seen {
			if now.After(exp) {
				delete(r.seen, k)
			}
		}
	}

	if exp, ok := r.seen[key]; ok && now.Before(exp) {
		return true
	}
	r.seen[key] = now.Add(r.ttl)
	return false
}

// IdempotencyValidator validates the Idempotency-Key header when present,
// stashes it in the request context, and flags replays. Requests without
// the header pass through untouched; an invalid header is rejected with
// 400. Safe methods (GET, HEAD, OPTIONS) are never tracked.
func IdempotencyValidator(opts IdempotencyOptions) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	reg := &keyRegistry{seen: make(map[string]time.Time), ttl: ttl}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "bad_request",
				"message": "invalid Idempotency-Key header",
			})
			return
		}

		c.Set(ctxKeyIdemKey, key)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if reg.remember(key, time.Now()) {
			c.Set(ctxKeyIdemReplay, true)
			c.Set(ctxKeyRateBypass, true)
		}
		c.Next()
	}
}
