// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements an in-memory, token-bucket rate limiter with
// per-identity buckets and opportunistic garbage collection. It is
// process-local: for horizontally scaled deployments, prefer a
// distributed limiter to enforce global limits.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// keyFunc selects the identity used to key a rate-limit bucket.
type keyFunc func(*gin.Context) string

// KeyByUserOrIP returns a keyFunc that prefers the portal user id (the
// userId query or form value the chat endpoints carry) and falls back to
// the client IP. Keys are namespaced to avoid collisions.
func KeyByUserOrIP() keyFunc {
	return func(c *gin.Context) string {
		if uid := c.Query("userId"); uid != "" {
			return "user:" + uid
		}
		return "ip:" + c.ClientIP()
	}
}

// visitor holds a single limiter and the last time it was seen, so idle
// buckets can be evicted.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter implements a per-key token-bucket rate limiter. Buckets are
// created on demand in a mutex-guarded map; idle buckets are evicted after
// a TTL during lookups. Safe for concurrent use.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	keyFn    keyFunc
	mu       sync.Mutex
	visitors map[string]*visitor

	ttl      time.Duration
	cleanupN uint64
}

// NewRateLimiter constructs a RateLimiter with the given tokens-per-second
// and burst size. rps <= 0 disables limiting entirely.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		visitors: make(map[string]*visitor),
		ttl:      10 * time.Minute,
	}
}

// Handler returns the Gin middleware enforcing the limit. Requests marked
// as idempotent replays bypass the limiter: serving a stored result costs
// nothing upstream.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rps <= 0 {
			c.Next()
			return
		}
		if v, ok := c.Get(ctxKeyRateBypass); ok {
			if b, _ := v.(bool); b {
				c.Next()
				return
			}
		}

		if !rl.allow(rl.keyFn(c)) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    "too_many_requests",
				"message": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// allow takes one token from the bucket for key, creating it on demand.
func (rl *RateLimiter) allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	// Opportunistic cleanup every 256 lookups.
	rl.cleanupN++
	if rl.cleanupN%256 == 0 {
		for k, vv := range rl.visitors {
			if now.Sub(vv.lastSeen) > rl.ttl {
				delete(rl.visitors, k)
			}
		}
	}
	rl.mu.Unlock()

	return v.limiter.Allow()
}
