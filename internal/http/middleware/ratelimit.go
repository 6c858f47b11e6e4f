// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the token-bucket rate limiter that protects the API,
// most importantly the extraction upload route, from abusive clients. Buckets
// are kept per identity: an authenticated account gets its own bucket, and
// anonymous traffic falls back to a per-IP bucket. The limiter is process
// local and keeps its state in memory, which is the right trade-off for a
// single-container deployment; a horizontally scaled setup would need a
// shared store instead.
//
// Idempotent replays of a finished extraction batch are served without
// consuming tokens. IdempotencyValidator flags those requests and Handler
// skips them, so a client retrying a completed upload can never rate-limit
// itself out of its own result.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// keyFunc maps a request to the identity that owns its token bucket.
// The returned key must be stable for the duration of the request.
type keyFunc func(*gin.Context) string

// KeyByUserOrIP keys buckets by the authenticated account when the
// bearer-token middleware resolved one, and by client IP otherwise.
// Keys are prefixed ("user:" / "ip:") so the two namespaces cannot collide.
func KeyByUserOrIP() keyFunc {
	return func(c *gin.Context) string {
		if v, ok := c.Get("userID"); ok {
			if s, ok := v.(string); ok && s != "" {
				return "user:" + s
			}
		}
		return "ip:" + c.ClientIP()
	}
}

// bucket pairs a token bucket with the last time its owner was seen,
// so idle entries can be evicted.
type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a per-identity token-bucket limit.
//
// Buckets are created on demand in a mutex-guarded map. Entries idle for
// longer than ttl are evicted opportunistically during lookups, which bounds
// memory without a background goroutine. Safe for concurrent use.
type RateLimiter struct {
	rps     rate.Limit
	burst   int
	keyFn   keyFunc
	mu      sync.Mutex
	buckets map[string]*bucket

	ttl     time.Duration
	lookups uint64
}

// NewRateLimiter builds a limiter replenishing rps tokens per second with the
// given burst capacity. A burst <= 0 is coerced to 1 so a misconfigured value
// cannot disable the route entirely. Install it via Handler().
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		keyFn:   keyFn,
		buckets: make(map[string]*bucket),
		ttl:     10 * time.Minute,
	}
}

// bucketFor returns the limiter for key, creating it if absent, and refreshes
// its lastSeen stamp. Every ~5000 lookups it sweeps the map for idle entries.
// The sweep runs before the requested key is touched so a stale bucket is
// evicted even when it is the one being fetched.
func (rl *RateLimiter) bucketFor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	rl.lookups++
	if rl.lookups >= 5000 {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) >= rl.ttl {
				delete(rl.buckets, k)
			}
		}
		rl.lookups = 0
	}

	if b, ok := rl.buckets[key]; ok {
		b.lastSeen = now
		lim := b.limiter
		rl.mu.Unlock()
		return lim
	}

	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.buckets[key] = &bucket{limiter: lim, lastSeen: now}
	rl.mu.Unlock()
	return lim
}

// IsRateBypass reports whether IdempotencyValidator marked this request as a
// replay of an already-completed batch. Replays skip limiting entirely.
func IsRateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Handler returns the middleware that enforces the limit.
//
// Replays flagged by IdempotencyValidator pass through untouched. Everything
// else is checked against its identity's bucket; a depleted bucket yields
//
//	HTTP/1.1 429 Too Many Requests
//	Retry-After: 1
//	{"request_id": "...", "code": "rate_limited", "message": "rate limit exceeded"}
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}

		lim := rl.bucketFor(rl.keyFn(c))
		if lim.Allow() {
			c.Next()
			return
		}

		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": c.Writer.Header().Get("X-Request-ID"),
			"code":       "rate_limited",
			"message":    "rate limit exceeded",
		})
	}
}
