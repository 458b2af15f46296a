// Package ratelimit provides per-key token buckets, such as one per client IP.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const minIdle = time.Minute

// KeyedRateLimiter keeps an independent token bucket for each key.
//
// A bucket untouched for longer than its full refill time is evicted; a fresh
// bucket for the same key behaves identically, so eviction never loosens the limit.
type KeyedRateLimiter struct {
	mu       sync.Mutex
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
	idle     time.Duration
}

// New creates a limiter allowing rps requests per second per key with the given burst.
func New(rps float64, burst int) *KeyedRateLimiter {
	return newLimiter(rps, burst, refillTime(rps, burst))
}

func newLimiter(rps float64, burst int, idle time.Duration) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: cache.New(idle, idle),
		limit:    rate.Limit(rps),
		burst:    burst,
		idle:     idle,
	}
}

// refillTime is how long an empty bucket takes to fill, never less than minIdle.
func refillTime(rps float64, burst int) time.Duration {
	if rps <= 0 {
		return cache.NoExpiration
	}
	d := time.Duration(float64(burst) / rps * float64(time.Second))
	return max(d, minIdle)
}

// Allow reports whether a request for key may proceed now, consuming a token if so.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	return krl.limiter(key).Allow()
}

// Wait blocks until key has a token or ctx ends.
func (krl *KeyedRateLimiter) Wait(ctx context.Context, key string) error {
	return krl.limiter(key).Wait(ctx)
}

// Len returns the number of keys currently tracked.
func (krl *KeyedRateLimiter) Len() int {
	return krl.limiters.ItemCount()
}

// limiter returns the bucket for key, creating it on first use. Every access
// pushes the key's eviction deadline back.
func (krl *KeyedRateLimiter) limiter(key string) *rate.Limiter {
	krl.mu.Lock()
	defer krl.mu.Unlock()

	l, ok := krl.limiters.Get(key)
	if !ok {
		l = rate.NewLimiter(krl.limit, krl.burst)
	}
	krl.limiters.Set(key, l, cache.DefaultExpiration)
	return l.(*rate.Limiter)
}

// Stop drops every bucket.
func (krl *KeyedRateLimiter) Stop() {
	krl.limiters.Flush()
}
