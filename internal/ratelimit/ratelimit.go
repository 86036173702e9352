// Package ratelimit provides a keyed rate limiter using the token bucket
// algorithm.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// cleanupInterval controls how often idle limiters are discarded. Dropping
// the whole map is coarse but fine here: a fresh limiter starts with a full
// bucket, which only ever errs in the caller's favor.
const cleanupInterval = time.Hour

// KeyedLimiter manages per-key rate limiting.
// Each unique key gets its own independent token bucket.
type KeyedLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a new keyed rate limiter.
// rps: requests per second allowed per key.
// burst: maximum burst size (tokens available immediately).
func New(rps float64, burst int) *KeyedLimiter {
	kl := &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
		done:     make(chan struct{}),
	}

	go kl.cleanup()

	return kl
}

// Allow reports whether a request for the given key should be allowed.
// Returns immediately without blocking.
func (kl *KeyedLimiter) Allow(key string) bool {
	return kl.getLimiter(key).Allow()
}

// getLimiter returns the limiter for a key, creating one if needed.
func (kl *KeyedLimiter) getLimiter(key string) *rate.Limiter {
	// Fast path: read lock
	kl.mu.RLock()
	limiter, exists := kl.limiters[key]
	kl.mu.RUnlock()

	if exists {
		return limiter
	}

	// Slow path: write lock to create
	kl.mu.Lock()
	defer kl.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = kl.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(kl.limit, kl.burst)
	kl.limiters[key] = limiter
	return limiter
}

// Stop shuts down the cleanup goroutine.
func (kl *KeyedLimiter) Stop() {
	kl.stopOnce.Do(func() {
		close(kl.done)
	})
}

// cleanup periodically discards all limiters so the map cannot grow without
// bound under a stream of unique keys.
func (kl *KeyedLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			kl.mu.Lock()
			kl.limiters = make(map[string]*rate.Limiter)
			kl.mu.Unlock()
		case <-kl.done:
			return
		}
	}
}
