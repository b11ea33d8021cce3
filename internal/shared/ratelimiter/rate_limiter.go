// Package ratelimiter provides a fixed-window rate limiter keyed by
// caller identity, used to throttle login attempts per client IP.
package ratelimiter

import (
	"sync"
	"time"
)

// RateLimiterInterface limits how often an operation may run per key.
type RateLimiterInterface interface {
	Allow(key string) bool
}

// RateLimiter counts events per key within a fixed window. When the
// window elapses the count resets. Allow never blocks.
type RateLimiter struct {
	limit    int
	interval time.Duration

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count     int
	lastReset time.Time
}

// NewRateLimiter creates a new RateLimiter allowing limit events per
// interval for each key.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
	}
}

// Allow reports whether the event for key fits in the current window
// and records it if so.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		rl.windows[key] = &window{count: 1, lastReset: now}
		return true
	}

	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}
