// Package ratelimiter paces calls to upstream data sources.
package ratelimiter

import (
	"log/slog"
	"time"
)

// Interface limits the frequency of an operation, typically upstream
// fetches during a synchronization run.
type Interface interface {
	WaitIfNeeded()
}

// RateLimiter allows up to limit calls per interval and sleeps when the
// budget is exhausted. It is not safe for concurrent use; sync runs are
// single-threaded.
type RateLimiter struct {
	limit     int
	interval  time.Duration
	count     int
	lastReset time.Time
}

// New creates a RateLimiter allowing limit calls per interval.
func New(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// WaitIfNeeded blocks until another call is allowed under the limit.
func (rl *RateLimiter) WaitIfNeeded() {
	now := time.Now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count > rl.limit {
		sleep := rl.interval - now.Sub(rl.lastReset)
		if sleep > 0 {
			slog.Info("rate limit reached, sleeping", "limit", rl.limit, "sleep", sleep)
			time.Sleep(sleep)
		}
		rl.count = 1
		rl.lastReset = time.Now()
	}
}
