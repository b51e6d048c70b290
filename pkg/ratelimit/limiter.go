package ratelimit

import (
	"sync"
	"time"
)

// Limiter paces requests against the upstream service. The profile fetcher
// calls Wait before every lookup so one client never bursts past the
// configured rate.
type Limiter interface {
	// Allow reports whether a request may proceed right now.
	Allow() bool
	// Wait blocks until a request is allowed.
	Wait()
	// Reset restores the limiter to its initial state.
	Reset()
}

// TokenBucket is a token bucket limiter refilled once per period.
type TokenBucket struct {
	capacity     int
	tokens       int
	refillPeriod time.Duration
	lastRefill   time.Time
	mu           sync.Mutex
}

// NewTokenBucket creates a bucket holding capacity tokens per refill period.
func NewTokenBucket(capacity int, refillPeriod time.Duration) *TokenBucket {
	return &TokenBucket{
		capacity:     capacity,
		tokens:       capacity,
		refillPeriod: refillPeriod,
		lastRefill:   time.Now(),
	}
}

// Allow consumes a token if one is available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Wait blocks until a token is available.
func (tb *TokenBucket) Wait() {
	for !tb.Allow() {
		tb.mu.Lock()
		untilRefill := tb.refillPeriod - time.Since(tb.lastRefill)
		tb.mu.Unlock()

		if untilRefill > 0 {
			time.Sleep(untilRefill)
		} else {
			time.Sleep(100 * time.Millisecond)
		}
	}
}

// Reset refills the bucket to capacity.
func (tb *TokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.tokens = tb.capacity
	tb.lastRefill = time.Now()
}

func (tb *TokenBucket) refill() {
	now := time.Now()
	if now.Sub(tb.lastRefill) >= tb.refillPeriod {
		tb.tokens = tb.capacity
		tb.lastRefill = now
	}
}

// Unlimited is a no-op limiter for tests and single-profile lookups.
type Unlimited struct{}

func (Unlimited) Allow() bool { return true }
func (Unlimited) Wait()       {}
func (Unlimited) Reset()      {}
