package retry

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// MaxBatchBackoff caps the sleep between batch retry attempts.
const MaxBatchBackoff = 5 * time.Second

// BackoffStrategy computes the delay before a retry attempt.
type BackoffStrategy interface {
	// NextDelay returns the delay before the given attempt (1-based).
	NextDelay(attempt int) time.Duration
}

// ExponentialBackoff grows the delay geometrically, capped at MaxDelay.
// Delay computation is pure so tests can assert on durations without
// sleeping.
type ExponentialBackoff struct {
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps the computed delay.
	MaxDelay time.Duration
	// Multiplier is the growth factor between attempts.
	Multiplier float64
	// JitterFactor adds randomness in [-jitter, +jitter] (0 disables it).
	JitterFactor float64
}

// DefaultExponentialBackoff returns the backoff used for batch retries:
// geometric growth capped at 5 seconds, no jitter so retry pacing stays
// deterministic and monotonic.
func DefaultExponentialBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		BaseDelay:  time.Second,
		MaxDelay:   MaxBatchBackoff,
		Multiplier: 1.5,
	}
}

// NextDelay computes the delay before the given attempt.
func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := float64(eb.BaseDelay) * math.Pow(eb.Multiplier, float64(attempt-1))
	if delay > float64(eb.MaxDelay) {
		delay = float64(eb.MaxDelay)
	}

	if eb.JitterFactor > 0 {
		jitter := delay * eb.JitterFactor
		delay += (rand.Float64() * 2 * jitter) - jitter
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}

// ConstantBackoff applies the same delay before every retry.
type ConstantBackoff struct {
	Delay time.Duration
}

// NextDelay returns the constant delay.
func (cb *ConstantBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return cb.Delay
}

// Wait sleeps for delay or until ctx is cancelled, whichever comes first.
func Wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
