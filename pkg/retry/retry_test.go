package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "igcollector/pkg/errors"
)

func TestExponentialBackoffMonotonicAndCapped(t *testing.T) {
	backoff := DefaultExponentialBackoff()

	var prev time.Duration
	for attempt := 1; attempt <= 20; attempt++ {
		delay := backoff.NextDelay(attempt)
		assert.GreaterOrEqual(t, delay, prev, "attempt %d", attempt)
		assert.LessOrEqual(t, delay, MaxBatchBackoff, "attempt %d", attempt)
		prev = delay
	}
	assert.Equal(t, MaxBatchBackoff, backoff.NextDelay(20))
}

func TestExponentialBackoffGrowth(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:  time.Second,
		MaxDelay:   MaxBatchBackoff,
		Multiplier: 2,
	}

	assert.Equal(t, time.Duration(0), backoff.NextDelay(0))
	assert.Equal(t, time.Second, backoff.NextDelay(1))
	assert.Equal(t, 2*time.Second, backoff.NextDelay(2))
	assert.Equal(t, 4*time.Second, backoff.NextDelay(3))
	assert.Equal(t, 5*time.Second, backoff.NextDelay(4))
	assert.Equal(t, 5*time.Second, backoff.NextDelay(10))
}

func TestExponentialBackoffJitterBounds(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:    time.Second,
		MaxDelay:     MaxBatchBackoff,
		Multiplier:   1,
		JitterFactor: 0.5,
	}

	for i := 0; i < 100; i++ {
		delay := backoff.NextDelay(1)
		assert.GreaterOrEqual(t, delay, 500*time.Millisecond)
		assert.LessOrEqual(t, delay, 1500*time.Millisecond)
	}
}

func TestConstantBackoff(t *testing.T) {
	backoff := &ConstantBackoff{Delay: 100 * time.Millisecond}

	assert.Equal(t, time.Duration(0), backoff.NextDelay(0))
	assert.Equal(t, 100*time.Millisecond, backoff.NextDelay(1))
	assert.Equal(t, 100*time.Millisecond, backoff.NextDelay(7))
}

func fastConfig(maxAttempts int) *Config {
	return &Config{
		MaxAttempts: maxAttempts,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     DefaultRetryIf,
		Context:     context.Background(),
	}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(func() error {
		calls++
		return nil
	}, fastConfig(3))

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(func() error {
		calls++
		if calls < 3 {
			return errs.New(errs.ErrorTypeServerError, 500, "server error")
		}
		return nil
	}, fastConfig(5))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(func() error {
		calls++
		return errs.New(errs.ErrorTypeNetwork, 0, "connection reset")
	}, fastConfig(3))

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "max retry attempts (3) exceeded")
	assert.Equal(t, errs.ErrorTypeNetwork, errs.TypeOf(err))
}

func TestDoStopsOnPermanentError(t *testing.T) {
	permanent := errs.New(errs.ErrorTypeNotFound, 404, "profile not found")
	calls := 0
	err := Do(func() error {
		calls++
		return permanent
	}, fastConfig(5))

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, permanent, err)
}

func TestDoCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := fastConfig(5)
	cfg.Context = ctx
	cfg.Backoff = &ConstantBackoff{Delay: time.Second}

	calls := 0
	err := Do(func() error {
		calls++
		return errs.New(errs.ErrorTypeNetwork, 0, "connection reset")
	}, cfg)

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDoOnRetryCallback(t *testing.T) {
	var attempts []int
	cfg := fastConfig(3)
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
	}

	_ = Do(func() error {
		return errs.New(errs.ErrorTypeRateLimit, 429, "rate limit exceeded")
	}, cfg)

	assert.Equal(t, []int{1, 2, 3}, attempts)
}

func TestDefaultRetryIf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"network", errs.New(errs.ErrorTypeNetwork, 0, "x"), true},
		{"rate limit", errs.New(errs.ErrorTypeRateLimit, 429, "x"), true},
		{"server error", errs.New(errs.ErrorTypeServerError, 503, "x"), true},
		{"not found", errs.New(errs.ErrorTypeNotFound, 404, "x"), false},
		{"auth wall", errs.New(errs.ErrorTypeAuthWall, 401, "x"), false},
		{"parsing", errs.New(errs.ErrorTypeParsing, 200, "x"), false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"untyped", errors.New("boom"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultRetryIf(tt.err))
		})
	}
}

func TestWait(t *testing.T) {
	assert.NoError(t, Wait(context.Background(), 0))
	assert.NoError(t, Wait(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Wait(ctx, time.Minute), context.Canceled)
}
