package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	errs "igcollector/pkg/errors"
	"igcollector/pkg/logger"
)

// Operation is a function that may need retrying.
type Operation func() error

// Config holds retry configuration.
type Config struct {
	// MaxAttempts is the maximum number of attempts.
	MaxAttempts int
	// Backoff computes the delay before each retry.
	Backoff BackoffStrategy
	// RetryIf decides whether an error is worth another attempt.
	RetryIf func(error) bool
	// OnRetry is called before each retry sleep.
	OnRetry func(attempt int, err error, delay time.Duration)
	// Context cancels the retry loop between attempts.
	Context context.Context
	// Logger records retry activity.
	Logger logger.Logger
}

// DefaultConfig returns retry configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 2,
		Backoff:     DefaultExponentialBackoff(),
		RetryIf:     DefaultRetryIf,
		Context:     context.Background(),
	}
}

// DefaultRetryIf retries transient upstream failures and gives up on
// permanent ones (not found, auth wall, malformed response).
func DefaultRetryIf(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *errs.Error
	if errors.As(err, &apiErr) {
		return errs.IsRetryable(apiErr.Type)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// Do runs op until it succeeds, a non-retryable error occurs, the attempt
// budget is spent, or the context is cancelled.
func Do(op Operation, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Backoff == nil {
		cfg.Backoff = DefaultExponentialBackoff()
	}
	if cfg.RetryIf == nil {
		cfg.RetryIf = DefaultRetryIf
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}

	var lastErr error
	for attempt := 1; ; attempt++ {
		if cfg.MaxAttempts > 0 && attempt > cfg.MaxAttempts {
			if cfg.Logger != nil {
				cfg.Logger.ErrorWithFields("retry attempts exhausted", map[string]interface{}{
					"attempts":   attempt - 1,
					"last_error": lastErr.Error(),
				})
			}
			return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
		}

		err := op()
		if err == nil {
			if attempt > 1 && cfg.Logger != nil {
				cfg.Logger.DebugWithFields("operation succeeded after retry", map[string]interface{}{
					"attempt": attempt,
				})
			}
			return nil
		}
		lastErr = err

		if !cfg.RetryIf(err) {
			return err
		}

		delay := cfg.Backoff.NextDelay(attempt)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, delay)
		}
		if cfg.Logger != nil {
			cfg.Logger.WarnWithFields("retrying operation", map[string]interface{}{
				"attempt":  attempt,
				"error":    err.Error(),
				"delay_ms": delay.Milliseconds(),
			})
		}

		if err := Wait(cfg.Context, delay); err != nil {
			return fmt.Errorf("retry cancelled: %w", err)
		}
	}
}
