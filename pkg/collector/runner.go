package collector

import (
	"context"

	"igcollector/pkg/config"
	"igcollector/pkg/logger"
	"igcollector/pkg/retry"
)

// ProfileResolver is the unit of work the runner drives. *Resolver is the
// production implementation.
type ProfileResolver interface {
	Resolve(ctx context.Context, handle string) (*ProfileRecord, error)
}

// Runner processes handles sequentially in input order, applying the
// per-profile delay, the retry budget with exponential backoff, and the
// processing cap. Individual failures become error records; a run never
// aborts because one handle failed.
type Runner struct {
	resolver ProfileResolver
	cache    *Cache
	cfg      config.BatchConfig
	logger   logger.Logger
}

// NewRunner creates a Runner. A nil cache gets a fresh session cache.
func NewRunner(resolver ProfileResolver, cache *Cache, cfg config.BatchConfig, log logger.Logger) *Runner {
	if cache == nil {
		cache = NewCache()
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &Runner{resolver: resolver, cache: cache, cfg: cfg, logger: log}
}

// Run resolves at most cfg.Limit handles from the input, in order, and
// returns the aggregated run. Cancelling ctx stops the run between handles;
// records gathered so far are kept.
func (r *Runner) Run(ctx context.Context, handles []string) *BatchRun {
	work := handles
	if r.cfg.Limit > 0 && len(work) > r.cfg.Limit {
		work = work[:r.cfg.Limit]
	}

	run := &BatchRun{}
	r.logger.InfoWithFields("starting batch run", map[string]interface{}{
		"handles":      len(work),
		"max_attempts": r.cfg.MaxAttempts,
		"delay":        r.cfg.Delay,
	})

	for _, handle := range work {
		if ctx.Err() != nil {
			r.logger.WarnWithFields("batch run cancelled", map[string]interface{}{
				"processed": run.Processed,
				"remaining": len(work) - run.Processed,
			})
			break
		}

		rec := r.ResolveCached(ctx, handle)
		run.add(rec)

		if rec.Failed() {
			r.logger.WarnWithFields("handle failed", map[string]interface{}{
				"username": handle,
				"error":    rec.Error,
			})
		} else {
			r.logger.InfoWithFields("handle resolved", map[string]interface{}{
				"username": handle,
				"emails":   rec.EmailsCount(),
			})
		}
	}

	r.logger.InfoWithFields("batch run finished", map[string]interface{}{
		"processed": run.Processed,
		"emails":    run.EmailsFound,
		"errors":    run.Errors,
		"private":   run.Private,
	})
	return run
}

// ResolveCached returns the cached record for a handle or resolves it with
// the configured delay and retry budget, storing the result. Error records
// are cached too, so a known-bad handle costs one retry cycle per session.
func (r *Runner) ResolveCached(ctx context.Context, handle string) *ProfileRecord {
	if rec, ok := r.cache.Get(handle); ok {
		r.logger.DebugWithFields("cache hit", map[string]interface{}{
			"username": handle,
		})
		return rec
	}

	// Pause before touching the upstream service at all; retries grow this
	// delay through the backoff strategy.
	if err := retry.Wait(ctx, r.cfg.Delay); err != nil {
		return ErrorRecord(handle, err)
	}

	rec := r.resolveWithRetry(ctx, handle)
	r.cache.Put(handle, rec)
	return rec
}

func (r *Runner) resolveWithRetry(ctx context.Context, handle string) *ProfileRecord {
	backoff := &retry.ExponentialBackoff{
		BaseDelay:  r.cfg.Delay,
		MaxDelay:   retry.MaxBatchBackoff,
		Multiplier: r.cfg.BackoffMultiplier,
	}

	var rec *ProfileRecord
	err := retry.Do(func() error {
		res, rerr := r.resolver.Resolve(ctx, handle)
		if rerr != nil {
			return rerr
		}
		rec = res
		return nil
	}, &retry.Config{
		MaxAttempts: r.cfg.MaxAttempts,
		Backoff:     backoff,
		RetryIf:     retry.DefaultRetryIf,
		Context:     ctx,
		Logger:      r.logger.WithField("username", handle),
	})
	if err != nil {
		return ErrorRecord(handle, err)
	}
	return rec
}
