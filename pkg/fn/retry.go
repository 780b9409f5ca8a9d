package fn

import (
	"context"
	"math/rand"
	"time"
)

// RetryOpts configures retry behavior.
type RetryOpts struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Jitter      bool
}

// DefaultRetry provides sensible retry defaults.
var DefaultRetry = RetryOpts{
	MaxAttempts: 3,
	InitialWait: time.Second,
	MaxWait:     30 * time.Second,
	Jitter:      true,
}

// Retry retries f up to MaxAttempts times with exponential backoff. The core
// engine never retries internally; this belongs to calling orchestration.
func Retry[T any](ctx context.Context, opts RetryOpts, f func(context.Context) Result[T]) Result[T] {
	var result Result[T]
	wait := opts.InitialWait

	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		result = f(ctx)
		if result.IsOk() || attempt == opts.MaxAttempts-1 {
			return result
		}

		sleep := wait
		if opts.Jitter {
			sleep = time.Duration(float64(wait) * (0.5 + rand.Float64()))
		}
		if sleep > opts.MaxWait {
			sleep = opts.MaxWait
		}

		select {
		case <-ctx.Done():
			return Err[T](ctx.Err())
		case <-time.After(sleep):
		}

		wait *= 2
		if wait > opts.MaxWait {
			wait = opts.MaxWait
		}
	}
	return result
}
