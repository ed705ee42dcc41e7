// Package retry runs an operation until it succeeds, the attempts run out
// or the context is done.
package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

const defaultDelay = 100 * time.Millisecond

// Backoff returns how long to wait after the given failed attempt (1-based).
type Backoff func(attempt int) time.Duration

type ShouldRetry func(error) bool

type Policy struct {
	MaxAttempts int
	Backoff     Backoff
	ShouldRetry ShouldRetry
}

func (p *Policy) normalize() {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	if p.Backoff == nil {
		p.Backoff = ExponentialBackoff(defaultDelay)
	}
	if p.ShouldRetry == nil {
		p.ShouldRetry = func(error) bool { return true }
	}
}

func ExponentialBackoff(delay time.Duration) Backoff {
	return func(attempt int) time.Duration {
		base := (1 << (attempt - 1)) * delay
		jitter := time.Duration(rand.Int63n(int64(base/2) + 1))
		return base + jitter
	}
}

func ConstantBackoff(delay time.Duration) Backoff {
	return func(int) time.Duration {
		return delay
	}
}

func Do(ctx context.Context, p Policy, fn func() error) error {
	_, err := DoWithResult(ctx, p, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult returns the first successful result. A non-retryable error is
// returned as is; after the last attempt the last error is returned.
func DoWithResult[T any](ctx context.Context, p Policy, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	p.normalize()

	var err error
	for attempt := 1; ; attempt++ {
		var result T
		result, err = fn()
		if err == nil {
			return result, nil
		}
		if !p.ShouldRetry(err) || attempt == p.MaxAttempts {
			return zero, err
		}

		timer := time.NewTimer(p.Backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-timer.C:
		}
	}
}
