package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errors.New("temporary")

func TestDoWithResult(t *testing.T) {
	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		got, err := DoWithResult(context.Background(), Policy{
			MaxAttempts: 3,
			Backoff:     ConstantBackoff(time.Millisecond),
		}, func() (int, error) {
			calls++
			if calls < 3 {
				return 0, errTemporary
			}
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when attempts run out", func(t *testing.T) {
		calls := 0
		_, err := DoWithResult(context.Background(), Policy{
			MaxAttempts: 2,
			Backoff:     ConstantBackoff(time.Millisecond),
		}, func() (int, error) {
			calls++
			return 0, errTemporary
		})
		require.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 2, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		permanent := errors.New("permanent")
		calls := 0
		_, err := DoWithResult(context.Background(), Policy{
			MaxAttempts: 5,
			Backoff:     ConstantBackoff(time.Millisecond),
			ShouldRetry: func(err error) bool { return !errors.Is(err, permanent) },
		}, func() (int, error) {
			calls++
			return 0, permanent
		})
		require.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("context cancelled while waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		err := Do(ctx, Policy{
			MaxAttempts: 5,
			Backoff:     ConstantBackoff(time.Hour),
		}, func() error {
			cancel()
			return errTemporary
		})
		require.ErrorIs(t, err, context.Canceled)
		require.ErrorIs(t, err, errTemporary)
	})

	t.Run("context already done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Do(ctx, Policy{}, func() error {
			t.Fatal("fn must not run")
			return nil
		})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestExponentialBackoff(t *testing.T) {
	b := ExponentialBackoff(10 * time.Millisecond)
	for attempt, base := range map[int]time.Duration{1: 10 * time.Millisecond, 2: 20 * time.Millisecond, 3: 40 * time.Millisecond} {
		d := b(attempt)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/2)
	}
}
