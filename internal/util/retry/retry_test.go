package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithExponentialBackoff_Success(t *testing.T) {
	t.Parallel()
	attempts := 0

	err := WithExponentialBackoff(context.Background(), func() error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithExponentialBackoff_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	attempts := 0

	err := WithExponentialBackoff(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}, WithInitialDelay(5*time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithExponentialBackoff_MaxRetries(t *testing.T) {
	t.Parallel()
	attempts := 0

	err := WithExponentialBackoff(context.Background(), func() error {
		attempts++
		return errors.New("persistent error")
	}, WithMaxRetries(2), WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, attempts, "first attempt plus two retries")
}

func TestWithExponentialBackoff_FatalStopsImmediately(t *testing.T) {
	t.Parallel()
	attempts := 0
	base := errors.New("bad request")

	err := WithExponentialBackoff(context.Background(), func() error {
		attempts++
		return Fatal(base)
	}, WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, 1, attempts)
}

func TestWithExponentialBackoff_RetryableClassifier(t *testing.T) {
	t.Parallel()
	transient := errors.New("throttled")
	permanent := errors.New("forbidden")
	attempts := 0

	err := WithExponentialBackoff(context.Background(), func() error {
		attempts++
		if attempts == 1 {
			return transient
		}
		return permanent
	},
		WithInitialDelay(time.Millisecond),
		WithRetryable(func(err error) bool { return errors.Is(err, transient) }))

	require.ErrorIs(t, err, permanent)
	assert.Equal(t, 2, attempts)
}

func TestWithExponentialBackoff_OnRetry(t *testing.T) {
	t.Parallel()
	var calls []int

	_ = WithExponentialBackoff(context.Background(), func() error {
		return errors.New("error")
	},
		WithMaxRetries(2),
		WithInitialDelay(time.Millisecond),
		WithOnRetry(func(attempt int, _ time.Duration, _ error) {
			calls = append(calls, attempt)
		}))

	assert.Equal(t, []int{1, 2}, calls)
}

func TestWithExponentialBackoff_ContextCancellation(t *testing.T) {
	t.Parallel()
	attempts := 0
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithExponentialBackoff(ctx, func() error {
		attempts++
		return errors.New("error")
	}, WithInitialDelay(10*time.Millisecond))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestWithExponentialBackoff_DelayCapped(t *testing.T) {
	t.Parallel()
	var delays []time.Duration

	_ = WithExponentialBackoff(context.Background(), func() error {
		return errors.New("error")
	},
		WithMaxRetries(4),
		WithInitialDelay(time.Millisecond),
		WithMaxDelay(4*time.Millisecond),
		WithMultiplier(2),
		WithOnRetry(func(_ int, d time.Duration, _ error) {
			delays = append(delays, d)
		}))

	assert.Equal(t, []time.Duration{
		time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond, 4 * time.Millisecond,
	}, delays)
}

func TestFatal(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Fatal(nil))

	original := errors.New("test error")
	err := Fatal(original)
	assert.True(t, IsFatal(err))
	assert.Equal(t, original.Error(), err.Error())
	assert.Equal(t, original, errors.Unwrap(err))
}

func TestIsFatal_Wrapped(t *testing.T) {
	t.Parallel()
	wrapped := errors.Join(Fatal(errors.New("base")), errors.New("context"))
	assert.True(t, IsFatal(wrapped))
	assert.False(t, IsFatal(errors.New("regular")))
}
