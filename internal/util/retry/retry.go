package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// Config holds retry configuration.
type Config struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// Jitter adds up to Jitter*delay to every delay. Zero disables it.
	Jitter float64

	// Retryable reports whether err should be retried. Nil retries everything
	// that is not marked Fatal.
	Retryable func(err error) bool

	// OnRetry is called before sleeping for the next attempt.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// Option is a functional option for retry configuration.
type Option func(*Config)

// WithExponentialBackoff runs operation until it succeeds, at most
// MaxRetries+1 times. Delays grow by Multiplier up to MaxDelay, with
// Jitter applied on top. Context cancellation is respected between attempts.
func WithExponentialBackoff(ctx context.Context, operation func() error, opts ...Option) error {
	cfg := &Config{
		MaxRetries:   5,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	backoff := cfg.backoff()
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxRetries+1; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if IsFatal(err) {
			return fmt.Errorf("fatal error (not retrying): %w", err)
		}
		if cfg.Retryable != nil && !cfg.Retryable(err) {
			return err
		}
		if attempt > cfg.MaxRetries {
			break
		}

		delay := backoff.Step()
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, delay, err)
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("context cancelled after %d attempts: %w", attempt, ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", cfg.MaxRetries+1, lastErr)
}

// backoff converts the configuration into an apimachinery backoff.
func (c *Config) backoff() *wait.Backoff {
	return &wait.Backoff{
		Duration: c.InitialDelay,
		Factor:   c.Multiplier,
		Jitter:   c.Jitter,
		Steps:    c.MaxRetries + 1,
		Cap:      c.MaxDelay,
	}
}

// WithMaxRetries sets the maximum number of retries.
func WithMaxRetries(n int) Option {
	return func(c *Config) {
		c.MaxRetries = n
	}
}

// WithInitialDelay sets the initial delay between retries.
func WithInitialDelay(d time.Duration) Option {
	return func(c *Config) {
		c.InitialDelay = d
	}
}

// WithMaxDelay sets the maximum delay between retries.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Config) {
		c.MaxDelay = d
	}
}

// WithMultiplier sets the backoff multiplier.
func WithMultiplier(m float64) Option {
	return func(c *Config) {
		c.Multiplier = m
	}
}

// WithJitter randomizes delays by up to factor times their length.
func WithJitter(factor float64) Option {
	return func(c *Config) {
		c.Jitter = factor
	}
}

// WithRetryable restricts retries to errors accepted by fn.
func WithRetryable(fn func(err error) bool) Option {
	return func(c *Config) {
		c.Retryable = fn
	}
}

// WithOnRetry registers a callback invoked before each backoff sleep.
func WithOnRetry(fn func(attempt int, delay time.Duration, err error)) Option {
	return func(c *Config) {
		c.OnRetry = fn
	}
}

// FatalError wraps an error to mark it as fatal (non-retryable).
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal marks an error as fatal (non-retryable).
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal checks if an error is fatal (non-retryable).
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}
