// Package retry runs operations with exponential backoff.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"
)

// Config defines retry behavior with exponential backoff.
type Config struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	JitterFactor float64 // 0.0-1.0
}

// DefaultConfig retries 3 times starting at 200ms, doubling up to 2s with 10% jitter.
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:   3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.1,
	}
}

// WithMaxRetries returns a copy of the default config with a different retry count.
func WithMaxRetries(n int) *Config {
	cfg := DefaultConfig()
	if n >= 0 {
		cfg.MaxRetries = n
	}
	return cfg
}

// applyJitter returns delay +/- (delay * jitterFactor * random(-1, 1)).
func applyJitter(delay time.Duration, jitterFactor float64) time.Duration {
	if jitterFactor <= 0 {
		return delay
	}
	jitter := float64(delay) * jitterFactor * (rand.Float64()*2 - 1)
	return time.Duration(float64(delay) + jitter)
}

type backoff struct {
	cfg   *Config
	delay time.Duration
}

// wait sleeps for the current delay and advances it. It returns ctx.Err() if the context ends first.
func (b *backoff) wait(ctx context.Context) error {
	timer := time.NewTimer(applyJitter(b.delay, b.cfg.JitterFactor))
	defer timer.Stop()

	select {
	case <-timer.C:
		b.delay = time.Duration(float64(b.delay) * b.cfg.Multiplier)
		if b.cfg.MaxDelay > 0 && b.delay > b.cfg.MaxDelay {
			b.delay = b.cfg.MaxDelay
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func run[T any](ctx context.Context, cfg *Config, onlyRetryable bool, fn func() (T, error)) (T, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	b := &backoff{cfg: cfg, delay: cfg.InitialDelay}

	var result T
	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		r, err := fn()
		if err == nil {
			return r, nil
		}
		result, lastErr = r, err

		if onlyRetryable && !IsRetryable(err) {
			return result, err
		}
		if attempt < cfg.MaxRetries {
			if werr := b.wait(ctx); werr != nil {
				return result, werr
			}
		}
	}
	return result, lastErr
}

// Do executes fn until it succeeds or retries are exhausted, returning the last error.
func Do(ctx context.Context, cfg *Config, fn func() error) error {
	_, err := run(ctx, cfg, false, func() (struct{}, error) { return struct{}{}, fn() })
	return err
}

// DoWithResult is Do for functions that return a value. The last result is kept even on error.
func DoWithResult[T any](ctx context.Context, cfg *Config, fn func() (T, error)) (T, error) {
	return run(ctx, cfg, false, fn)
}

// DoIfRetryable retries only transient errors. Permanent errors return immediately.
func DoIfRetryable(ctx context.Context, cfg *Config, fn func() error) error {
	_, err := run(ctx, cfg, true, func() (struct{}, error) { return struct{}{}, fn() })
	return err
}

// DoIfRetryableWithResult is DoIfRetryable for functions that return a value.
func DoIfRetryableWithResult[T any](ctx context.Context, cfg *Config, fn func() (T, error)) (T, error) {
	return run(ctx, cfg, true, fn)
}

// RetryableError is implemented by errors that declare their own retryability.
type RetryableError interface {
	error
	IsRetryable() bool
}

var retryablePatterns = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"no such host",
	"timeout",
	"timed out",
	"temporary failure",
	"too many connections",
	"deadlock",
	"network is unreachable",
	"429",
	"500",
	"502",
	"503",
	"504",
	"rate limit",
	"service unavailable",
	"too many requests",
	"overloaded",
}

// IsRetryable reports whether err is transient. Errors anywhere in the chain that
// implement RetryableError decide for themselves; other errors are matched by message.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var r RetryableError
	if errors.As(err, &r) {
		return r.IsRetryable()
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range retryablePatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
