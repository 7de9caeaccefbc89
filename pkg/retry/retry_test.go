package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(retries int) *Config {
	return &Config{
		MaxRetries:   retries,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

type declaredErr struct{ retryable bool }

func (e declaredErr) Error() string     { return "declared" }
func (e declaredErr) IsRetryable() bool { return e.retryable }

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 200*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 2*time.Second, cfg.MaxDelay)
	assert.Equal(t, 2.0, cfg.Multiplier)

	assert.Equal(t, 0, WithMaxRetries(0).MaxRetries)
	assert.Equal(t, 3, WithMaxRetries(-1).MaxRetries)
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(3), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("boom")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_MaxRetriesExhausted(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(2), func() error {
		attempts++
		return fmt.Errorf("attempt %d", attempts)
	})

	require.EqualError(t, err, "attempt 3")
	assert.Equal(t, 3, attempts)
}

func TestDo_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &Config{MaxRetries: 5, InitialDelay: time.Hour, MaxDelay: time.Hour, Multiplier: 1}

	attempts := 0
	err := Do(ctx, cfg, func() error {
		attempts++
		cancel()
		return errors.New("boom")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestDoWithResult_KeepsLastResult(t *testing.T) {
	got, err := DoWithResult(context.Background(), fastConfig(1), func() (int, error) {
		return 7, errors.New("boom")
	})

	require.Error(t, err)
	assert.Equal(t, 7, got)
}

func TestDoIfRetryable(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantAttempts int
	}{
		{"permanent error returns immediately", errors.New("syntax error"), 1},
		{"declared permanent", declaredErr{retryable: false}, 1},
		{"transient by message", errors.New("HTTP 503 service unavailable"), 3},
		{"declared transient", declaredErr{retryable: true}, 3},
		{"wrapped declared transient", fmt.Errorf("ask: %w", declaredErr{retryable: true}), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := DoIfRetryable(context.Background(), fastConfig(2), func() error {
				attempts++
				return tt.err
			})

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.wantAttempts, attempts)
		})
	}
}

func TestDoIfRetryableWithResult(t *testing.T) {
	attempts := 0
	got, err := DoIfRetryableWithResult(context.Background(), fastConfig(3), func() (string, error) {
		attempts++
		if attempts == 1 {
			return "", errors.New("connection reset by peer")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, attempts)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{errors.New("dial tcp: i/o timeout"), true},
		{errors.New("rate limit exceeded"), true},
		{errors.New("no such table: sales"), false},
		{declaredErr{retryable: false}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRetryable(tt.err), "IsRetryable(%v)", tt.err)
	}
}
