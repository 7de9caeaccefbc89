package llm_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ekaya-inc/ekaya-bi/pkg/llm"
	"github.com/ekaya-inc/ekaya-bi/pkg/retry"
)

func TestRetry_HonorsLLMErrorRetryability(t *testing.T) {
	cfg := &retry.Config{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}

	tests := []struct {
		name         string
		err          error
		wantAttempts int
	}{
		{"auth is permanent", llm.NewError(llm.ErrorTypeAuth, "authentication failed", false, errors.New("HTTP 401")), 1},
		// the 503 in the cause would match by message; the declared flag wins
		{"declared permanent despite 503", llm.NewError(llm.ErrorTypeResponse, "bad reply", false, errors.New("HTTP 503")), 1},
		{"server error retries", llm.NewError(llm.ErrorTypeEndpoint, "server error", true, nil), 3},
		{"wrapped retryable", fmt.Errorf("classify: %w", llm.NewError(llm.ErrorTypeEndpoint, "timeout", true, nil)), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			_ = retry.DoIfRetryable(context.Background(), cfg, func() error {
				attempts++
				return tt.err
			})
			if attempts != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", attempts, tt.wantAttempts)
			}
		})
	}
}
