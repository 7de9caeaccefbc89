package llm

import (
	"fmt"
	"sync"
	"time"
)

// CircuitState represents the current state of the circuit breaker.
type CircuitState int

const (
	// CircuitClosed lets requests through.
	CircuitClosed CircuitState = iota
	// CircuitOpen rejects requests until the cool-down passes.
	CircuitOpen
	// CircuitHalfOpen lets a single probe through.
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig holds configuration for the circuit breaker.
type CircuitBreakerConfig struct {
	// Threshold is the number of consecutive failures before the circuit opens.
	Threshold int
	// ResetAfter is how long an open circuit waits before letting a probe through.
	ResetAfter time.Duration
}

// DefaultCircuitBreakerConfig opens after 3 failures and probes again after 30 seconds.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Threshold:  3,
		ResetAfter: 30 * time.Second,
	}
}

// CircuitBreaker stops calling a model provider that keeps failing.
// Callers check Allow before a request and report the outcome afterwards.
type CircuitBreaker struct {
	mu               sync.Mutex
	cfg              CircuitBreakerConfig
	consecutiveFails int
	openedAt         time.Time
	state            CircuitState
	now              func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultCircuitBreakerConfig().Threshold
	}
	return &CircuitBreaker{cfg: cfg, state: CircuitClosed, now: time.Now}
}

// Allow reports whether a request may proceed. An open circuit past its cool-down
// turns half-open and admits exactly one probe.
func (cb *CircuitBreaker) Allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return nil
	case CircuitOpen:
		if cb.now().Sub(cb.openedAt) >= cb.cfg.ResetAfter {
			cb.state = CircuitHalfOpen
			return nil
		}
		return fmt.Errorf("circuit breaker open after %d consecutive failures", cb.consecutiveFails)
	default:
		return fmt.Errorf("circuit breaker half-open: probe in flight")
	}
}

// RecordSuccess closes the circuit.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFails = 0
	cb.state = CircuitClosed
}

// RecordFailure counts a failure and opens the circuit at the threshold or after a failed probe.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFails++
	if cb.state == CircuitHalfOpen || cb.consecutiveFails >= cb.cfg.Threshold {
		cb.state = CircuitOpen
		cb.openedAt = cb.now()
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
