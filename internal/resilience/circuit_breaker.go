// Package resilience provides the circuit breaker and retry policy shared by
// every synthesis backend client.
package resilience

import (
	"fmt"
	"sync"
	"time"
)

// CircuitOpenError is returned when a call is refused because the target's
// breaker is open and still cooling down. It signals "skip this server", not
// a true backend failure.
type CircuitOpenError struct {
	Target string
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("circuit open for %s", e.Target)
}

// Breaker is a two-state (closed/open) circuit breaker for one server. A
// network failure opens it; after the cool-down window the next call is
// attempted normally and its outcome closes or re-arms the breaker.
//
// Breakers are constructed and injected per server rather than held in
// package globals so tests and independent clients get independent state.
type Breaker struct {
	target   string
	cooldown time.Duration
	now      func() time.Time

	mu          sync.Mutex
	open        bool
	lastFailure time.Time
}

// NewBreaker creates a closed breaker for the named target.
func NewBreaker(target string, cooldown time.Duration) *Breaker {
	return &Breaker{
		target:   target,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// Target returns the server identity this breaker guards.
func (b *Breaker) Target() string {
	return b.target
}

// Allow reports whether a call may proceed. While open and within the
// cool-down window it returns a CircuitOpenError; once the window has
// elapsed the call is allowed through as the recovery probe.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open && b.now().Sub(b.lastFailure) < b.cooldown {
		return &CircuitOpenError{Target: b.target}
	}
	return nil
}

// MarkFailure opens the breaker (or re-arms it) and restamps the failure time.
func (b *Breaker) MarkFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.open = true
	b.lastFailure = b.now()
}

// MarkSuccess closes the breaker.
func (b *Breaker) MarkSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.open = false
}

// IsOpen reports the current flag. The answer may be stale by the time the
// caller acts on it; that only costs one doomed attempt, never correctness.
func (b *Breaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}
