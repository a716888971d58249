package resilience

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"syscall"
	"time"
)

// BackoffFunc maps a zero-based attempt number to the delay before the next
// attempt.
type BackoffFunc func(attempt int) time.Duration

// LinearBackoff grows the delay by one base step per attempt: base, 2*base,
// 3*base and so on.
func LinearBackoff(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt+1)
	}
}

// Policy is a reusable retry policy: how many attempts, how long to wait
// between them, and which errors abort the loop early. The same policy is
// shared by every backend family client.
type Policy struct {
	MaxAttempts int
	Backoff     BackoffFunc

	// Abort reports that an error is not worth retrying (for example a
	// refused connection, where the host is simply down). A nil Abort
	// retries every error.
	Abort func(error) bool
}

// Do runs fn up to MaxAttempts times, sleeping per Backoff between attempts.
// It stops early on success, on an aborting error, or when ctx is done, and
// returns the last error seen.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return lastErr
			}
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if p.Abort != nil && p.Abort(lastErr) {
			return lastErr
		}

		if attempt < attempts-1 && p.Backoff != nil {
			select {
			case <-time.After(p.Backoff(attempt)):
			case <-ctx.Done():
				return lastErr
			}
		}
	}
	return lastErr
}

// IsConnectionRefused reports whether err means the host actively refused the
// connection. Retrying the same server is pointless in that case.
func IsConnectionRefused(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var sysErr *os.SyscallError
	if errors.As(err, &sysErr) && errors.Is(sysErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(err.Error(), "connection refused")
}

// IsTimeout reports whether err is a timeout or cancelled deadline.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "deadline exceeded") ||
		strings.Contains(err.Error(), "timeout")
}

// IsNetworkError reports whether err is a transport-level failure (as opposed
// to a well-formed error response from the backend).
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if IsTimeout(err) || IsConnectionRefused(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	msg := err.Error()
	for _, s := range []string{
		"connection reset",
		"connection closed",
		"no route to host",
		"network is unreachable",
		"EOF",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
