package resilience

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestLinearBackoff(t *testing.T) {
	backoff := LinearBackoff(100 * time.Millisecond)

	for attempt, want := range []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
	} {
		if got := backoff(attempt); got != want {
			t.Errorf("backoff(%d) = %v, want %v", attempt, got, want)
		}
	}
}

func TestPolicy_SucceedsFirstTry(t *testing.T) {
	calls := 0
	p := Policy{MaxAttempts: 3, Backoff: LinearBackoff(time.Millisecond)}

	err := p.Do(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestPolicy_RetriesUpToMaxAttempts(t *testing.T) {
	calls := 0
	wantErr := errors.New("boom")
	p := Policy{MaxAttempts: 3, Backoff: LinearBackoff(time.Millisecond)}

	err := p.Do(context.Background(), func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want boom", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestPolicy_RecoversMidway(t *testing.T) {
	calls := 0
	p := Policy{MaxAttempts: 5, Backoff: LinearBackoff(time.Millisecond)}

	err := p.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestPolicy_AbortStopsRetrying(t *testing.T) {
	calls := 0
	refused := fmt.Errorf("dial tcp: %w", syscall.ECONNREFUSED)
	p := Policy{
		MaxAttempts: 5,
		Backoff:     LinearBackoff(time.Millisecond),
		Abort:       IsConnectionRefused,
	}

	err := p.Do(context.Background(), func() error {
		calls++
		return refused
	})
	if !IsConnectionRefused(err) {
		t.Errorf("error = %v, want connection refused", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (refused connection must not be retried)", calls)
	}
}

func TestPolicy_ContextCancelStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := Policy{MaxAttempts: 10, Backoff: LinearBackoff(50 * time.Millisecond)}

	err := p.Do(ctx, func() error {
		calls++
		cancel()
		return errors.New("transient")
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestIsConnectionRefused(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{syscall.ECONNREFUSED, true},
		{os.NewSyscallError("connect", syscall.ECONNREFUSED), true},
		{fmt.Errorf("dial tcp 127.0.0.1:9999: connect: connection refused"), true},
		{errors.New("500 internal server error"), false},
		{context.DeadlineExceeded, false},
	}
	for _, tc := range cases {
		if got := IsConnectionRefused(tc.err); got != tc.want {
			t.Errorf("IsConnectionRefused(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(context.DeadlineExceeded) {
		t.Error("deadline exceeded must classify as timeout")
	}
	if !IsTimeout(fmt.Errorf("request: %w", context.DeadlineExceeded)) {
		t.Error("wrapped deadline exceeded must classify as timeout")
	}
	if IsTimeout(errors.New("bad request")) {
		t.Error("plain error must not classify as timeout")
	}
}

func TestIsNetworkError(t *testing.T) {
	opErr := &net.OpError{Op: "read", Err: errors.New("connection reset by peer")}

	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{opErr, true},
		{syscall.ECONNREFUSED, true},
		{context.DeadlineExceeded, true},
		{errors.New("unexpected EOF"), true},
		{errors.New("invalid request payload"), false},
	}
	for _, tc := range cases {
		if got := IsNetworkError(tc.err); got != tc.want {
			t.Errorf("IsNetworkError(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
