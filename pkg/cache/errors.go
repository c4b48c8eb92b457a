package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork wraps Redis failures that happened below the protocol level:
// refused, reset or timed-out connections.
var ErrNetwork = errors.New("network error")

// transientError marks a failure worth another attempt.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// backoff retries an operation a bounded number of times, doubling the
// pause after every transient failure.
type backoff struct {
	attempts int
	delay    time.Duration
}

// commandBackoff keeps a flaky Redis from stalling a layout for long:
// at most 50ms + 100ms of waiting per command.
var commandBackoff = backoff{attempts: 3, delay: 50 * time.Millisecond}

// do runs fn until it succeeds, fails permanently, runs out of attempts or
// ctx is done.
func (b backoff) do(ctx context.Context, fn func() error) error {
	delay := b.delay
	var err error
	for i := 0; i < b.attempts; i++ {
		if err = fn(); err == nil || !isTransient(err) {
			return err
		}
		if i == b.attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
