package browser

import (
	"context"
	"errors"
	"time"
)

// ErrPollTimeout is returned by Poll when the deadline expires before the
// condition function reports done. Callers translate it into a more specific
// error (ElementNotFoundError, SessionTimeoutError) at their own boundary.
var ErrPollTimeout = errors.New("poll deadline exceeded")

// Poll repeatedly invokes fn at the given interval until fn reports done, fn
// returns an error, the timeout expires, or ctx is cancelled. It replaces
// ad hoc sleep-and-retry loops: the deadline is always enforced and a miss is
// reported as a value (ErrPollTimeout), not raised from generic code.
func Poll[T any](ctx context.Context, interval, timeout time.Duration, fn func() (T, bool, error)) (T, error) {
	var zero T

	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		v, done, err := fn()
		if err != nil {
			return zero, err
		}
		if done {
			return v, nil
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-deadline.C:
			return zero, ErrPollTimeout
		case <-tick.C:
		}
	}
}
