package timeout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bool64/ctxd"
)

type result struct {
	val interface{}
	err error
}

// Do runs fn on a separate goroutine and waits at most d for it to finish.
//
// The context passed to fn carries a deadline of d from now, cooperative
// computations can use it to stop early. Computations that do not are
// abandoned on timeout and keep running in the background, their eventual
// result is discarded.
//
// A failure of fn, an error return or a panic, is reported as
// ComputationError wrapping the cause.
func Do(ctx context.Context, d time.Duration, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	if d <= 0 {
		return nil, ErrInvalidTimeout
	}

	fnCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	// Buffered so an abandoned computation can deliver and terminate.
	res := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				res <- result{err: ComputationError{cause: fmt.Errorf("panic: %v", r)}}
			}
		}()

		val, err := fn(fnCtx)
		if err != nil {
			res <- result{err: ComputationError{cause: err}}

			return
		}

		res <- result{val: val}
	}()

	select {
	case r := <-res:
		return r.val, r.err
	case <-fnCtx.Done():
		// The caller context ending takes precedence over the deadline.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		return nil, ErrTimeout
	}
}

// Executor runs computations with a fixed time limit.
//
// Zero value is not usable, Limit must be set.
type Executor struct {
	// Limit is the maximum duration of a single computation.
	Limit time.Duration

	// Cooldown suppresses retries after a timeout: until it passes, Run
	// fails immediately with ErrTimeout without invoking the computation.
	// Zero disables the cooldown.
	Cooldown time.Duration

	// Logger collects timeout warnings, can be nil.
	Logger ctxd.Logger

	mu          sync.Mutex
	lastTimeout time.Time
}

// Run executes fn bounded by the configured limit, see Do.
func (e *Executor) Run(ctx context.Context, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	if e.Cooldown > 0 {
		e.mu.Lock()
		coolingDown := !e.lastTimeout.IsZero() && time.Since(e.lastTimeout) < e.Cooldown
		e.mu.Unlock()

		if coolingDown {
			return nil, ErrTimeout
		}
	}

	val, err := Do(ctx, e.Limit, fn)

	if errors.Is(err, ErrTimeout) {
		e.mu.Lock()
		e.lastTimeout = time.Now()
		e.mu.Unlock()

		if e.Logger != nil {
			e.Logger.Warn(ctx, "computation timed out", "limit", e.Limit.String())
		}
	}

	return val, err
}
