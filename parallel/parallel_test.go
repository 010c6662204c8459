package parallel_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/FrauElster/goutil/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	ctx := context.Background()

	results, err := parallel.Run(ctx, parallel.Options{},
		parallel.Task{Name: "a", Fn: func(ctx context.Context) (interface{}, error) {
			return 1, nil
		}},
		parallel.Task{Name: "b", Fn: func(ctx context.Context) (interface{}, error) {
			return 2, nil
		}},
		parallel.Task{Fn: func(ctx context.Context) (interface{}, error) {
			return 3, nil
		}},
	)

	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, 1, results["a"].Value)
	assert.Equal(t, 2, results["b"].Value)
	assert.Equal(t, 3, results["2"].Value, "unnamed task keyed by index")
}

func TestRun_concurrent(t *testing.T) {
	ctx := context.Background()

	// Tasks that wait for each other only finish if they truly run in parallel.
	gate := make(chan struct{}, 2)
	meet := func(ctx context.Context) (interface{}, error) {
		gate <- struct{}{}

		for len(gate) < 2 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Millisecond):
			}
		}

		return "met", nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	results, err := parallel.Run(ctx, parallel.Options{},
		parallel.Task{Name: "first", Fn: meet},
		parallel.Task{Name: "second", Fn: meet},
	)

	require.NoError(t, err)
	assert.Equal(t, "met", results["first"].Value)
	assert.Equal(t, "met", results["second"].Value)
}

func TestRun_collectsErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	results, err := parallel.Run(ctx, parallel.Options{},
		parallel.Task{Name: "ok", Fn: func(ctx context.Context) (interface{}, error) {
			return "fine", nil
		}},
		parallel.Task{Name: "bad", Fn: func(ctx context.Context) (interface{}, error) {
			return nil, boom
		}},
	)

	require.NoError(t, err, "per-task failures do not fail the run")
	assert.Equal(t, "fine", results["ok"].Value)
	assert.True(t, errors.Is(results["bad"].Err, boom))
}

func TestRun_failFast(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	results, err := parallel.Run(ctx, parallel.Options{FailFast: true},
		parallel.Task{Name: "bad", Fn: func(ctx context.Context) (interface{}, error) {
			return nil, boom
		}},
		parallel.Task{Name: "slow", Fn: func(ctx context.Context) (interface{}, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Second):
				return "done", nil
			}
		}},
	)

	assert.True(t, errors.Is(err, boom))
	assert.Len(t, results, 2)
}

func TestRun_limit(t *testing.T) {
	ctx := context.Background()

	var running, peak int32

	task := func(ctx context.Context) (interface{}, error) {
		n := atomic.AddInt32(&running, 1)

		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}

		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&running, -1)

		return nil, nil
	}

	tasks := make([]parallel.Task, 8)
	for i := range tasks {
		tasks[i] = parallel.Task{Fn: task}
	}

	_, err := parallel.Run(ctx, parallel.Options{Limit: 2}, tasks...)

	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}
