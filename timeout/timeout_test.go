package timeout_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/FrauElster/goutil/timeout"
	"github.com/bool64/ctxd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo(t *testing.T) {
	ctx := context.Background()

	val, err := timeout.Do(ctx, time.Second, func(ctx context.Context) (interface{}, error) {
		return 123, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 123, val)
}

func TestDo_timeout(t *testing.T) {
	ctx := context.Background()
	started := time.Now()

	val, err := timeout.Do(ctx, 20*time.Millisecond, func(ctx context.Context) (interface{}, error) {
		time.Sleep(time.Second)

		return 123, nil
	})
	elapsed := time.Since(started)

	assert.Nil(t, val)
	assert.True(t, errors.Is(err, timeout.ErrTimeout))

	// Failure arrives at the deadline, not when the computation finishes.
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func TestDo_computationError(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("boom")

	val, err := timeout.Do(ctx, time.Second, func(ctx context.Context) (interface{}, error) {
		return nil, cause
	})

	assert.Nil(t, val)
	assert.True(t, errors.Is(err, timeout.ErrComputationFailed))
	assert.True(t, errors.Is(err, cause))
}

func TestDo_panic(t *testing.T) {
	ctx := context.Background()

	val, err := timeout.Do(ctx, time.Second, func(ctx context.Context) (interface{}, error) {
		panic("boom")
	})

	assert.Nil(t, val)
	assert.True(t, errors.Is(err, timeout.ErrComputationFailed))
	assert.Contains(t, err.Error(), "boom")
}

func TestDo_invalidDuration(t *testing.T) {
	ctx := context.Background()
	invoked := false

	_, err := timeout.Do(ctx, 0, func(ctx context.Context) (interface{}, error) {
		invoked = true

		return nil, nil
	})

	assert.True(t, errors.Is(err, timeout.ErrInvalidTimeout))
	assert.False(t, invoked)
}

func TestDo_callerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := timeout.Do(ctx, time.Second, func(ctx context.Context) (interface{}, error) {
		<-ctx.Done()

		return nil, ctx.Err()
	})

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDo_deadlinePassedToComputation(t *testing.T) {
	ctx := context.Background()

	val, err := timeout.Do(ctx, time.Second, func(ctx context.Context) (interface{}, error) {
		_, ok := ctx.Deadline()

		return ok, nil
	})

	require.NoError(t, err)
	assert.Equal(t, true, val)
}

func TestExecutor_Run_cooldown(t *testing.T) {
	ctx := context.Background()
	e := timeout.Executor{
		Limit:    10 * time.Millisecond,
		Cooldown: time.Minute,
		Logger:   &ctxd.LoggerMock{},
	}

	var runs int32

	slow := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&runs, 1)

		time.Sleep(time.Second)

		return nil, nil
	}

	_, err := e.Run(ctx, slow)
	assert.True(t, errors.Is(err, timeout.ErrTimeout))
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))

	// Cooling down, the computation is not invoked again.
	_, err = e.Run(ctx, slow)
	assert.True(t, errors.Is(err, timeout.ErrTimeout))
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
}

func TestExecutor_Run(t *testing.T) {
	ctx := context.Background()
	e := timeout.Executor{Limit: time.Second}

	val, err := e.Run(ctx, func(ctx context.Context) (interface{}, error) {
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", val)
}
