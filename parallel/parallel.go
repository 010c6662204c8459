// Package parallel runs independent units of work concurrently and collects
// their results by name.
package parallel

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task is a named unit of work.
type Task struct {
	// Name identifies the result, tasks with an empty name are keyed by index.
	Name string

	// Fn produces the task result.
	Fn func(ctx context.Context) (interface{}, error)
}

// Result is a task outcome.
type Result struct {
	Value interface{}
	Err   error
}

// Options control Run.
type Options struct {
	// Limit caps concurrently running tasks, 0 means no cap.
	Limit int

	// FailFast cancels the context of remaining tasks on the first failure
	// and reports that failure from Run. Without it Run always returns nil
	// and per-task failures are found in the results.
	FailFast bool
}

// Run executes all tasks concurrently and collects results keyed by task name.
//
// Every task runs to completion (or cancellation with FailFast), the
// returned map always has one entry per task.
func Run(ctx context.Context, o Options, tasks ...Task) (map[string]Result, error) {
	g, ctx := errgroup.WithContext(ctx)

	if o.Limit > 0 {
		g.SetLimit(o.Limit)
	}

	var mu sync.Mutex

	results := make(map[string]Result, len(tasks))

	for i, t := range tasks {
		i, t := i, t

		g.Go(func() error {
			val, err := t.Fn(ctx)

			mu.Lock()
			results[nameOf(t, i)] = Result{Value: val, Err: err}
			mu.Unlock()

			if o.FailFast {
				return err
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	return results, nil
}

func nameOf(t Task, i int) string {
	if t.Name != "" {
		return t.Name
	}

	return strconv.Itoa(i)
}
