// Package spinner renders a spinning cursor on the terminal while work is
// running.
package spinner

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

const frames = `|/-\`

// Spinner animates a spinning cursor, safe to start and stop once.
//
// Please use New to create an instance.
type Spinner struct {
	delay  time.Duration
	out    *termenv.Output
	done   chan struct{}
	stop   sync.Once
	ticker *time.Ticker
	wg     sync.WaitGroup
}

// Option configures a Spinner.
type Option func(*Spinner)

// WithDelay sets the frame delay, default 100ms.
func WithDelay(d time.Duration) Option {
	return func(s *Spinner) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithOutput redirects the animation, default stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Spinner) {
		s.out = termenv.NewOutput(w)
	}
}

// New creates a stopped spinner.
func New(opts ...Option) *Spinner {
	s := &Spinner{
		delay: 100 * time.Millisecond,
		out:   termenv.NewOutput(os.Stdout),
		done:  make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start begins the animation on its own goroutine.
func (s *Spinner) Start() {
	s.out.HideCursor()
	s.ticker = time.NewTicker(s.delay)
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		i := 0

		for {
			select {
			case <-s.done:
				return
			case <-s.ticker.C:
				_, _ = s.out.WriteString(string(frames[i%len(frames)]) + "\b")
				i++
			}
		}
	}()
}

// Stop ends the animation, erases the cursor frame and restores the cursor.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		close(s.done)
		s.wg.Wait()

		if s.ticker != nil {
			s.ticker.Stop()
		}

		_, _ = s.out.WriteString(" \b")
		s.out.ShowCursor()
	})
}

// Around runs fn with a spinner animating until it returns.
func Around(fn func(), opts ...Option) {
	s := New(opts...)
	s.Start()

	defer s.Stop()

	fn()
}
