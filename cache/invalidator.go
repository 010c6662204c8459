package cache

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Invalidator is a registry of cache expiration triggers.
type Invalidator struct {
	sync.Mutex

	// Limiter throttles invalidation rounds (flood protection),
	// one round per 15 seconds by default.
	Limiter *rate.Limiter

	// Callbacks contains a list of functions to call on invalidate.
	Callbacks []func()
}

// Invalidate triggers cache expiration.
func (i *Invalidator) Invalidate() error {
	if i.Callbacks == nil {
		return ErrNothingToInvalidate
	}

	i.Lock()
	defer i.Unlock()

	if i.Limiter == nil {
		i.Limiter = rate.NewLimiter(rate.Every(15*time.Second), 1)
	}

	if !i.Limiter.Allow() {
		return fmt.Errorf("%w, flood protection engaged", ErrAlreadyInvalidated)
	}

	for _, cb := range i.Callbacks {
		cb()
	}

	return nil
}
