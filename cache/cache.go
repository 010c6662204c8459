package cache

import (
	"context"
	"sync"
	"time"

	"github.com/FrauElster/goutil/timeout"
	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// Config is optional configuration for New.
type Config struct {
	// Name is added to logs and stats.
	Name string

	// Store keeps computed values, an in-memory instance is created by default.
	Store Store

	// StoreConfig is a configuration for the in-memory store instance if Store is not provided.
	StoreConfig MemoryConfig

	// TimeToLive is the default ttl of stored values, default 5m.
	// Negative value is invalid, use WithTTL for per-call overrides.
	TimeToLive time.Duration

	// Timeout is the default build time limit, default 30s.
	// Negative value is invalid, use WithTimeout for per-call overrides.
	Timeout time.Duration

	// Logger collects messages with context.
	Logger ctxd.Logger

	// Stats tracks stats.
	Stats stats.Tracker
}

// round is a single build of a key, owned by one caller and awaited by others.
type round struct {
	done chan struct{}

	// val and err are written once before done is closed.
	val interface{}
	err error

	// stale is set by invalidation, guarded by Cache.lock.
	// A stale round still serves its waiters but installs nothing.
	stale bool
}

// Cache memoizes build results per key with expiration.
//
// Builds are locked per key, concurrent callers for a missing key converge
// on a single build bounded by a wall-clock limit. Expired values are never
// served, failures store nothing.
//
// Please use New to create an instance.
type Cache struct {
	store  Store
	lock   sync.Mutex        // Securing rounds.
	rounds map[string]*round // Preventing build concurrency per key.
	config Config
	log    ctxd.Logger
	stat   stats.Tracker
}

// New creates a Cache instance.
//
// Negative default ttl or timeout fail with ErrInvalidConfig, zero values
// take defaults.
func New(config Config) (*Cache, error) {
	if config.TimeToLive < 0 || config.Timeout < 0 {
		return nil, ErrInvalidConfig
	}

	if config.TimeToLive == 0 {
		config.TimeToLive = 5 * time.Minute
	}

	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	c := &Cache{}
	c.config = config
	c.rounds = make(map[string]*round)

	c.log = config.Logger
	if c.log == nil {
		c.log = ctxd.NoOpLogger{}
	}

	c.stat = config.Stats
	if c.stat == nil {
		c.stat = stats.NoOp{}
	}

	c.store = config.Store

	if c.store == nil {
		config.StoreConfig.Name = config.Name
		config.StoreConfig.Logger = config.Logger
		config.StoreConfig.Stats = config.Stats
		config.StoreConfig.TimeToLive = config.TimeToLive
		c.store = NewMemory(config.StoreConfig)
	}

	return c, nil
}

// Get returns a valid cached value or builds one.
//
// On a miss or an expired entry the caller either joins a build already in
// flight for the key, adopting its outcome, or becomes the builder. The
// build runs through timeout.Do outside of the table lock, so builds of
// unrelated keys do not serialize. Build failures, timeout.ErrTimeout and
// timeout.ErrComputationFailed alike, propagate to every caller of the
// round and leave no entry behind.
func (c *Cache) Get(ctx context.Context, key string, build func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	ttl, limit, err := c.bounds(ctx)
	if err != nil {
		return nil, err
	}

	// Checking for valid value before the critical section.
	if val, err := c.store.Read(ctx, key); err == nil {
		return val, nil
	}

	c.lock.Lock()

	// Rechecking in the critical section, the value may have been installed
	// while acquiring the lock.
	if val, err := c.store.Read(ctx, key); err == nil {
		c.lock.Unlock()

		return val, nil
	}

	if r, inFlight := c.rounds[key]; inFlight {
		c.lock.Unlock()

		return c.waitForRound(ctx, key, r)
	}

	r := &round{done: make(chan struct{})}
	c.rounds[key] = r

	c.lock.Unlock()

	return c.build(ctx, key, r, build, ttl, limit)
}

// Invalidate removes the entry and the pending build marker for key.
//
// An in-flight build is not interrupted, but its result will not be
// installed, and the next Get for the key starts a fresh build.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	c.lock.Lock()

	if r, ok := c.rounds[key]; ok {
		r.stale = true

		delete(c.rounds, key)
	}

	err := c.store.Delete(ctx, key)

	c.lock.Unlock()

	if err != nil {
		return err
	}

	c.stat.Add(ctx, MetricInvalidate, 1, "name", c.config.Name)
	c.log.Debug(ctx, "invalidated cache entry", "name", c.config.Name, "key", key)

	return nil
}

// InvalidateAll removes all entries.
//
// In-flight builds keep running and still serve their waiters, but their
// results are not installed.
func (c *Cache) InvalidateAll(ctx context.Context) {
	c.lock.Lock()

	for _, r := range c.rounds {
		r.stale = true
	}

	c.store.RemoveAll()

	c.lock.Unlock()

	c.stat.Add(ctx, MetricInvalidate, 1, "name", c.config.Name)
	c.log.Debug(ctx, "invalidated all cache entries", "name", c.config.Name)
}

// bounds resolves ttl and build limit from config and context overrides.
func (c *Cache) bounds(ctx context.Context) (ttl, limit time.Duration, err error) {
	ttl = c.config.TimeToLive

	if d, ok := ctx.Value(ttlCtxKey{}).(time.Duration); ok {
		if d <= 0 {
			return 0, 0, ErrInvalidConfig
		}

		ttl = d
	}

	limit = c.config.Timeout

	if d, ok := ctx.Value(timeoutCtxKey{}).(time.Duration); ok {
		if d <= 0 {
			return 0, 0, ErrInvalidConfig
		}

		limit = d
	}

	return ttl, limit, nil
}

func (c *Cache) waitForRound(ctx context.Context, key string, r *round) (interface{}, error) {
	c.log.Debug(ctx, "waiting for cache value", "name", c.config.Name, "key", key)

	select {
	case <-r.done:
		return r.val, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) build(
	ctx context.Context,
	key string,
	r *round,
	build func(ctx context.Context) (interface{}, error),
	ttl time.Duration,
	limit time.Duration,
) (interface{}, error) {
	c.log.Debug(ctx, "building cache value", "name", c.config.Name, "key", key)
	c.stat.Add(ctx, MetricBuild, 1, "name", c.config.Name)

	val, err := timeout.Do(ctx, limit, build)

	c.lock.Lock()

	if err == nil && !r.stale {
		if writeErr := c.store.Write(WithTTL(ctx, ttl), key, val); writeErr != nil {
			err = ctxd.WrapError(ctx, writeErr, "failed to store cache value")
		}
	}

	if err != nil {
		val = nil
	}

	if c.rounds[key] == r {
		delete(c.rounds, key)
	}

	r.val, r.err = val, err

	c.lock.Unlock()
	close(r.done)

	if err != nil {
		c.stat.Add(ctx, MetricFailed, 1, "name", c.config.Name)
		c.log.Warn(ctx, "failed to build cache value",
			"error", err,
			"name", c.config.Name,
			"key", key)

		return nil, err
	}

	return val, nil
}
