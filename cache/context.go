package cache

import (
	"context"
	"time"
)

type (
	ttlCtxKey      struct{}
	timeoutCtxKey  struct{}
	skipReadCtxKey struct{}
)

// WithTTL returns context with an entry ttl override for values stored
// during this call.
func WithTTL(ctx context.Context, ttl time.Duration) context.Context {
	return context.WithValue(ctx, ttlCtxKey{}, ttl)
}

// TTL returns the ttl override or zero if none is set.
func TTL(ctx context.Context) time.Duration {
	ttl, _ := ctx.Value(ttlCtxKey{}).(time.Duration)

	return ttl
}

// WithTimeout returns context with a build time limit override for this call.
func WithTimeout(ctx context.Context, d time.Duration) context.Context {
	return context.WithValue(ctx, timeoutCtxKey{}, d)
}

// Timeout returns the build time limit override or zero if none is set.
func Timeout(ctx context.Context) time.Duration {
	d, _ := ctx.Value(timeoutCtxKey{}).(time.Duration)

	return d
}

// WithSkipRead returns context with cache read ignored.
//
// With such context a Store should always return ErrNotFound discarding
// the cached value, which forces a rebuild.
func WithSkipRead(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipReadCtxKey{}, true)
}

// SkipRead returns true if cache read is ignored in context.
func SkipRead(ctx context.Context) bool {
	_, ok := ctx.Value(skipReadCtxKey{}).(bool)

	return ok
}
