package cache

// SentinelError is an error.
type SentinelError string

const (
	// ErrNotFound indicates missing cache entry.
	ErrNotFound = SentinelError("missing cache item")

	// ErrExpired indicates expired cache entry.
	ErrExpired = SentinelError("expired cache item")

	// ErrInvalidConfig indicates a non-positive ttl or build timeout.
	ErrInvalidConfig = SentinelError("ttl and timeout must be positive")

	// ErrClosed indicates the cache was closed and deactivated.
	ErrClosed = SentinelError("cache is closed")

	// ErrNothingToInvalidate indicates no callbacks were added to Invalidator.
	ErrNothingToInvalidate = SentinelError("nothing to invalidate")

	// ErrAlreadyInvalidated indicates recent invalidation.
	ErrAlreadyInvalidated = SentinelError("already invalidated")
)

// Error implements error.
func (e SentinelError) Error() string {
	return string(e)
}
