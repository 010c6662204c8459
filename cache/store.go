package cache

import (
	"context"
	"time"
)

// Reader reads from a store.
type Reader interface {
	// Read returns cached value and/or error.
	// If ErrExpired is returned, the expired value must be returned as well.
	Read(ctx context.Context, key string) (interface{}, error)
}

// Writer writes to a store.
type Writer interface {
	// Write stores value with a given key, honoring a WithTTL override.
	Write(ctx context.Context, key string, value interface{}) error
}

// Store keeps cache entries.
type Store interface {
	Reader
	Writer

	// Delete removes an entry, missing key is not an error.
	Delete(ctx context.Context, key string) error

	// RemoveAll deletes all entries.
	RemoveAll()
}

// Entry is an item stored in cache.
type Entry interface {
	Value() interface{}
}

// Expirable is an entry with limited life time.
type Expirable interface {
	ExpireAt() time.Time
}

// Walker calls function for every entry in a store and fails on first error
// returned by that function.
//
// Count of processed entries is returned.
type Walker interface {
	Walk(func(key string, entry Entry) error) (int, error)
}

// ErrExpiredEntry defines an expiration error with entry details.
type ErrExpiredEntry interface {
	error
	Value() interface{}
	ExpiredAt() time.Time
}
