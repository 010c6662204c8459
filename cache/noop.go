package cache

import (
	"context"
)

// NoOp is a Store stub.
type NoOp struct{}

var _ Store = NoOp{}

// Read does not find anything.
func (NoOp) Read(ctx context.Context, key string) (interface{}, error) {
	return nil, ErrNotFound
}

// Write discards value.
func (NoOp) Write(ctx context.Context, key string, v interface{}) error {
	return nil
}

// Delete does nothing.
func (NoOp) Delete(ctx context.Context, key string) error {
	return nil
}

// RemoveAll does nothing.
func (NoOp) RemoveAll() {}
