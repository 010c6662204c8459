package logutil

import (
	"context"

	"github.com/bool64/ctxd"
)

// Bridge adapts Logger to ctxd.Logger so the cache and timeout utilities
// can log through the configured sinks.
type Bridge struct {
	L *Logger
}

var _ ctxd.Logger = Bridge{}

// Debug implements ctxd.Logger.
func (b Bridge) Debug(_ context.Context, msg string, keysAndValues ...interface{}) {
	b.L.Debug(msg, keysAndValues...)
}

// Info implements ctxd.Logger.
func (b Bridge) Info(_ context.Context, msg string, keysAndValues ...interface{}) {
	b.L.Info(msg, keysAndValues...)
}

// Important implements ctxd.Logger, mapped to info level.
func (b Bridge) Important(_ context.Context, msg string, keysAndValues ...interface{}) {
	b.L.Info(msg, keysAndValues...)
}

// Warn implements ctxd.Logger.
func (b Bridge) Warn(_ context.Context, msg string, keysAndValues ...interface{}) {
	b.L.Warn(msg, keysAndValues...)
}

// Error implements ctxd.Logger.
func (b Bridge) Error(_ context.Context, msg string, keysAndValues ...interface{}) {
	b.L.Error(msg, keysAndValues...)
}
