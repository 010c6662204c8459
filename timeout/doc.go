// Package timeout bounds the wall-clock duration of arbitrary computations.
//
// Cancellation is best effort: the computation receives a context with a
// deadline and may honor it, but once the deadline fires its goroutine is
// abandoned, not killed. Work that ignores the context keeps running in the
// background and its result is discarded.
package timeout
