package timeout

import "fmt"

// SentinelError is an error.
type SentinelError string

const (
	// ErrTimeout indicates the computation did not finish in time.
	ErrTimeout = SentinelError("computation timed out")

	// ErrComputationFailed indicates the computation itself failed before the deadline.
	ErrComputationFailed = SentinelError("computation failed")

	// ErrInvalidTimeout indicates a non-positive timeout duration.
	ErrInvalidTimeout = SentinelError("timeout must be positive")
)

// Error implements error.
func (e SentinelError) Error() string {
	return string(e)
}

// ComputationError wraps the cause of a failed computation.
type ComputationError struct {
	cause error
}

// Error implements error.
func (e ComputationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrComputationFailed, e.cause)
}

// Unwrap returns the underlying failure.
func (e ComputationError) Unwrap() error {
	return e.cause
}

// Is matches ErrComputationFailed.
func (e ComputationError) Is(err error) bool {
	return err == ErrComputationFailed
}
