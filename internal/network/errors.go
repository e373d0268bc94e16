package network

import "errors"

// Precondition failures raised by the network and its trainers. All are
// returned synchronously from the call that violates them; nothing is
// retried internally.
var (
	// ErrNotReady is returned when an operation requires Build to have run.
	ErrNotReady = errors.New("network is not built")

	// ErrInvalidTopology is returned for zero or negative layer sizes, or
	// a Build call with no declared layers.
	ErrInvalidTopology = errors.New("invalid network topology")

	// ErrDimensionMismatch is returned when a supplied vector's length does
	// not match the layer it is applied to.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrStructureMismatch is returned when two networks with different
	// internal structure are combined.
	ErrStructureMismatch = errors.New("network structure mismatch")
)
