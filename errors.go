package btindex

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration, e.g., an order
	// too small to support rotation and merging.
	ErrInvalidConfig = errors.New("btindex: invalid configuration")
	// ErrInvariantViolation signals a corrupted tree structure. It is reported by
	// Check and always indicates a bug in this package.
	ErrInvariantViolation = errors.New("btindex: invariant violation")
)
