package btindex

import "fmt"

// MinOrder is the smallest order a tree may be configured with. Smaller orders
// leave a deficient node without a sibling to rotate from or merge with.
const MinOrder = 3

// Config configures a B-tree.
type Config[K any] struct {
	// Order is the maximum number of entries per node.
	Order int
	// Compare defines a total order on keys. It returns a negative number if
	// a < b, zero if a == b and a positive number if a > b.
	Compare func(a, b K) int
	// Observer, if set, receives structural events (splits, rotations, merges).
	Observer Observer
}

func (cfg Config[K]) validate() error {
	if cfg.Order < MinOrder {
		return fmt.Errorf("%w: order must be >= %d, is %d", ErrInvalidConfig, MinOrder, cfg.Order)
	}
	if cfg.Compare == nil {
		return fmt.Errorf("%w: compare function is required", ErrInvalidConfig)
	}
	return nil
}

// minOccupancy is the least number of entries a non-root node must hold.
func (cfg Config[K]) minOccupancy() int {
	return cfg.Order / 2
}
