package btindex

import "fmt"

// Check validates the structural invariants of the tree:
//
//   - entries of every node are strictly ascending,
//   - every inner node with n entries has n+1 children,
//   - keys of a child lie strictly between the bounding entries of its parent,
//   - every node but the root holds between ⌊order/2⌋ and order entries,
//   - all leaves are at the same depth, which equals the tree's height,
//   - the number of entries equals Len().
//
// Check is intended for tests and debugging. A non-nil result wraps
// ErrInvariantViolation and always points to a bug in this package.
func (t *Tree[K, V]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if t.root == nil {
		return fmt.Errorf("%w: nil root", ErrInvariantViolation)
	}
	if inner, ok := t.root.(*innerNode[K, V]); ok && inner.count() == 0 {
		return fmt.Errorf("%w: inner root without entries", ErrInvariantViolation)
	}
	count, height, err := t.checkNode(t.root, true, nil, nil)
	if err != nil {
		return err
	}
	if height != t.height {
		return fmt.Errorf("%w: height mismatch (%d != %d)", ErrInvariantViolation, height, t.height)
	}
	if count != t.size {
		return fmt.Errorf("%w: size mismatch (%d != %d)", ErrInvariantViolation, count, t.size)
	}
	return nil
}

// checkNode validates the subtree at n. lo and hi, if non-nil, are exclusive
// bounds for all keys of the subtree.
func (t *Tree[K, V]) checkNode(n treeNode[K, V], isRoot bool, lo, hi *K) (count int, height int, err error) {
	if n == nil {
		return 0, 0, fmt.Errorf("%w: nil node", ErrInvariantViolation)
	}
	items := n.slots().items
	if len(items) > t.cfg.Order {
		return 0, 0, fmt.Errorf("%w: node holds %d entries, order is %d",
			ErrInvariantViolation, len(items), t.cfg.Order)
	}
	if !isRoot && len(items) < t.cfg.minOccupancy() {
		return 0, 0, fmt.Errorf("%w: node holds %d entries, minimum is %d",
			ErrInvariantViolation, len(items), t.cfg.minOccupancy())
	}
	for i := range items {
		k := items[i].key
		if i > 0 && t.cfg.Compare(items[i-1].key, k) >= 0 {
			return 0, 0, fmt.Errorf("%w: entries not strictly ascending at %v", ErrInvariantViolation, k)
		}
		if lo != nil && t.cfg.Compare(k, *lo) <= 0 {
			return 0, 0, fmt.Errorf("%w: key %v not above bound %v", ErrInvariantViolation, k, *lo)
		}
		if hi != nil && t.cfg.Compare(k, *hi) >= 0 {
			return 0, 0, fmt.Errorf("%w: key %v not below bound %v", ErrInvariantViolation, k, *hi)
		}
	}
	inner, isInner := n.(*innerNode[K, V])
	if !isInner {
		return len(items), 1, nil
	}
	if len(inner.children) != len(items)+1 {
		return 0, 0, fmt.Errorf("%w: inner node with %d entries has %d children",
			ErrInvariantViolation, len(items), len(inner.children))
	}
	count = len(items)
	for i, child := range inner.children {
		clo, chi := lo, hi
		if i > 0 {
			clo = &items[i-1].key
		}
		if i < len(items) {
			chi = &items[i].key
		}
		c, h, cerr := t.checkNode(child, false, clo, chi)
		if cerr != nil {
			return 0, 0, cerr
		}
		count += c
		if i == 0 {
			height = h
		} else if h != height {
			return 0, 0, fmt.Errorf("%w: non-uniform subtree heights", ErrInvariantViolation)
		}
	}
	return count, height + 1, nil
}
