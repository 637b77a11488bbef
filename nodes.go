package btindex

import "slices"

// entry is a (key, value) pair stored in a node.
type entry[K, V any] struct {
	key   K
	value V
}

// treeNode is either a *leafNode or an *innerNode.
type treeNode[K, V any] interface {
	isLeaf() bool
	slots() *entries[K, V]
	// split divides an overflowed node of the given capacity. The receiver
	// keeps the upper half, the lower half is returned as a new node and the
	// median entry is returned for promotion.
	split(capacity int) (center entry[K, V], left treeNode[K, V])
}

// entries is the sorted entry sequence shared by both node variants.
type entries[K, V any] struct {
	items []entry[K, V]
}

type leafNode[K, V any] struct {
	entries[K, V]
}

func (l *leafNode[K, V]) isLeaf() bool { return true }
func (l *leafNode[K, V]) slots() *entries[K, V] { return &l.entries }

type innerNode[K, V any] struct {
	entries[K, V]
	// children must satisfy len(children) == len(items)+1 between operations.
	children []treeNode[K, V]
}

func (n *innerNode[K, V]) isLeaf() bool { return false }
func (n *innerNode[K, V]) slots() *entries[K, V] { return &n.entries }

// --- Local entry operations ------------------------------------------------

func (e *entries[K, V]) count() int {
	return len(e.items)
}

// locate scans the entries for key. If key is present, it returns its
// position and found=true. Otherwise it returns the index of the child into
// which a search for key has to descend: the position of the first entry with
// a greater key, or count() if there is none.
func (e *entries[K, V]) locate(key K, compare func(a, b K) int) (index int, found bool) {
	for i := range e.items {
		c := compare(e.items[i].key, key)
		if c == 0 {
			return i, true
		}
		if c > 0 {
			return i, false
		}
	}
	return len(e.items), false
}

// upsert overwrites the value of an existing entry for key or inserts a new
// entry in sorted position. It returns the entry's position and whether a new
// entry has been inserted. After an insert the node may hold one entry more
// than its capacity; callers have to resolve the overflow immediately.
func (e *entries[K, V]) upsert(key K, value V, compare func(a, b K) int) (int, bool) {
	i, found := e.locate(key, compare)
	if found {
		e.items[i].value = value
		return i, false
	}
	e.items = insertAt(e.items, i, entry[K, V]{key: key, value: value})
	return i, true
}

// removeAt deletes the entry at index and returns it. Children are never
// touched.
func (e *entries[K, V]) removeAt(index int) entry[K, V] {
	assert(index >= 0 && index < len(e.items), "removeAt index out of range")
	removed := e.items[index]
	e.items = removeRange(e.items, index, index+1)
	return removed
}

// --- Split -----------------------------------------------------------------

// median returns the split position ⌈capacity/2⌉ for an overflowed node.
func median(capacity int) int {
	return (capacity + 1) / 2
}

func (l *leafNode[K, V]) split(capacity int) (entry[K, V], treeNode[K, V]) {
	assert(len(l.items) == capacity+1, "split called on leaf without overflow")
	m := median(capacity)
	left := &leafNode[K, V]{}
	left.items = slices.Clone(l.items[:m])
	center := l.items[m]
	l.items = removeRange(l.items, 0, m+1)
	return center, left
}

func (n *innerNode[K, V]) split(capacity int) (entry[K, V], treeNode[K, V]) {
	assert(len(n.items) == capacity+1, "split called on inner node without overflow")
	assert(len(n.children) == capacity+2, "split called on inner node with inconsistent children")
	m := median(capacity)
	left := &innerNode[K, V]{}
	left.items = slices.Clone(n.items[:m])
	left.children = slices.Clone(n.children[:m+1])
	center := n.items[m]
	n.items = removeRange(n.items, 0, m+1)
	n.children = removeRange(n.children, 0, m+1)
	return center, left
}

// --- Sibling operations on a parent ----------------------------------------

// rotateRight moves the last entry of children[i] up into the parent and the
// parent's entry i down to the front of children[i+1]. For inner children the
// boundary child moves along.
func (n *innerNode[K, V]) rotateRight(i int) {
	assert(i >= 0 && i+1 < len(n.children), "rotateRight index out of range")
	left, right := n.children[i], n.children[i+1]
	ls, rs := left.slots(), right.slots()
	up := ls.removeAt(ls.count() - 1)
	rs.items = insertAt(rs.items, 0, n.items[i])
	n.items[i] = up
	if l, ok := left.(*innerNode[K, V]); ok {
		r := right.(*innerNode[K, V])
		moved := l.children[len(l.children)-1]
		l.children = removeRange(l.children, len(l.children)-1, len(l.children))
		r.children = insertAt(r.children, 0, moved)
	}
}

// rotateLeft moves the first entry of children[i+1] up into the parent and the
// parent's entry i down to the end of children[i]. For inner children the
// boundary child moves along.
func (n *innerNode[K, V]) rotateLeft(i int) {
	assert(i >= 0 && i+1 < len(n.children), "rotateLeft index out of range")
	left, right := n.children[i], n.children[i+1]
	ls, rs := left.slots(), right.slots()
	up := rs.removeAt(0)
	ls.items = append(ls.items, n.items[i])
	n.items[i] = up
	if r, ok := right.(*innerNode[K, V]); ok {
		l := left.(*innerNode[K, V])
		moved := r.children[0]
		r.children = removeRange(r.children, 0, 1)
		l.children = append(l.children, moved)
	}
}

// merge combines children[i], the parent's entry i and children[i+1] into
// children[i]. The parent loses entry i and child slot i+1, and may become
// deficient itself.
func (n *innerNode[K, V]) merge(i int) treeNode[K, V] {
	assert(i >= 0 && i+1 < len(n.children), "merge index out of range")
	left, right := n.children[i], n.children[i+1]
	ls := left.slots()
	ls.items = append(ls.items, n.items[i])
	ls.items = append(ls.items, right.slots().items...)
	if l, ok := left.(*innerNode[K, V]); ok {
		r := right.(*innerNode[K, V])
		l.children = append(l.children, r.children...)
	}
	n.items = removeRange(n.items, i, i+1)
	n.children = removeRange(n.children, i+1, i+2)
	return left
}

// pathToMaxKeyNode follows the rightmost children from n down to the leaf
// holding the subtree's maximum key. The result starts with n and ends with
// that leaf.
func pathToMaxKeyNode[K, V any](n treeNode[K, V]) []treeNode[K, V] {
	assert(n != nil, "pathToMaxKeyNode called with nil node")
	path := []treeNode[K, V]{n}
	for !n.isLeaf() {
		inner := n.(*innerNode[K, V])
		n = inner.children[len(inner.children)-1]
		path = append(path, n)
	}
	return path
}

// --- Slice helpers ---------------------------------------------------------

// insertAt inserts values into a slice at idx, shifting the tail right.
func insertAt[T any](src []T, idx int, values ...T) []T {
	assert(idx >= 0 && idx <= len(src), "insertAt index out of range")
	return slices.Insert(src, idx, values...)
}

// removeRange removes the half-open interval [from,to) from a slice. Vacated
// tail slots are zeroed.
func removeRange[T any](src []T, from, to int) []T {
	assert(from >= 0 && from <= to && to <= len(src), "removeRange bounds invalid")
	return slices.Delete(src, from, to)
}
