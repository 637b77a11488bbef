package btindex

import (
	"cmp"
)

// Tree is an in-memory B-tree mapping keys of type K to values of type V.
//
// The zero value is not usable; create trees with New or NewWithConfig.
type Tree[K, V any] struct {
	cfg    Config[K]
	root   treeNode[K, V] // never nil; an empty tree has an empty leaf root
	size   int
	height int // 1 means a leaf root
}

// step records one level of a root-to-leaf descent: the inner node passed and
// the index of the child the descent continued with.
type step[K, V any] struct {
	node *innerNode[K, V]
	slot int
}

// New creates an empty tree of the given order for an ordered key type.
// order is the maximum number of entries per node and has to be at least
// MinOrder.
func New[K cmp.Ordered, V any](order int) (*Tree[K, V], error) {
	return NewWithConfig[K, V](Config[K]{
		Order:   order,
		Compare: cmp.Compare[K],
	})
}

// NewWithConfig creates an empty tree with a validated configuration.
func NewWithConfig[K, V any](cfg Config[K]) (*Tree[K, V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Tree[K, V]{
		cfg:    cfg,
		root:   &leafNode[K, V]{},
		height: 1,
	}, nil
}

// Order returns the maximum number of entries per node.
func (t *Tree[K, V]) Order() int {
	return t.cfg.Order
}

// Len returns the number of entries in the tree.
func (t *Tree[K, V]) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Height returns the number of levels of the tree. A tree consisting of a
// single leaf (possibly empty) has height 1.
func (t *Tree[K, V]) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// Search returns the value stored for key. found is false if key is not
// present in the tree.
func (t *Tree[K, V]) Search(key K) (value V, found bool) {
	node := t.root
	for {
		i, ok := node.slots().locate(key, t.cfg.Compare)
		if ok {
			return node.slots().items[i].value, true
		}
		inner, isInner := node.(*innerNode[K, V])
		if !isInner {
			return value, false
		}
		node = inner.children[i]
	}
}

// Insert stores value for key. If key is already present, its value is
// replaced and the shape of the tree does not change.
func (t *Tree[K, V]) Insert(key K, value V) {
	path := make([]step[K, V], 0, t.height)
	node := t.root
	for {
		i, found := node.slots().locate(key, t.cfg.Compare)
		if found {
			node.slots().items[i].value = value
			return
		}
		inner, isInner := node.(*innerNode[K, V])
		if !isInner {
			break
		}
		path = append(path, step[K, V]{node: inner, slot: i})
		node = inner.children[i]
	}
	_, inserted := node.slots().upsert(key, value, t.cfg.Compare)
	assert(inserted, "Insert: leaf upsert did not insert")
	t.size++
	t.resolveOverflow(path, node)
}

// resolveOverflow splits node while it holds more entries than the tree's
// order, promoting medians along the recorded ancestor path.
func (t *Tree[K, V]) resolveOverflow(path []step[K, V], node treeNode[K, V]) {
	for node.slots().count() > t.cfg.Order {
		center, left := node.split(t.cfg.Order)
		t.notify(EventSplit, len(path), center.key)
		if len(path) == 0 {
			root := &innerNode[K, V]{}
			root.items = []entry[K, V]{center}
			root.children = []treeNode[K, V]{left, node}
			t.root = root
			t.height++
			t.notify(EventRootGrow, 0, center.key)
			return
		}
		parent := path[len(path)-1]
		path = path[:len(path)-1]
		pos, inserted := parent.node.upsert(center.key, center.value, t.cfg.Compare)
		assert(inserted, "resolveOverflow: promoted key already present in parent")
		assert(pos == parent.slot, "resolveOverflow: promoted key lands off the split slot")
		parent.node.children[parent.slot] = left
		parent.node.children = insertAt(parent.node.children, parent.slot+1, node)
		node = parent.node
	}
}

func (t *Tree[K, V]) notify(kind EventKind, depth int, key any) {
	T().Debugf("btindex: %s at depth %d (key=%v)", kind, depth, key)
	if t.cfg.Observer != nil {
		t.cfg.Observer.Observe(Event{
			Kind:   kind,
			Depth:  depth,
			Key:    key,
			Height: t.height,
		})
	}
}
