package btindex

import (
	"fmt"
	"strings"
)

// Slot is one entry position of a node in a Dump. Used is false for
// the vacant positions of a node holding fewer entries than the tree's order.
type Slot[K, V any] struct {
	Key   K
	Value V
	Used  bool
}

func (s Slot[K, V]) String() string {
	if !s.Used {
		return "[- -]"
	}
	return fmt.Sprintf("[%v %v]", s.Key, s.Value)
}

// NodeLayout describes a single node as visited by Layout.
type NodeLayout[K, V any] struct {
	Depth    int          // root is at depth 0
	Leaf     bool         // true for leaf nodes
	Children int          // number of children, 0 for leaves
	Slots    []Slot[K, V] // exactly Order() slots
}

// Layout lists the nodes of the tree depth-first, every node before its
// children and children from left to right.
//
// Layout is meant for tests and debugging.
func (t *Tree[K, V]) Layout() []NodeLayout[K, V] {
	var nodes []NodeLayout[K, V]
	t.walk(func(n treeNode[K, V], depth int) {
		layout := NodeLayout[K, V]{
			Depth: depth,
			Leaf:  n.isLeaf(),
			Slots: make([]Slot[K, V], t.cfg.Order),
		}
		for i, e := range n.slots().items {
			layout.Slots[i] = Slot[K, V]{Key: e.key, Value: e.value, Used: true}
		}
		if inner, ok := n.(*innerNode[K, V]); ok {
			layout.Children = len(inner.children)
		}
		nodes = append(nodes, layout)
	})
	return nodes
}

// Dump lists the slots of every node in the order of Layout. Each node is
// represented by exactly Order() slots: its entries followed by vacant slots.
func (t *Tree[K, V]) Dump() [][]Slot[K, V] {
	layout := t.Layout()
	nodes := make([][]Slot[K, V], len(layout))
	for i, n := range layout {
		nodes[i] = n.Slots
	}
	return nodes
}

// DumpString renders Dump as text, one node per line, e.g.
//
//	[[85 85] [200 200] [- -] [- -]]
func (t *Tree[K, V]) DumpString() string {
	var b strings.Builder
	for _, node := range t.Dump() {
		b.WriteString(SlotsString(node))
		b.WriteByte('\n')
	}
	return b.String()
}

// SlotsString renders the slots of a single node.
func SlotsString[K, V any](slots []Slot[K, V]) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, slot := range slots {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(slot.String())
	}
	b.WriteByte(']')
	return b.String()
}

// walk visits the nodes in the order used by Layout.
func (t *Tree[K, V]) walk(fn func(n treeNode[K, V], depth int)) {
	var visit func(n treeNode[K, V], depth int)
	visit = func(n treeNode[K, V], depth int) {
		fn(n, depth)
		if inner, ok := n.(*innerNode[K, V]); ok {
			for _, child := range inner.children {
				visit(child, depth+1)
			}
		}
	}
	visit(t.root, 0)
}
