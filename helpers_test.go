package btindex

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// redirectTracing routes the core tracer into the test log. The returned
// teardown resets it to a no-op tracer.
func redirectTracing(t *testing.T) func() {
	t.Helper()
	gtrace.CoreTracer = gotestingadapter.New(t)
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	return func() {
		gtrace.CoreTracer = gtrace.NoOpTrace
	}
}

// lf creates a leaf with value == key.
func lf(keys ...int) *leafNode[int, int] {
	leaf := &leafNode[int, int]{}
	for _, k := range keys {
		leaf.items = append(leaf.items, entry[int, int]{key: k, value: k})
	}
	return leaf
}

// in creates an inner node with value == key.
func in(keys []int, children ...treeNode[int, int]) *innerNode[int, int] {
	inner := &innerNode[int, int]{children: children}
	for _, k := range keys {
		inner.items = append(inner.items, entry[int, int]{key: k, value: k})
	}
	return inner
}

// plant installs root as the root of tree and recomputes bookkeeping.
func plant(t *testing.T, tree *Tree[int, int], root treeNode[int, int]) *Tree[int, int] {
	t.Helper()
	tree.root = root
	tree.height = 0
	tree.size = 0
	for n := root; ; {
		tree.height++
		inner, ok := n.(*innerNode[int, int])
		if !ok {
			break
		}
		n = inner.children[0]
	}
	tree.walk(func(n treeNode[int, int], _ int) {
		tree.size += n.slots().count()
	})
	return tree
}

func newIntTree(t *testing.T, order int) *Tree[int, int] {
	t.Helper()
	tree, err := New[int, int](order)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tree
}

// fixtureRoot builds a three-level tree of order 4.
//
//	                     [85 200]
//	   [30 55]          [130 175]            [230 260]
//	[5 15 25] [35 45] [65 75]  [105 115 120 125] [135 145 160 165] [193 196]  …
func fixtureRoot() *innerNode[int, int] {
	return in([]int{85, 200},
		in([]int{30, 55}, lf(5, 15, 25), lf(35, 45), lf(65, 75)),
		in([]int{130, 175}, lf(105, 115, 120, 125), lf(135, 145, 160, 165), lf(193, 196)),
		in([]int{230, 260}, lf(205, 215, 225), lf(235, 245, 255), lf(265, 275)),
	)
}

func fixtureTree(t *testing.T) *Tree[int, int] {
	t.Helper()
	tree := plant(t, newIntTree(t, 4), fixtureRoot())
	if err := tree.Check(); err != nil {
		t.Fatalf("fixture tree invalid: %v", err)
	}
	return tree
}

func keysOf[K, V any](n treeNode[K, V]) []K {
	keys := make([]K, 0, n.slots().count())
	for _, e := range n.slots().items {
		keys = append(keys, e.key)
	}
	return keys
}

func equalKeys[K comparable](a, b []K) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mustCheck[K, V any](t *testing.T, tree *Tree[K, V]) {
	t.Helper()
	if err := tree.Check(); err != nil {
		t.Fatalf("tree invalid: %v\n%s", err, tree.DumpString())
	}
}
