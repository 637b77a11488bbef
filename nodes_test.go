package btindex

import (
	"cmp"
	"testing"
)

func TestNodeCountAllowsTransientOverflow(t *testing.T) {
	leaf := lf()
	for i, k := range []int{85, 200, 230, 260, 290} {
		leaf.upsert(k, k, cmp.Compare[int])
		if leaf.count() != i+1 {
			t.Fatalf("expected count %d, is %d", i+1, leaf.count())
		}
	}
	if !equalKeys(keysOf[int, int](leaf), []int{85, 200, 230, 260, 290}) {
		t.Errorf("unexpected keys %v", keysOf[int, int](leaf))
	}
}

func TestNodeIsLeaf(t *testing.T) {
	if !lf(85, 200).isLeaf() {
		t.Errorf("expected leaf node to be a leaf")
	}
	if in([]int{85}, lf(1), lf(100)).isLeaf() {
		t.Errorf("expected inner node not to be a leaf")
	}
}

func TestNodeLocate(t *testing.T) {
	root := fixtureRoot()
	tests := []struct {
		key   int
		index int
		found bool
	}{
		{20, 0, false},
		{85, 0, true},
		{150, 1, false},
		{200, 1, true},
		{250, 2, false},
	}
	for _, tt := range tests {
		i, found := root.locate(tt.key, cmp.Compare[int])
		if i != tt.index || found != tt.found {
			t.Errorf("locate(%d) = (%d, %v), expected (%d, %v)", tt.key, i, found, tt.index, tt.found)
		}
	}
}

func TestNodeUpsertOverwritesValue(t *testing.T) {
	leaf := lf(10, 20, 30)
	i, inserted := leaf.upsert(20, 99, cmp.Compare[int])
	if inserted || i != 1 {
		t.Fatalf("expected overwrite at 1, got (%d, %v)", i, inserted)
	}
	if leaf.count() != 3 || leaf.items[1].value != 99 {
		t.Errorf("unexpected leaf state %v", leaf.items)
	}
}

func TestNodePathToMaxKeyNode(t *testing.T) {
	root := fixtureRoot()
	path := pathToMaxKeyNode[int, int](root)
	if len(path) != 3 {
		t.Fatalf("expected path of length 3, is %d", len(path))
	}
	if path[0] != treeNode[int, int](root) {
		t.Errorf("expected path to start at subtree root")
	}
	if last := path[len(path)-1]; !last.isLeaf() || !equalKeys(keysOf(last), []int{265, 275}) {
		t.Errorf("expected max leaf [265 275], got %v", keysOf(last))
	}
	path = pathToMaxKeyNode(root.children[0])
	if last := path[len(path)-1]; !equalKeys(keysOf(last), []int{65, 75}) {
		t.Errorf("expected max leaf [65 75], got %v", keysOf(last))
	}
}

func TestNodeRemoveAt(t *testing.T) {
	leaf := lf(265, 275)
	removed := leaf.removeAt(0)
	if removed.key != 265 {
		t.Errorf("expected to remove 265, removed %d", removed.key)
	}
	if !equalKeys(keysOf[int, int](leaf), []int{275}) {
		t.Errorf("expected [275], got %v", keysOf[int, int](leaf))
	}
}

func TestNodeSplitLeaf(t *testing.T) {
	leaf := fixtureRoot().children[1].(*innerNode[int, int]).children[0].(*leafNode[int, int])
	leaf.upsert(110, 110, cmp.Compare[int])
	center, left := leaf.split(4)
	if center.key != 115 || center.value != 115 {
		t.Errorf("expected center 115, got %v", center)
	}
	if !left.isLeaf() || !equalKeys(keysOf(left), []int{105, 110}) {
		t.Errorf("expected left leaf [105 110], got %v", keysOf(left))
	}
	if !equalKeys(keysOf[int, int](leaf), []int{120, 125}) {
		t.Errorf("expected right leaf [120 125], got %v", keysOf[int, int](leaf))
	}
}

func TestNodeSplitOddOrder(t *testing.T) {
	leaf := lf(1, 2, 3, 4)
	center, left := leaf.split(3)
	if center.key != 3 {
		t.Errorf("expected center 3, got %d", center.key)
	}
	if !equalKeys(keysOf(left), []int{1, 2}) || !equalKeys(keysOf[int, int](leaf), []int{4}) {
		t.Errorf("unexpected halves %v | %v", keysOf(left), keysOf[int, int](leaf))
	}
}

func TestNodeSplitInner(t *testing.T) {
	inner := in([]int{10, 20, 30, 40, 50},
		lf(5), lf(15), lf(25), lf(35), lf(45), lf(55))
	center, left := inner.split(4)
	if center.key != 30 {
		t.Errorf("expected center 30, got %d", center.key)
	}
	l := left.(*innerNode[int, int])
	if !equalKeys(keysOf(left), []int{10, 20}) || len(l.children) != 3 {
		t.Errorf("unexpected left half %v with %d children", keysOf(left), len(l.children))
	}
	if !equalKeys(keysOf[int, int](inner), []int{40, 50}) || len(inner.children) != 3 {
		t.Errorf("unexpected right half %v with %d children", keysOf[int, int](inner), len(inner.children))
	}
	if !equalKeys(keysOf(inner.children[0]), []int{35}) {
		t.Errorf("expected right half to start with child [35], got %v", keysOf(inner.children[0]))
	}
}

func TestNodeRotateLeaves(t *testing.T) {
	parent := in([]int{50}, lf(10, 20, 30), lf(70))
	parent.rotateRight(0)
	if !equalKeys(keysOf[int, int](parent), []int{30}) ||
		!equalKeys(keysOf(parent.children[0]), []int{10, 20}) ||
		!equalKeys(keysOf(parent.children[1]), []int{50, 70}) {
		t.Errorf("unexpected state after rotateRight: %v %v %v", keysOf[int, int](parent),
			keysOf(parent.children[0]), keysOf(parent.children[1]))
	}
	parent.rotateLeft(0)
	if !equalKeys(keysOf[int, int](parent), []int{50}) ||
		!equalKeys(keysOf(parent.children[0]), []int{10, 20, 30}) ||
		!equalKeys(keysOf(parent.children[1]), []int{70}) {
		t.Errorf("unexpected state after rotateLeft: %v %v %v", keysOf[int, int](parent),
			keysOf(parent.children[0]), keysOf(parent.children[1]))
	}
}

func TestNodeRotateInnerMovesBoundaryChild(t *testing.T) {
	defer redirectTracing(t)()
	//
	tree := newIntTree(t, 4)
	parent := in([]int{50},
		in([]int{20, 30, 40}, lf(10, 15), lf(22, 25), lf(32, 35), lf(42, 45)),
		in([]int{60}, lf(52, 55), lf(62, 65)),
	)
	parent.rotateRight(0)
	plant(t, tree, parent)
	mustCheck(t, tree)
	right := parent.children[1].(*innerNode[int, int])
	if !equalKeys(keysOf[int, int](right), []int{50, 60}) || len(right.children) != 3 {
		t.Fatalf("unexpected right sibling %v with %d children", keysOf[int, int](right), len(right.children))
	}
	if !equalKeys(keysOf(right.children[0]), []int{42, 45}) {
		t.Errorf("expected boundary child [42 45] to move, got %v", keysOf(right.children[0]))
	}
	parent.rotateLeft(0)
	left := parent.children[0].(*innerNode[int, int])
	if !equalKeys(keysOf[int, int](parent), []int{50}) || len(left.children) != 4 {
		t.Errorf("expected rotateLeft to restore parent [50], got %v", keysOf[int, int](parent))
	}
	if !equalKeys(keysOf(left.children[3]), []int{42, 45}) {
		t.Errorf("expected boundary child [42 45] to move back, got %v", keysOf(left.children[3]))
	}
}

func TestNodeMerge(t *testing.T) {
	parent := in([]int{30, 60}, lf(10, 20), lf(40), lf(70, 80))
	merged := parent.merge(0)
	if merged != parent.children[0] {
		t.Errorf("expected merge result to be absorbed into left child")
	}
	if !equalKeys(keysOf(merged), []int{10, 20, 30, 40}) {
		t.Errorf("unexpected merged keys %v", keysOf(merged))
	}
	if !equalKeys(keysOf[int, int](parent), []int{60}) || len(parent.children) != 2 {
		t.Errorf("unexpected parent %v with %d children", keysOf[int, int](parent), len(parent.children))
	}
	if !equalKeys(keysOf(parent.children[1]), []int{70, 80}) {
		t.Errorf("expected right child [70 80] to shift left, got %v", keysOf(parent.children[1]))
	}
}

func TestNodeMergeInner(t *testing.T) {
	parent := in([]int{40},
		in([]int{20}, lf(10), lf(30)),
		in([]int{60}, lf(50), lf(70)),
	)
	merged := parent.merge(0).(*innerNode[int, int])
	if !equalKeys(keysOf[int, int](merged), []int{20, 40, 60}) || len(merged.children) != 4 {
		t.Errorf("unexpected merged inner node %v with %d children", keysOf[int, int](merged), len(merged.children))
	}
	if parent.count() != 0 || len(parent.children) != 1 {
		t.Errorf("expected parent to be left with a single child")
	}
}
