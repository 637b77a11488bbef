package btindex

// Delete removes key and its value from the tree. It returns false, leaving
// the tree untouched, if key is not present.
func (t *Tree[K, V]) Delete(key K) bool {
	path := make([]step[K, V], 0, t.height)
	node := t.root
	for {
		i, found := node.slots().locate(key, t.cfg.Compare)
		if found {
			t.deleteAt(path, node, i)
			t.size--
			return true
		}
		inner, isInner := node.(*innerNode[K, V])
		if !isInner {
			return false
		}
		path = append(path, step[K, V]{node: inner, slot: i})
		node = inner.children[i]
	}
}

// deleteAt removes the entry at position i of node, which has been reached via
// path, and restores occupancy bounds.
func (t *Tree[K, V]) deleteAt(path []step[K, V], node treeNode[K, V], i int) {
	inner, isInner := node.(*innerNode[K, V])
	if !isInner {
		node.slots().removeAt(i)
		t.rebalance(path, node)
		return
	}
	// Replace the entry by its in-order predecessor, which lives in the
	// rightmost leaf of the left subtree.
	path = append(path, step[K, V]{node: inner, slot: i})
	chain := pathToMaxKeyNode(inner.children[i])
	for _, n := range chain[:len(chain)-1] {
		in := n.(*innerNode[K, V])
		path = append(path, step[K, V]{node: in, slot: len(in.children) - 1})
	}
	leaf := chain[len(chain)-1]
	assert(leaf.isLeaf(), "deleteAt: predecessor chain does not end in a leaf")
	ls := leaf.slots()
	inner.items[i] = ls.removeAt(ls.count() - 1)
	t.rebalance(path, leaf)
}

// rebalance repairs a node which may have fallen below minimum occupancy,
// working upwards along path as long as merges leave parents deficient.
func (t *Tree[K, V]) rebalance(path []step[K, V], node treeNode[K, V]) {
	minFill := t.cfg.minOccupancy()
	for len(path) > 0 && node.slots().count() < minFill {
		parent := path[len(path)-1]
		path = path[:len(path)-1]
		p, i := parent.node, parent.slot
		assert(p.children[i] == node, "rebalance: path does not lead to node")
		depth := len(path)
		switch {
		case i > 0 && p.children[i-1].slots().count() > minFill:
			p.rotateRight(i - 1)
			t.notify(EventRotateRight, depth, p.items[i-1].key)
			return
		case i+1 < len(p.children) && p.children[i+1].slots().count() > minFill:
			p.rotateLeft(i)
			t.notify(EventRotateLeft, depth, p.items[i].key)
			return
		case i > 0:
			sep := p.items[i-1].key
			p.merge(i - 1)
			t.notify(EventMerge, depth, sep)
		default:
			sep := p.items[i].key
			p.merge(i)
			t.notify(EventMerge, depth, sep)
		}
		node = p
	}
	t.collapseRoot()
}

// collapseRoot replaces an inner root without entries by its only child.
func (t *Tree[K, V]) collapseRoot() {
	root, isInner := t.root.(*innerNode[K, V])
	if !isInner || root.count() > 0 {
		return
	}
	assert(len(root.children) == 1, "collapseRoot: empty root must have exactly one child")
	t.root = root.children[0]
	t.height--
	var first any
	if t.root.slots().count() > 0 {
		first = t.root.slots().items[0].key
	}
	t.notify(EventRootCollapse, 0, first)
}
