package btindex

import "fmt"

// EventKind classifies structural changes of a tree.
type EventKind uint8

// Structural events, reported to an Observer in the order they happen.
const (
	EventSplit        EventKind = iota + 1 // an overflowed node has been split
	EventRootGrow                          // a split root has been replaced by a new root
	EventRotateLeft                        // an entry moved from a right sibling to a deficient node
	EventRotateRight                       // an entry moved from a left sibling to a deficient node
	EventMerge                             // two siblings have been merged
	EventRootCollapse                      // an empty root has been replaced by its only child
)

func (k EventKind) String() string {
	switch k {
	case EventSplit:
		return "split"
	case EventRootGrow:
		return "root-grow"
	case EventRotateLeft:
		return "rotate-left"
	case EventRotateRight:
		return "rotate-right"
	case EventMerge:
		return "merge"
	case EventRootCollapse:
		return "root-collapse"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event describes a single structural change.
//
// Depth is the depth of the node the change happened at, with the root at
// depth 0. Key is the entry which moved between levels: the promoted median
// of a split, the separator which moved through the parent on rotation or
// merge. For root events Key is the new root's first key, if any.
type Event struct {
	Kind   EventKind
	Depth  int
	Key    any
	Height int // tree height after the change
}

func (e Event) String() string {
	return fmt.Sprintf("%s depth=%d key=%v height=%d", e.Kind, e.Depth, e.Key, e.Height)
}

// Observer receives structural events of a tree. Observe is called
// synchronously while the tree is being modified; implementations must not
// access the tree from within Observe.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) {
	f(e)
}
