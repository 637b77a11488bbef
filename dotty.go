package btindex

import (
	"fmt"
	"io"
	"strings"
)

type nodeids[K, V any] struct {
	idTable map[treeNode[K, V]]int
	max     int
}

func newtable[K, V any]() nodeids[K, V] {
	return nodeids[K, V]{
		idTable: make(map[treeNode[K, V]]int),
		max:     1,
	}
}

func (ids nodeids[K, V]) find(node treeNode[K, V]) int {
	return ids.idTable[node]
}

func (ids *nodeids[K, V]) alloc(node treeNode[K, V]) int {
	if id := ids.find(node); id > 0 {
		return id
	}
	ids.idTable[node] = ids.max
	ids.max++
	return ids.max - 1
}

// Tree2Dot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes). Nodes are drawn as records with one field per
// slot; vacant slots are left blank.
func Tree2Dot[K, V any](tree *Tree[K, V], w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12,shape=record];\n")
	ids := newtable[K, V]()
	nodelist, edgelist := "", ""
	tree.walk(func(node treeNode[K, V], depth int) {
		ID := ids.alloc(node)
		nodelist += fmt.Sprintf("\t\"%d\" [label=\"%s\" %s];\n", ID,
			recordLabel(node, tree.cfg.Order), nodeDotStyles(node.isLeaf(), depth))
		if inner, ok := node.(*innerNode[K, V]); ok {
			for _, child := range inner.children {
				edgelist += fmt.Sprintf("\t\"%d\" -> \"%d\";\n", ID, ids.alloc(child))
			}
		}
	})
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

func recordLabel[K, V any](node treeNode[K, V], order int) string {
	fields := make([]string, order)
	for i, e := range node.slots().items {
		fields[i] = dotEscape(fmt.Sprintf("%v", e.key))
	}
	return strings.Join(fields, "|")
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `|`, `\|`, `{`, `\{`, `}`, `\}`, `<`, `\<`, `>`, `\>`)

func dotEscape(s string) string {
	return dotEscaper.Replace(s)
}

func nodeDotStyles(isleaf bool, depth int) string {
	s := ",style=filled"
	if isleaf {
		s += ",fillcolor=white"
	} else {
		s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[min(depth+1, len(hexcolors)-1)])
	}
	return s
}

var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
