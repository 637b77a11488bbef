package html

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/btindex"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrIllegalArguments is returned for nil trees and nodes.
var ErrIllegalArguments = errors.New("html: illegal arguments")

// Class names used for the elements of a rendered tree.
const (
	ClassTree   = "btree"
	ClassInner  = "inner"
	ClassLeaf   = "leaf"
	ClassEntry  = "entry"
	ClassVacant = "vacant"
)

// Render writes the structure of tree as an HTML fragment of nested lists.
// Every node is a <li> holding one <span> per slot and, for inner nodes, a
// <ul> of its children:
//
//	<ul class="btree">
//	  <li class="inner"><span class="entry" data-value="110">110</span><span class="vacant"></span>…
//	    <ul><li class="leaf">…</li><li class="leaf">…</li></ul>
//	  </li>
//	</ul>
func Render[K, V any](w io.Writer, tree *btindex.Tree[K, V]) error {
	root, err := Nodes(tree)
	if err != nil {
		return err
	}
	return html.Render(w, root)
}

// Nodes builds the HTML node graph which Render writes.
func Nodes[K, V any](tree *btindex.Tree[K, V]) (*html.Node, error) {
	if tree == nil {
		return nil, ErrIllegalArguments
	}
	layout := tree.Layout()
	list := element(atom.Ul, ClassTree)
	rest := appendNode(list, layout)
	if len(rest) != 0 {
		return nil, fmt.Errorf("html: %d nodes left over after rendering", len(rest))
	}
	tracer().Debugf("rendered %d tree nodes", len(layout))
	return list, nil
}

// appendNode appends the first node of layout, together with its subtree, to
// list. It returns the part of layout following the subtree.
func appendNode[K, V any](list *html.Node, layout []btindex.NodeLayout[K, V]) []btindex.NodeLayout[K, V] {
	if len(layout) == 0 {
		return layout
	}
	node := layout[0]
	class := ClassInner
	if node.Leaf {
		class = ClassLeaf
	}
	item := element(atom.Li, class)
	for _, slot := range node.Slots {
		if !slot.Used {
			item.AppendChild(element(atom.Span, ClassVacant))
			continue
		}
		span := element(atom.Span, ClassEntry)
		span.Attr = append(span.Attr, html.Attribute{Key: "data-value", Val: fmt.Sprintf("%v", slot.Value)})
		span.AppendChild(&html.Node{Type: html.TextNode, Data: fmt.Sprintf("%v", slot.Key)})
		item.AppendChild(span)
	}
	list.AppendChild(item)
	rest := layout[1:]
	if node.Children > 0 {
		children := element(atom.Ul, "")
		for i := 0; i < node.Children; i++ {
			rest = appendNode(children, rest)
		}
		item.AppendChild(children)
	}
	return rest
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}

// InnerText returns the textual content of an HTML element and all its
// descendents. For a rendered tree this is the concatenation of all keys in
// the order of the tree's layout.
func InnerText(n *html.Node) (string, error) {
	if n == nil {
		return "", ErrIllegalArguments
	}
	var b strings.Builder
	collectText(n, &b)
	return b.String(), nil
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// Keys parses an HTML fragment as written by Render and returns the keys of
// every rendered node, in document order.
func Keys(input io.Reader) ([][]string, error) {
	nodes, err := html.ParseFragment(input, &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"})
	if err != nil {
		return nil, err
	}
	var keys [][]string
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Li {
			var row []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.DataAtom == atom.Span && classOf(c) == ClassEntry {
					var text strings.Builder
					collectText(c, &text)
					row = append(row, text.String())
				}
			}
			keys = append(keys, row)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	for _, n := range nodes {
		visit(n)
	}
	return keys, nil
}

func classOf(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "class" {
			return a.Val
		}
	}
	return ""
}
