// Package toc searches hierarchical content such as a document's table of
// contents. Entries are flattened into search units that remember their
// ancestor chain, and matched entries are rebuilt into the smallest tree
// that shows each match under its sections.
package toc

import (
	"strconv"
	"strings"

	"github.com/montrey/sift/search"
)

// Node is one entry of a content tree. The root passed to Flatten and
// Reconstruct is synthetic: its own Text is never searched or shown.
type Node struct {
	ID       string  `json:"id,omitempty"`
	Text     string  `json:"text"`
	Href     string  `json:"href,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// ContextNode is one node of a rebuilt result tree. Ancestors that are only
// shown for context have a nil Result.
type ContextNode struct {
	Key       string         `json:"key"`
	Text      string         `json:"text"`
	Href      string         `json:"href,omitempty"`
	Result    *search.Result `json:"result,omitempty"`
	Highlight []search.Span  `json:"highlight,omitempty"`
	Children  []*ContextNode `json:"children,omitempty"`
}

// Matched reports whether the node is itself a search hit.
func (c *ContextNode) Matched() bool {
	return c.Result != nil
}

// Highlighted returns Text with the first highlight span wrapped in m.
func (c *ContextNode) Highlighted(m search.Markers) string {
	for _, s := range c.Highlight {
		if !s.Overflow {
			return m.Apply(c.Text, s)
		}
	}
	return c.Text
}

// Count returns the number of nodes in the forest.
func Count(nodes []*ContextNode) int {
	n := 0
	for _, c := range nodes {
		n += 1 + Count(c.Children)
	}
	return n
}

// entry is a node visited in document order together with its stable key
// and the keys of its ancestors (synthetic root excluded).
type entry struct {
	node      *Node
	key       string
	order     int
	ancestors []*Node
	ancKeys   []string
}

// walk visits every node below root in pre-order. Keys are node IDs when
// present and unique, otherwise the child index path ("0.2.1"), suffixed
// with -1, -2 if an earlier ID already took it.
func walk(root *Node, fn func(e entry)) {
	if root == nil {
		return
	}
	seen := map[string]bool{}
	order := 0
	var visit func(n *Node, pos []int, ancestors []*Node, ancKeys []string)
	visit = func(n *Node, pos []int, ancestors []*Node, ancKeys []string) {
		for i, child := range n.Children {
			if child == nil {
				continue
			}
			childPos := append(append([]int(nil), pos...), i)
			key := strings.TrimSpace(child.ID)
			if key == "" || seen[key] {
				key = positionKey(childPos)
				for n := 1; seen[key]; n++ {
					key = positionKey(childPos) + "-" + strconv.Itoa(n)
				}
			}
			seen[key] = true

			fn(entry{node: child, key: key, order: order, ancestors: ancestors, ancKeys: ancKeys})
			order++

			visit(child, childPos,
				append(append([]*Node(nil), ancestors...), child),
				append(append([]string(nil), ancKeys...), key))
		}
	}
	visit(root, nil, nil, nil)
}

func positionKey(pos []int) string {
	parts := make([]string, len(pos))
	for i, p := range pos {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ".")
}
