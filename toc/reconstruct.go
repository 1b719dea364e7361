package toc

import (
	"sort"

	"github.com/montrey/sift/search"
)

// Reconstruct rebuilds the minimal tree that shows every matched entry
// under its ancestor chain. Ranking decides which entries are included;
// siblings are laid out in document order. Each ancestor appears once and
// is shared by all matches below it. Results whose key is not in the tree
// are ignored.
func Reconstruct(root *Node, matched []search.Result) []*ContextNode {
	byKey := map[string]entry{}
	walk(root, func(e entry) { byKey[e.key] = e })

	hits := map[string]*search.Result{}
	var order []entry
	for i := range matched {
		r := &matched[i]
		if r.Unit == nil {
			continue
		}
		e, ok := byKey[r.Unit.Key]
		if !ok {
			continue
		}
		if _, dup := hits[e.key]; dup {
			continue
		}
		hits[e.key] = r
		order = append(order, e)
	}
	sort.Slice(order, func(i, j int) bool { return order[i].order < order[j].order })

	arena := map[string]*ContextNode{}
	roots := []*ContextNode{}
	for _, e := range order {
		var parent *ContextNode
		chain := append(append([]string(nil), e.ancKeys...), e.key)
		for _, key := range chain {
			node, ok := arena[key]
			if !ok {
				node = newContextNode(byKey[key])
				arena[key] = node
				if parent == nil {
					roots = append(roots, node)
				} else {
					parent.Children = append(parent.Children, node)
				}
			}
			parent = node
		}
		leaf := arena[e.key]
		leaf.Result = hits[e.key]
		leaf.Highlight = titleHighlight(leaf.Result)
	}
	return roots
}

// Full converts the whole tree, the presentation used for an empty query.
func Full(root *Node) []*ContextNode {
	if root == nil {
		return []*ContextNode{}
	}
	arena := map[*Node]*ContextNode{}
	roots := []*ContextNode{}
	walk(root, func(e entry) {
		node := newContextNode(e)
		arena[e.node] = node
		if len(e.ancestors) == 0 {
			roots = append(roots, node)
			return
		}
		parent := arena[e.ancestors[len(e.ancestors)-1]]
		parent.Children = append(parent.Children, node)
	})
	return roots
}

func newContextNode(e entry) *ContextNode {
	return &ContextNode{Key: e.key, Text: e.node.Text, Href: e.node.Href}
}

// titleHighlight keeps only the best span of the entry's own text.
func titleHighlight(r *search.Result) []search.Span {
	for _, m := range r.Matches {
		if m.Field == search.FieldTitle {
			return search.SelectSpans(m.Spans, 1)
		}
	}
	return nil
}
