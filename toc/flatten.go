package toc

import (
	"strings"

	"github.com/montrey/sift/search"
)

// Weights favours an entry's own text over the text of its sections.
func Weights() search.Weights {
	return search.Weights{
		search.FieldTitle:   1,
		search.FieldHeaders: 0.25,
	}
}

// Flatten turns every entry of the tree into a search unit, in document
// order. An entry's ancestor texts become its headers, so a deep entry can
// be found through the heading of the section it sits in.
func Flatten(root *Node) []search.Unit {
	units := []search.Unit{}
	walk(root, func(e entry) {
		if strings.TrimSpace(e.node.Text) == "" {
			return
		}
		var headers []string
		for _, a := range e.ancestors {
			if strings.TrimSpace(a.Text) != "" {
				headers = append(headers, a.Text)
			}
		}
		units = append(units, search.Unit{
			Key:          e.key,
			Title:        e.node.Text,
			Path:         e.node.Href,
			Headers:      headers,
			AncestorPath: append([]string(nil), e.ancKeys...),
		})
	})
	return units
}

// NewIndex flattens root and indexes it with the TOC weights.
func NewIndex(root *Node, opts ...search.IndexOption) (*search.Index, error) {
	return search.BuildIndex(Flatten(root), Weights(), opts...)
}
