package session

import (
	"strings"

	"github.com/montrey/sift/search"
	"github.com/montrey/sift/toc"
)

// Page is the outcome of one completed search.
type Page struct {
	Query   string             `json:"query"`
	Results []search.Result    `json:"results"`
	Tree    []*toc.ContextNode `json:"tree,omitempty"`
}

// Empty reports whether the page has nothing to commit to.
func (p Page) Empty() bool {
	return len(p.Results) == 0
}

// Runner turns a query into a page. Implementations must not retain the
// query between calls.
type Runner interface {
	Run(query string) Page
}

// FlatRunner ranks units of an index into a flat list.
type FlatRunner struct {
	Index *search.Index
	Limit int
}

func (r FlatRunner) Run(query string) Page {
	page := Page{Query: query, Results: []search.Result{}}
	if r.Index != nil {
		page.Results = r.Index.Search(query, r.Limit)
	}
	return page
}

// TOCRunner searches a content tree and shows matches under their sections.
// An empty query shows the whole tree.
type TOCRunner struct {
	Tree  *toc.Node
	Index *search.Index
	Limit int
}

func (r TOCRunner) Run(query string) Page {
	page := FlatRunner{Index: r.Index, Limit: r.Limit}.Run(query)
	if strings.TrimSpace(query) == "" {
		page.Tree = toc.Full(r.Tree)
		return page
	}
	page.Tree = toc.Reconstruct(r.Tree, page.Results)
	return page
}
