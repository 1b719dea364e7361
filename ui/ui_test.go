package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montrey/sift/search"
	"github.com/montrey/sift/session"
	"github.com/montrey/sift/toc"
)

func TestHighlight(t *testing.T) {
	assert.Equal(t, "Install Guide", ansi.Strip(Highlight("Install Guide", search.Span{Start: 0, End: 5}, plainStyle)))
	assert.Equal(t, "abc", ansi.Strip(Highlight("abc", search.Span{Start: 2, End: 9}, plainStyle)))
}

func TestRenderResult(t *testing.T) {
	r := search.Result{
		Unit: &search.Unit{Key: "/notes/install.html", Title: "Install Guide", Path: "install.md"},
		Matches: []search.FieldMatch{
			{Field: search.FieldTitle, Value: "Install Guide", Spans: []search.Span{{Start: 0, End: 5}}},
		},
	}
	for i := 0; i < 5; i++ {
		r.Matches = append(r.Matches, search.FieldMatch{
			Field: search.FieldHeaders, Value: "Install", ValueIndex: i,
			Spans: []search.Span{{Start: 0, End: 5}},
		})
	}

	out := ansi.Strip(RenderResult(r, true, 4))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "> Install Guide install.md", lines[0])
	assert.Equal(t, "    title: [Install Guide]", lines[1])
	assert.Equal(t, "    headers: [Install, Install, Install, Install, …]", lines[2])
}

func TestRenderResultsEmpty(t *testing.T) {
	assert.Equal(t, "  no matches", ansi.Strip(RenderResults(nil, 0, 4)))
}

func sampleTree() []*toc.ContextNode {
	root := &toc.Node{Children: []*toc.Node{
		{ID: "setup", Text: "Setup", Children: []*toc.Node{
			{ID: "install", Text: "Install"},
			{ID: "upgrade", Text: "Upgrade"},
		}},
		{ID: "faq", Text: "FAQ"},
	}}
	return toc.Reconstruct(root, []search.Result{
		{Unit: &search.Unit{Key: "upgrade"}, Matches: []search.FieldMatch{{Field: search.FieldTitle, Spans: []search.Span{{Start: 0, End: 2}}}}},
		{Unit: &search.Unit{Key: "faq"}},
	})
}

func TestTreeModelNavigation(t *testing.T) {
	tm := NewTreeModel(sampleTree(), 80, 10)
	require.NotNil(t, tm.SelectedNode())
	assert.Equal(t, "upgrade", tm.SelectedNode().Key)

	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "setup", tm.SelectedNode().Key)

	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "upgrade", tm.SelectedNode().Key)

	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "faq", tm.SelectedNode().Key)
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "faq", tm.SelectedNode().Key)

	lines := strings.Split(ansi.Strip(tm.View()), "\n")
	assert.Equal(t, []string{"  Setup", "    Upgrade", "> FAQ"}, lines)
}

func TestTreeModelScrolls(t *testing.T) {
	tm := NewTreeModel(sampleTree(), 80, 1)
	assert.Equal(t, 1, tm.ScrollOffset)
	assert.Equal(t, ">   Upgrade", ansi.Strip(tm.View()))
}

func TestTreeModelEmpty(t *testing.T) {
	tm := NewTreeModel(nil, 80, 10)
	assert.Nil(t, tm.SelectedNode())
	assert.Equal(t, "  no matches", ansi.Strip(tm.View()))
}

func TestRenderTree(t *testing.T) {
	assert.Equal(t, "Setup\n  Upgrade\nFAQ", ansi.Strip(RenderTree(sampleTree())))
}

func testSession(t *testing.T) (*session.Session, chan session.Page) {
	t.Helper()
	idx, err := search.BuildIndex([]search.Unit{
		{Key: "/notes/install.html", Title: "Install Guide", Path: "install.md"},
	}, search.DefaultWeights())
	require.NoError(t, err)
	pages, feed := PageFeed()
	s := session.New(session.FlatRunner{Index: idx}, feed)
	t.Cleanup(s.Close)
	return s, pages
}

func TestModelCommit(t *testing.T) {
	s, pages := testSession(t)
	initial := s.Init("insta")
	<-pages

	var committed []session.Target
	m := NewModel(s, pages, initial, Options{OnCommit: func(t session.Target) error {
		committed = append(committed, t)
		return nil
	}})
	assert.Contains(t, ansi.Strip(m.View()), "Install Guide")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	final := next.(Model)
	require.NotNil(t, final.Target)
	assert.Equal(t, "/notes/install.html", final.Target.Key)
	require.Len(t, committed, 1)
	assert.False(t, committed[0].NewContext)
}

func TestModelTypingSchedulesSearch(t *testing.T) {
	s, pages := testSession(t)
	m := NewModel(s, pages, s.Init(""), Options{})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.Equal(t, "g", s.Query())

	next, _ = next.Update(pageMsg(session.Page{Query: "g"}))
	assert.Contains(t, ansi.Strip(next.View()), "0 results")
}

func TestPageFeedKeepsNewest(t *testing.T) {
	pages, feed := PageFeed()
	s := session.New(nil, feed)
	s.Init("a")
	s.Init("b")

	p := <-pages
	assert.Equal(t, "b", p.Query)
	assert.Len(t, pages, 0)
}
