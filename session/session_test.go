package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montrey/sift/search"
	"github.com/montrey/sift/toc"
)

func guideIndex(t *testing.T) *search.Index {
	t.Helper()
	idx, err := search.BuildIndex([]search.Unit{
		{Key: "/notes/quickstart.html", Title: "Quickstart", Path: "quickstart.md", Headers: []string{"Install"}},
		{Key: "/notes/install.html", Title: "Install Guide", Path: "install.md"},
		{Key: "/notes/tools", Title: "tools", Path: "tools", IsDir: true},
	}, search.DefaultWeights())
	require.NoError(t, err)
	return idx
}

func TestSessionInitAndCommit(t *testing.T) {
	s := New(FlatRunner{Index: guideIndex(t), Limit: search.DefaultLimit})
	defer s.Close()

	page := s.Init("insta")
	require.NotEmpty(t, page.Results)
	assert.Equal(t, "insta", page.Query)

	target, ok := s.Commit(false)
	require.True(t, ok)
	assert.Equal(t, "/notes/install.html", target.Key)
	assert.Equal(t, "install.md", target.URL)
	assert.False(t, target.NewContext)

	target, ok = s.Commit(true)
	require.True(t, ok)
	assert.True(t, target.NewContext)
}

func TestSessionCommitWithoutResults(t *testing.T) {
	s := New(FlatRunner{Index: guideIndex(t)})
	defer s.Close()

	_, ok := s.Commit(false)
	assert.False(t, ok)

	s.Init("zzzzqqqq")
	_, ok = s.Commit(false)
	assert.False(t, ok)
}

func TestSessionCommitUsesLastCompletedPage(t *testing.T) {
	s := New(FlatRunner{Index: guideIndex(t)}, WithDelay(time.Hour))
	defer s.Close()

	s.Init("insta")
	s.Input("quickstart")

	target, ok := s.Commit(false)
	require.True(t, ok)
	assert.Equal(t, "/notes/install.html", target.Key)
	assert.Equal(t, "quickstart", s.Query())

	require.True(t, s.Flush())
	target, ok = s.Commit(false)
	require.True(t, ok)
	assert.Equal(t, "/notes/quickstart.html", target.Key)
}

func TestSessionInputDebounces(t *testing.T) {
	pages := make(chan Page, 4)
	s := New(FlatRunner{Index: guideIndex(t)},
		WithDelay(20*time.Millisecond),
		WithOnResults(func(p Page) { pages <- p }))
	defer s.Close()

	s.Input("q")
	s.Input("qu")
	s.Input("quick")

	select {
	case p := <-pages:
		assert.Equal(t, "quick", p.Query)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "no page delivered")
	}

	time.Sleep(60 * time.Millisecond)
	assert.Len(t, pages, 0)
	assert.Equal(t, "quick", s.Page().Query)
}

func TestSessionLucky(t *testing.T) {
	s := New(FlatRunner{Index: guideIndex(t)})
	defer s.Close()

	target, ok := s.Lucky("install guide")
	require.True(t, ok)
	assert.Equal(t, "/notes/install.html", target.Key)

	_, ok = s.Lucky("zzzzqqqq")
	assert.False(t, ok)
}

func TestSessionSetRunnerReruns(t *testing.T) {
	s := New(FlatRunner{Index: guideIndex(t)})
	defer s.Close()

	s.Init("changelog")
	_, ok := s.Commit(false)
	require.False(t, ok)

	idx, err := search.BuildIndex([]search.Unit{{Key: "/notes/changelog.html", Title: "Changelog"}}, search.DefaultWeights())
	require.NoError(t, err)

	page := s.SetRunner(FlatRunner{Index: idx})
	require.Len(t, page.Results, 1)
	target, ok := s.Commit(false)
	require.True(t, ok)
	assert.Equal(t, "/notes/changelog.html", target.Key)
}

func TestSessionEmptyQueryListsFirstUnits(t *testing.T) {
	s := New(FlatRunner{Index: guideIndex(t), Limit: 2})
	defer s.Close()

	page := s.Init("")
	require.Len(t, page.Results, 2)
	assert.Equal(t, "/notes/quickstart.html", page.Results[0].Unit.Key)
}

func TestTOCRunner(t *testing.T) {
	tree := &toc.Node{Children: []*toc.Node{
		{ID: "setup", Text: "Setup", Children: []*toc.Node{
			{ID: "install", Text: "Install"},
			{ID: "upgrade", Text: "Upgrade"},
		}},
	}}
	idx, err := toc.NewIndex(tree)
	require.NoError(t, err)
	r := TOCRunner{Tree: tree, Index: idx, Limit: search.MaxLimit}

	full := r.Run("")
	require.Len(t, full.Tree, 1)
	assert.Equal(t, 3, toc.Count(full.Tree))

	page := r.Run("upgrade")
	require.Len(t, page.Tree, 1)
	assert.Equal(t, "setup", page.Tree[0].Key)
	assert.False(t, page.Tree[0].Matched())
	require.Len(t, page.Tree[0].Children, 1)
	assert.Equal(t, "upgrade", page.Tree[0].Children[0].Key)
}

func TestNilRunner(t *testing.T) {
	s := New(nil)
	page := s.Init("x")
	assert.Empty(t, page.Results)
	_, ok := s.Commit(false)
	assert.False(t, ok)
}
