package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/montrey/sift/search"
	"github.com/montrey/sift/session"
	"github.com/montrey/sift/toc"
)

func (s *Server) healthzHandler(w http.ResponseWriter, r *http.Request) {
	_, idx := s.snapshot()
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "units": idx.Len()})
}

func (s *Server) search(r *http.Request) (string, []search.Result) {
	_, idx := s.snapshot()
	q := r.URL.Query().Get("q")
	limit := search.NormalizeLimit(r.URL.Query().Get("limit"), s.opts.Limit)
	return q, idx.Search(q, limit)
}

func (s *Server) respondResults(w http.ResponseWriter, q string, results []search.Result) {
	resp := searchResponse{Query: q, Results: make([]resultJSON, 0, len(results))}
	for _, res := range results {
		resp.Results = append(resp.Results, newResultJSON(res, s.opts.Markers, s.opts.MaxDisplayed))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	q, results := s.search(r)
	s.respondResults(w, q, results)
}

// searchPageHandler redirects to the best result when the lucky parameter
// is present and something matched. Otherwise it lists the results.
func (s *Server) searchPageHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("lucky") {
		_, idx := s.snapshot()
		sess := session.New(session.FlatRunner{Index: idx, Limit: s.opts.Limit})
		defer sess.Close()
		if target, ok := sess.Lucky(r.URL.Query().Get("q")); ok {
			http.Redirect(w, r, target.Key, http.StatusFound)
			return
		}
	}
	q, results := s.search(r)
	s.respondResults(w, q, results)
}

func (s *Server) tocHandler(w http.ResponseWriter, r *http.Request) {
	c, _ := s.snapshot()
	doc := r.URL.Query().Get("doc")
	if doc == "" {
		writeError(w, http.StatusBadRequest, "doc is required")
		return
	}
	tree, err := c.TOC(doc)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	idx, err := toc.NewIndex(tree, s.opts.IndexOptions...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	q := r.URL.Query().Get("q")
	limit := search.NormalizeLimit(r.URL.Query().Get("limit"), search.MaxLimit)
	page := session.TOCRunner{Tree: tree, Index: idx, Limit: limit}.Run(q)
	writeJSON(w, http.StatusOK, tocResponse{
		Doc:   doc,
		Query: q,
		Tree:  newTOCNodes(page.Tree, s.opts.Markers),
	})
}

func (s *Server) permalinkHandler(w http.ResponseWriter, r *http.Request) {
	c, _ := s.snapshot()
	key, ok := c.Permalink(chi.URLParam(r, "uuid"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown permalink")
		return
	}
	http.Redirect(w, r, key, http.StatusFound)
}

func (s *Server) tagsHandler(w http.ResponseWriter, r *http.Request) {
	c, _ := s.snapshot()
	writeJSON(w, http.StatusOK, c.Tags())
}
