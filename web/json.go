package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/montrey/sift/search"
	"github.com/montrey/sift/toc"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type resultJSON struct {
	Key    string      `json:"key"`
	Title  string      `json:"title"`
	HTML   string      `json:"html"`
	Path   string      `json:"path"`
	IsDir  bool        `json:"is_dir"`
	Tags   []string    `json:"tags,omitempty"`
	Score  float64     `json:"score"`
	Fields []fieldJSON `json:"fields,omitempty"`
}

type fieldJSON struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
	HTML   string   `json:"html"`
}

type searchResponse struct {
	Query   string       `json:"query"`
	Results []resultJSON `json:"results"`
}

type tocNodeJSON struct {
	Key      string         `json:"key"`
	Text     string         `json:"text"`
	HTML     string         `json:"html"`
	Href     string         `json:"href,omitempty"`
	Matched  bool           `json:"matched"`
	Children []*tocNodeJSON `json:"children,omitempty"`
}

type tocResponse struct {
	Doc   string         `json:"doc"`
	Query string         `json:"query"`
	Tree  []*tocNodeJSON `json:"tree"`
}

func newResultJSON(r search.Result, m search.Markers, maxDisplayed int) resultJSON {
	title := r.Unit.DisplayTitle()
	out := resultJSON{
		Key:   r.Unit.Key,
		Title: title,
		HTML:  escapeHTML(title),
		Path:  r.Unit.Path,
		IsDir: r.Unit.IsDir,
		Tags:  r.Unit.Tags,
		Score: r.Score,
	}
	for _, fm := range r.Matches {
		if fm.Field != search.FieldTitle {
			continue
		}
		if span, ok := search.BestSpan(fm.Spans); ok {
			out.HTML = highlightHTML(title, span, m)
		}
		break
	}
	for _, fd := range search.DisplayMatches(r.Matches, maxDisplayed) {
		f := fieldJSON{Field: string(fd.Field)}
		escaped := search.FieldDisplay{Field: fd.Field}
		for _, e := range fd.Entries {
			if e.Overflow {
				f.Values = append(f.Values, search.OverflowMarker)
				escaped.Entries = append(escaped.Entries, e)
				continue
			}
			f.Values = append(f.Values, e.Value)
			escaped.Entries = append(escaped.Entries, escapeEntry(e))
		}
		f.HTML = escaped.Render(m)
		out.Fields = append(out.Fields, f)
	}
	return out
}

func newTOCNodes(nodes []*toc.ContextNode, m search.Markers) []*tocNodeJSON {
	out := make([]*tocNodeJSON, 0, len(nodes))
	for _, n := range nodes {
		html := escapeHTML(n.Text)
		for _, s := range n.Highlight {
			if !s.Overflow {
				html = highlightHTML(n.Text, s, m)
				break
			}
		}
		out = append(out, &tocNodeJSON{
			Key:      n.Key,
			Text:     n.Text,
			HTML:     html,
			Href:     n.Href,
			Matched:  n.Matched(),
			Children: newTOCNodes(n.Children, m),
		})
	}
	return out
}
