package web

import (
	"html"

	"github.com/montrey/sift/search"
)

func escapeHTML(s string) string {
	return html.EscapeString(s)
}

// highlightHTML escapes each segment separately so span offsets, which
// count runes of the raw text, stay valid.
func highlightHTML(text string, span search.Span, m search.Markers) string {
	before, match, after, ok := search.Segments(text, span)
	if !ok {
		return escapeHTML(text)
	}
	return escapeHTML(before) + m.Open + escapeHTML(match) + m.Close + escapeHTML(after)
}

// escapeEntry returns an entry whose value is escaped and whose span is
// remapped onto the escaped text.
func escapeEntry(e search.DisplayEntry) search.DisplayEntry {
	if !e.HasSpan {
		e.Value = escapeHTML(e.Value)
		return e
	}
	before, match, after, ok := search.Segments(e.Value, e.Span)
	if !ok {
		e.Value = escapeHTML(e.Value)
		e.HasSpan = false
		return e
	}
	b, mt := escapeHTML(before), escapeHTML(match)
	start := len([]rune(b))
	e.Value = b + mt + escapeHTML(after)
	e.Span = search.Span{Start: start, End: start + len([]rune(mt))}
	return e
}
