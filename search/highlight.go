package search

import (
	"sort"
	"strings"
)

const (
	// DefaultMaxDisplayed bounds how many values of one field are shown.
	DefaultMaxDisplayed = 4
	// OverflowMarker replaces values beyond the display bound.
	OverflowMarker = "…"
)

// Markers are the delimiters wrapped around a highlighted span.
type Markers struct {
	Open  string
	Close string
}

// DefaultMarkers produce the markup the notes site styles.
var DefaultMarkers = Markers{Open: `<span class="matchHighlight">`, Close: `</span>`}

// ApplyHighlight wraps text[span] in DefaultMarkers.
func ApplyHighlight(text string, span Span) string {
	return DefaultMarkers.Apply(text, span)
}

// Apply wraps the runes in [span.Start, span.End) with the markers. Text
// outside the span is returned untouched, and invalid spans leave text as is.
func (m Markers) Apply(text string, span Span) string {
	before, match, after, ok := Segments(text, span)
	if !ok {
		return text
	}
	return before + m.Open + match + m.Close + after
}

// Strip removes every marker from text.
func (m Markers) Strip(text string) string {
	if m.Open != "" {
		text = strings.ReplaceAll(text, m.Open, "")
	}
	if m.Close != "" {
		text = strings.ReplaceAll(text, m.Close, "")
	}
	return text
}

// Segments splits text around span. ok is false when span does not fit.
func Segments(text string, span Span) (before, match, after string, ok bool) {
	runes := []rune(text)
	if !span.valid(len(runes)) {
		return text, "", "", false
	}
	return string(runes[:span.Start]), string(runes[span.Start:span.End]), string(runes[span.End:]), true
}

// BestSpan picks the longest span, preferring the earliest on ties.
func BestSpan(spans []Span) (Span, bool) {
	var best Span
	found := false
	for _, s := range spans {
		if s.Overflow || s.Len() <= 0 {
			continue
		}
		if !found || s.Len() > best.Len() || (s.Len() == best.Len() && s.Start < best.Start) {
			best, found = s, true
		}
	}
	return best, found
}

// SelectSpans keeps the maxDisplayed longest spans (earliest first on ties)
// and returns them in text order. If any were dropped a single Overflow span
// is appended.
func SelectSpans(spans []Span, maxDisplayed int) []Span {
	if maxDisplayed <= 0 {
		maxDisplayed = DefaultMaxDisplayed
	}
	var candidates []Span
	for _, s := range spans {
		if !s.Overflow && s.Len() > 0 {
			candidates = append(candidates, s)
		}
	}
	ranked := append([]Span(nil), candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Len() != ranked[j].Len() {
			return ranked[i].Len() > ranked[j].Len()
		}
		return ranked[i].Start < ranked[j].Start
	})
	overflow := len(ranked) > maxDisplayed
	if overflow {
		ranked = ranked[:maxDisplayed]
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Start < ranked[j].Start })
	if overflow {
		ranked = append(ranked, Span{Overflow: true})
	}
	return ranked
}

// DisplayEntry is one rendered value of a field.
type DisplayEntry struct {
	Value    string `json:"value"`
	Span     Span   `json:"span"`
	HasSpan  bool   `json:"has_span"`
	Overflow bool   `json:"overflow,omitempty"`
}

// Highlighted renders the entry with the given markers.
func (e DisplayEntry) Highlighted(m Markers) string {
	if e.Overflow {
		return OverflowMarker
	}
	if !e.HasSpan {
		return e.Value
	}
	return m.Apply(e.Value, e.Span)
}

// FieldDisplay groups the displayed values of one field.
type FieldDisplay struct {
	Field   Field          `json:"field"`
	Entries []DisplayEntry `json:"entries"`
}

// Render formats the field as "name: [a, b, …]".
func (f FieldDisplay) Render(m Markers) string {
	parts := make([]string, len(f.Entries))
	for i, e := range f.Entries {
		parts[i] = e.Highlighted(m)
	}
	return string(f.Field) + ": [" + strings.Join(parts, ", ") + "]"
}

// DisplayMatches turns the matches of a result into per-field display
// groups. Each value shows its best span. Once a field holds maxDisplayed
// entries, one overflow entry is appended and later values are skipped.
func DisplayMatches(matches []FieldMatch, maxDisplayed int) []FieldDisplay {
	if maxDisplayed <= 0 {
		maxDisplayed = DefaultMaxDisplayed
	}
	var out []FieldDisplay
	pos := map[Field]int{}
	for _, m := range matches {
		i, ok := pos[m.Field]
		if !ok {
			i = len(out)
			pos[m.Field] = i
			out = append(out, FieldDisplay{Field: m.Field})
		}
		fd := &out[i]
		n := len(fd.Entries)
		if n > 0 && fd.Entries[n-1].Overflow {
			continue
		}
		if n >= maxDisplayed {
			fd.Entries = append(fd.Entries, DisplayEntry{Overflow: true})
			continue
		}
		e := DisplayEntry{Value: m.Value}
		e.Span, e.HasSpan = BestSpan(m.Spans)
		fd.Entries = append(fd.Entries, e)
	}
	return out
}
