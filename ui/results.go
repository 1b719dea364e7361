package ui

import (
	"strings"

	"github.com/montrey/sift/search"
)

// RenderResult draws one ranked unit: its title, best title match
// highlighted, followed by a line per matched field.
func RenderResult(r search.Result, selected bool, maxDisplayed int) string {
	base := titleStyle
	cursor := "  "
	if selected {
		base = selectedStyle
		cursor = selectedStyle.Render("> ")
	}

	title := r.Unit.DisplayTitle()
	var b strings.Builder
	b.WriteString(cursor)
	if span, ok := titleSpan(r); ok {
		b.WriteString(Highlight(title, span, base))
	} else {
		b.WriteString(base.Render(title))
	}
	if r.Unit.Path != "" && r.Unit.Path != r.Unit.Title {
		b.WriteString(" " + dimStyle.Render(r.Unit.Path))
	}

	for _, fd := range search.DisplayMatches(r.Matches, maxDisplayed) {
		b.WriteString("\n    ")
		b.WriteString(dimStyle.Render(string(fd.Field) + ": ["))
		for i, e := range fd.Entries {
			if i > 0 {
				b.WriteString(dimStyle.Render(", "))
			}
			switch {
			case e.Overflow:
				b.WriteString(dimStyle.Render(search.OverflowMarker))
			case e.HasSpan:
				b.WriteString(Highlight(e.Value, e.Span, plainStyle))
			default:
				b.WriteString(e.Value)
			}
		}
		b.WriteString(dimStyle.Render("]"))
	}
	return b.String()
}

// RenderResults draws a ranked list with the cursor on index cursor.
func RenderResults(results []search.Result, cursor, maxDisplayed int) string {
	if len(results) == 0 {
		return dimStyle.Render("  no matches")
	}
	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = RenderResult(r, i == cursor, maxDisplayed)
	}
	return strings.Join(lines, "\n")
}

// titleSpan returns the best span of the title match. A directory's
// trailing slash is outside every span, so offsets still line up.
func titleSpan(r search.Result) (search.Span, bool) {
	for _, m := range r.Matches {
		if m.Field == search.FieldTitle {
			return search.BestSpan(m.Spans)
		}
	}
	return search.Span{}, false
}
