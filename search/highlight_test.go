package search

import (
	"reflect"
	"strings"
	"testing"
)

func TestApplyHighlight(t *testing.T) {
	tests := []struct {
		name string
		text string
		span Span
		want string
	}{
		{"prefix", "Install Guide", Span{Start: 0, End: 5}, `<span class="matchHighlight">Insta</span>ll Guide`},
		{"suffix", "Install Guide", Span{Start: 8, End: 13}, `Install <span class="matchHighlight">Guide</span>`},
		{"runes", "Über straße", Span{Start: 5, End: 11}, `Über <span class="matchHighlight">straße</span>`},
		{"empty span", "abc", Span{Start: 1, End: 1}, "abc"},
		{"out of range", "abc", Span{Start: 1, End: 9}, "abc"},
		{"overflow marker", "abc", Span{Overflow: true}, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyHighlight(tt.text, tt.span)
			if got != tt.want {
				t.Errorf("ApplyHighlight = %q, want %q", got, tt.want)
			}
			if stripped := DefaultMarkers.Strip(got); stripped != tt.text {
				t.Errorf("Strip = %q, want %q", stripped, tt.text)
			}
		})
	}
}

func TestApplyHighlightRoundTrip(t *testing.T) {
	text := "a <tag> & \"quoted\" text"
	runes := []rune(text)
	for start := 0; start < len(runes); start++ {
		for end := start + 1; end <= len(runes); end++ {
			span := Span{Start: start, End: end}
			got := ApplyHighlight(text, span)
			want := string(runes[:start]) + DefaultMarkers.Open + string(runes[start:end]) + DefaultMarkers.Close + string(runes[end:])
			if got != want {
				t.Fatalf("span %v: got %q, want %q", span, got, want)
			}
			if DefaultMarkers.Strip(got) != text {
				t.Fatalf("span %v: strip did not restore text", span)
			}
		}
	}
}

func TestBestSpan(t *testing.T) {
	spans := []Span{{Start: 0, End: 2}, {Start: 5, End: 8}, {Start: 10, End: 13}}
	best, ok := BestSpan(spans)
	if !ok || best != (Span{Start: 5, End: 8}) {
		t.Errorf("BestSpan = %v, want [5,8) (longest, earliest)", best)
	}
	if _, ok := BestSpan(nil); ok {
		t.Error("BestSpan(nil) should report no span")
	}
}

func TestSelectSpans(t *testing.T) {
	spans := []Span{
		{Start: 0, End: 1},
		{Start: 2, End: 5},
		{Start: 6, End: 7},
		{Start: 8, End: 12},
		{Start: 13, End: 15},
		{Start: 16, End: 18},
	}
	got := SelectSpans(spans, 4)
	want := []Span{
		{Start: 2, End: 5},
		{Start: 8, End: 12},
		{Start: 13, End: 15},
		{Start: 16, End: 18},
		{Overflow: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SelectSpans = %v, want %v", got, want)
	}

	few := SelectSpans(spans[:2], 4)
	if !reflect.DeepEqual(few, spans[:2]) {
		t.Errorf("SelectSpans under the bound = %v", few)
	}
}

func TestDisplayMatchesOverflow(t *testing.T) {
	var matches []FieldMatch
	matches = append(matches, FieldMatch{Field: FieldTitle, Value: "Setup", Spans: []Span{{Start: 0, End: 5}}})
	for i := 0; i < 7; i++ {
		matches = append(matches, FieldMatch{
			Field:      FieldHeaders,
			Value:      "Setup step",
			ValueIndex: i,
			Spans:      []Span{{Start: 0, End: 5}},
		})
	}

	groups := DisplayMatches(matches, 4)
	if len(groups) != 2 {
		t.Fatalf("expected 2 field groups, got %d", len(groups))
	}
	headers := groups[1]
	if headers.Field != FieldHeaders {
		t.Fatalf("second group = %s, want headers", headers.Field)
	}
	if len(headers.Entries) != 5 {
		t.Fatalf("expected 4 entries plus overflow, got %d", len(headers.Entries))
	}
	overflows := 0
	for _, e := range headers.Entries {
		if e.Overflow {
			overflows++
		}
	}
	if overflows != 1 || !headers.Entries[4].Overflow {
		t.Errorf("expected exactly one trailing overflow entry, got %+v", headers.Entries)
	}

	rendered := headers.Render(Markers{Open: "[", Close: "]"})
	if !strings.HasPrefix(rendered, "headers: [[Setup] step, ") || !strings.HasSuffix(rendered, ", …]") {
		t.Errorf("Render = %q", rendered)
	}
	if got := groups[0].Render(DefaultMarkers); got != `title: [<span class="matchHighlight">Setup</span>]` {
		t.Errorf("title Render = %q", got)
	}
}

func TestDisplayMatchesUnderBound(t *testing.T) {
	matches := []FieldMatch{
		{Field: FieldTags, Value: "go", Spans: []Span{{Start: 0, End: 2}}},
		{Field: FieldTags, Value: "golang"},
	}
	groups := DisplayMatches(matches, 4)
	if len(groups) != 1 || len(groups[0].Entries) != 2 {
		t.Fatalf("unexpected groups %+v", groups)
	}
	if groups[0].Entries[1].HasSpan {
		t.Error("value without spans should render plain")
	}
}
