package search

import "sort"

// Span is a half-open rune range [Start, End) inside a field value. An
// Overflow span carries no range and stands for matches that were cut off.
type Span struct {
	Start    int  `json:"start"`
	End      int  `json:"end"`
	Overflow bool `json:"overflow,omitempty"`
}

// Len is the number of runes covered by the span.
func (s Span) Len() int {
	if s.Overflow {
		return 0
	}
	return s.End - s.Start
}

func (s Span) valid(n int) bool {
	return !s.Overflow && s.Start >= 0 && s.Start < s.End && s.End <= n
}

// runsToSpans turns sorted, distinct positions into maximal runs, dropping
// runs shorter than minLen.
func runsToSpans(positions []int, minLen int) []Span {
	if minLen < 1 {
		minLen = 1
	}
	var spans []Span
	for i := 0; i < len(positions); {
		j := i + 1
		for j < len(positions) && positions[j] == positions[j-1]+1 {
			j++
		}
		if j-i >= minLen {
			spans = append(spans, Span{Start: positions[i], End: positions[j-1] + 1})
		}
		i = j
	}
	return spans
}

// mergeSpans sorts spans by offset and merges overlapping or touching ones.
func mergeSpans(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}
	sorted := append([]Span(nil), spans...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})
	out := []Span{sorted[0]}
	for _, s := range sorted[1:] {
		last := &out[len(out)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		out = append(out, s)
	}
	return out
}
