package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// subsequenceMatch requires every pattern rune to appear in text, in order.
// Spaces are dropped from the pattern so "foo bar" gap-matches "foo/x/bar"
// without requiring the space itself. The score is the share of the
// matched window that is not part of the match: 0 for a contiguous run.
func subsequenceMatch(pattern string, t *text, minLen int) (float64, []Span, bool) {
	clean := strings.ReplaceAll(pattern, " ", "")
	if clean == "" {
		return 0, nil, true
	}
	if t.raw == "" {
		return 1, nil, false
	}

	matches := fuzzy.Find(clean, []string{t.raw})
	if len(matches) == 0 || len(matches[0].MatchedIndexes) == 0 {
		return 1, nil, false
	}

	offsets := t.byteToRune()
	positions := make([]int, 0, len(matches[0].MatchedIndexes))
	for _, b := range matches[0].MatchedIndexes {
		if r, ok := offsets[b]; ok {
			positions = append(positions, r)
		}
	}
	if len(positions) == 0 {
		return 1, nil, false
	}
	sort.Ints(positions)

	window := positions[len(positions)-1] - positions[0] + 1
	score := 1 - float64(len(positions))/float64(window)

	spans := runsToSpans(positions, minLen)
	if len(spans) == 0 {
		return score, nil, false
	}
	return score, spans, true
}
