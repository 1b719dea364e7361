package search

import (
	"fmt"
	"math"
	"strings"
)

// DefaultThreshold is the similarity threshold used when none is configured.
const DefaultThreshold = 0.4

// Algorithm selects how fuzzy terms are matched.
type Algorithm string

const (
	// AlgorithmApprox tolerates insertions, deletions, substitutions and
	// adjacent transpositions, anywhere in the text.
	AlgorithmApprox Algorithm = "approx"
	// AlgorithmSubsequence matches the query runes in order with gaps.
	AlgorithmSubsequence Algorithm = "subsequence"
)

// ParseAlgorithm maps a config value onto an Algorithm. The empty string
// selects AlgorithmApprox.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case "", AlgorithmApprox:
		return AlgorithmApprox, nil
	case AlgorithmSubsequence:
		return AlgorithmSubsequence, nil
	}
	return "", fmt.Errorf("unknown match algorithm %q", s)
}

// MatchOptions tunes a single match.
type MatchOptions struct {
	// Threshold in [0,1]: 0 demands an exact match, 1 accepts almost anything.
	Threshold float64
	Algorithm Algorithm
	// MinMatchCharLength drops highlighted runs shorter than this.
	MinMatchCharLength int
}

// DefaultMatchOptions returns the options the index uses by default.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{Threshold: DefaultThreshold, Algorithm: AlgorithmApprox, MinMatchCharLength: 1}
}

// MatchResult describes how a query matched one value. Lower scores are
// better; 0 is a perfect match.
type MatchResult struct {
	Score float64
	Spans []Span
}

// Match reports whether query approximately matches text. Matching is
// case-insensitive and does not care where in text the match occurs.
func Match(query, text string, opts MatchOptions) (MatchResult, bool) {
	return Compile(query, opts, false).Match(text)
}

func (o MatchOptions) normalized() MatchOptions {
	if math.IsNaN(o.Threshold) || o.Threshold < 0 {
		o.Threshold = 0
	}
	if o.Threshold > 1 {
		o.Threshold = 1
	}
	if o.Algorithm == "" {
		o.Algorithm = AlgorithmApprox
	}
	if o.MinMatchCharLength < 1 {
		o.MinMatchCharLength = 1
	}
	return o
}

// maxErrors is the edit budget a pattern of n runes gets at this threshold.
func (o MatchOptions) maxErrors(n int) int {
	return int(math.Floor(o.Threshold*float64(n) + 1e-9))
}

// fuzzyMatch runs the configured fuzzy algorithm for one folded pattern.
func fuzzyMatch(pattern string, folded []rune, t *text, opts MatchOptions) (MatchResult, bool) {
	if len(folded) == 0 {
		return MatchResult{}, true
	}
	if len(t.folded) == 0 {
		return MatchResult{Score: 1}, false
	}

	if spans := exactSpans(folded, t.folded); len(spans) > 0 {
		spans = runsFilter(spans, opts.MinMatchCharLength)
		if len(spans) > 0 {
			return MatchResult{Score: 0, Spans: spans}, true
		}
	}

	switch opts.Algorithm {
	case AlgorithmSubsequence:
		score, spans, ok := subsequenceMatch(pattern, t, opts.MinMatchCharLength)
		if !ok || score > opts.Threshold+1e-9 {
			return MatchResult{Score: score}, false
		}
		return MatchResult{Score: score, Spans: spans}, true
	default:
		errs, spans, ok := approxMatch(folded, t.folded, opts.maxErrors(len(folded)), opts.MinMatchCharLength)
		score := float64(errs) / float64(len(folded))
		if !ok {
			return MatchResult{Score: score}, false
		}
		return MatchResult{Score: score, Spans: spans}, true
	}
}

func runsFilter(spans []Span, minLen int) []Span {
	var out []Span
	for _, s := range spans {
		if s.Len() >= minLen {
			out = append(out, s)
		}
	}
	return out
}
