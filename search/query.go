package search

import "strings"

type termKind int

const (
	termFuzzy termKind = iota
	termExact
	termInclude
	termPrefix
	termSuffix
	termInverseInclude
	termInversePrefix
	termInverseSuffix
)

type term struct {
	kind    termKind
	pattern string
	folded  []rune
}

func (t term) inverse() bool {
	return t.kind == termInverseInclude || t.kind == termInversePrefix || t.kind == termInverseSuffix
}

// Query is a compiled search string. With extended syntax a query is a set
// of OR-groups (separated by "|"), each a set of whitespace separated terms
// that must all match the same value:
//
//	jscript      fuzzy match
//	=scheme      exact match of the whole value
//	'python      value contains "python"
//	^java        value starts with "java"
//	.md$         value ends with ".md"
//	!ruby        value does not contain "ruby"
//	!^go         value does not start with "go"
//	!.txt$       value does not end with ".txt"
//
// Without extended syntax the whole trimmed query is one fuzzy term.
type Query struct {
	raw    string
	groups [][]term
	opts   MatchOptions
}

// Compile prepares query for repeated matching.
func Compile(query string, opts MatchOptions, extended bool) *Query {
	q := &Query{raw: strings.TrimSpace(query), opts: opts.normalized()}
	if q.raw == "" {
		return q
	}
	if !extended {
		q.groups = [][]term{{newTerm(termFuzzy, q.raw)}}
		return q
	}
	for _, group := range strings.Split(q.raw, "|") {
		var terms []term
		for _, tok := range strings.Fields(group) {
			if t, ok := parseTerm(tok); ok {
				terms = append(terms, t)
			}
		}
		if len(terms) > 0 {
			q.groups = append(q.groups, terms)
		}
	}
	return q
}

func newTerm(kind termKind, pattern string) term {
	return term{kind: kind, pattern: pattern, folded: fold(pattern)}
}

func parseTerm(tok string) (term, bool) {
	var t term
	switch {
	case strings.HasPrefix(tok, "!^"):
		t = newTerm(termInversePrefix, tok[2:])
	case strings.HasPrefix(tok, "!") && strings.HasSuffix(tok, "$") && len(tok) > 2:
		t = newTerm(termInverseSuffix, tok[1:len(tok)-1])
	case strings.HasPrefix(tok, "!"):
		t = newTerm(termInverseInclude, tok[1:])
	case strings.HasPrefix(tok, "="):
		t = newTerm(termExact, tok[1:])
	case strings.HasPrefix(tok, "'"):
		t = newTerm(termInclude, tok[1:])
	case strings.HasPrefix(tok, "^"):
		t = newTerm(termPrefix, tok[1:])
	case strings.HasSuffix(tok, "$") && len(tok) > 1:
		t = newTerm(termSuffix, tok[:len(tok)-1])
	default:
		t = newTerm(termFuzzy, tok)
	}
	return t, len(t.folded) > 0
}

// Empty reports whether the query matches everything.
func (q *Query) Empty() bool {
	return len(q.groups) == 0
}

// String returns the trimmed query text.
func (q *Query) String() string {
	return q.raw
}

// Match tests the query against one value. The best scoring OR-group wins;
// within a group the score is the mean of its terms and spans are merged.
func (q *Query) Match(value string) (MatchResult, bool) {
	if q.Empty() {
		return MatchResult{}, true
	}
	return q.matchText(prepare(value))
}

func (q *Query) matchText(t *text) (MatchResult, bool) {
	if q.Empty() {
		return MatchResult{}, true
	}
	var best MatchResult
	found := false
	for _, group := range q.groups {
		res, ok := q.matchGroup(group, t)
		if !ok {
			continue
		}
		if !found || res.Score < best.Score {
			best, found = res, true
		}
	}
	return best, found
}

func (q *Query) matchGroup(group []term, t *text) (MatchResult, bool) {
	var total float64
	var spans []Span
	positive := false
	for _, tm := range group {
		res, ok := q.matchTerm(tm, t)
		if !ok {
			return MatchResult{}, false
		}
		total += res.Score
		spans = append(spans, res.Spans...)
		if !tm.inverse() {
			positive = true
		}
	}
	// A group made only of negations still needs a non-empty value.
	if !positive && len(t.folded) == 0 {
		return MatchResult{}, false
	}
	return MatchResult{Score: total / float64(len(group)), Spans: mergeSpans(spans)}, true
}

func (q *Query) matchTerm(tm term, t *text) (MatchResult, bool) {
	n := len(tm.folded)
	switch tm.kind {
	case termExact:
		if equalRunes(t.folded, tm.folded) {
			return MatchResult{Spans: []Span{{Start: 0, End: n}}}, true
		}
	case termInclude:
		if spans := exactSpans(tm.folded, t.folded); len(spans) > 0 {
			return MatchResult{Spans: spans}, true
		}
	case termPrefix:
		if hasPrefixRunes(t.folded, tm.folded) {
			return MatchResult{Spans: []Span{{Start: 0, End: n}}}, true
		}
	case termSuffix:
		if hasSuffixRunes(t.folded, tm.folded) {
			l := len(t.folded)
			return MatchResult{Spans: []Span{{Start: l - n, End: l}}}, true
		}
	case termInverseInclude:
		if indexRunes(t.folded, tm.folded, 0) < 0 {
			return MatchResult{}, true
		}
	case termInversePrefix:
		if !hasPrefixRunes(t.folded, tm.folded) {
			return MatchResult{}, true
		}
	case termInverseSuffix:
		if !hasSuffixRunes(t.folded, tm.folded) {
			return MatchResult{}, true
		}
	default:
		return fuzzyMatch(tm.pattern, tm.folded, t, q.opts)
	}
	return MatchResult{Score: 1}, false
}
