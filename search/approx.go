package search

import "sort"

// approxMatch aligns pattern against the cheapest substring of text using
// edit distance with adjacent transpositions (Sellers' variant: the
// alignment may start anywhere in text for free). It returns the error
// count of the best alignment and the runs of text that matched pattern
// runes exactly. Every non-overlapping alignment with the optimal cost
// contributes spans, scanning left to right.
func approxMatch(pattern, text []rune, maxErrors, minLen int) (int, []Span, bool) {
	m, n := len(pattern), len(text)
	if m == 0 {
		return 0, nil, true
	}
	if n == 0 {
		return m, nil, false
	}

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
		d[i][0] = i
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 1
			if pattern[i-1] == text[j-1] {
				cost = 0
			}
			best := d[i-1][j-1] + cost
			if v := d[i-1][j] + 1; v < best {
				best = v
			}
			if v := d[i][j-1] + 1; v < best {
				best = v
			}
			if i > 1 && j > 1 && pattern[i-1] == text[j-2] && pattern[i-2] == text[j-1] {
				if v := d[i-2][j-2] + 1; v < best {
					best = v
				}
			}
			d[i][j] = best
		}
	}

	errs := m
	for j := 1; j <= n; j++ {
		if d[m][j] < errs {
			errs = d[m][j]
		}
	}
	if errs > maxErrors {
		return errs, nil, false
	}

	var positions []int
	lastEnd := -1
	for j := 1; j <= n; j++ {
		if d[m][j] != errs {
			continue
		}
		matched, start := backtrack(d, pattern, text, j)
		if start < lastEnd || len(matched) == 0 {
			continue
		}
		positions = append(positions, matched...)
		lastEnd = j
	}
	sort.Ints(positions)
	spans := runsToSpans(positions, minLen)
	if len(spans) == 0 {
		return errs, nil, false
	}
	return errs, spans, true
}

// backtrack walks one optimal alignment ending at text[j-1] and returns the
// text positions that matched pattern runes and where the alignment starts.
// Exact matches are preferred so that highlighted runs stay contiguous.
func backtrack(d [][]int, pattern, text []rune, j int) ([]int, int) {
	var matched []int
	i := len(pattern)
	for i > 0 {
		switch {
		case j > 0 && pattern[i-1] == text[j-1] && d[i][j] == d[i-1][j-1]:
			matched = append(matched, j-1)
			i--
			j--
		case i > 1 && j > 1 && pattern[i-1] == text[j-2] && pattern[i-2] == text[j-1] && d[i][j] == d[i-2][j-2]+1:
			matched = append(matched, j-1, j-2)
			i -= 2
			j -= 2
		case j > 0 && d[i][j] == d[i-1][j-1]+1:
			i--
			j--
		case j > 0 && d[i][j] == d[i][j-1]+1:
			j--
		default:
			i--
		}
	}
	return matched, j
}

// exactSpans returns every non-overlapping occurrence of pattern in text.
func exactSpans(pattern, text []rune) []Span {
	var spans []Span
	for at := indexRunes(text, pattern, 0); at >= 0; at = indexRunes(text, pattern, at+len(pattern)) {
		spans = append(spans, Span{Start: at, End: at + len(pattern)})
	}
	return spans
}
