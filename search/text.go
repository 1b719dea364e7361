package search

import "unicode"

// text is a field value prepared for matching: the original runes plus a
// per-rune lower-cased copy, so offsets found in one are valid in the other.
type text struct {
	raw    string
	runes  []rune
	folded []rune
}

func prepare(s string) *text {
	runes := []rune(s)
	folded := make([]rune, len(runes))
	for i, r := range runes {
		folded[i] = unicode.ToLower(r)
	}
	return &text{raw: s, runes: runes, folded: folded}
}

func fold(s string) []rune {
	return prepare(s).folded
}

// byteToRune maps byte offsets of raw onto rune offsets.
func (t *text) byteToRune() map[int]int {
	m := make(map[int]int, len(t.runes))
	r := 0
	for i := range t.raw {
		m[i] = r
		r++
	}
	return m
}

func indexRunes(s, sub []rune, from int) int {
	if len(sub) == 0 {
		return -1
	}
outer:
	for i := from; i+len(sub) <= len(s); i++ {
		for j := range sub {
			if s[i+j] != sub[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}

func hasPrefixRunes(s, prefix []rune) bool {
	return len(prefix) <= len(s) && indexRunes(s[:len(prefix)], prefix, 0) == 0
}

func hasSuffixRunes(s, suffix []rune) bool {
	return len(suffix) <= len(s) && indexRunes(s[len(s)-len(suffix):], suffix, 0) == 0
}

func equalRunes(a, b []rune) bool {
	return len(a) == len(b) && (len(a) == 0 || indexRunes(a, b, 0) == 0)
}
