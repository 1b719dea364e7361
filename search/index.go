package search

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultLimit bounds a result set when the caller gives no usable limit.
	DefaultLimit = 5
	// IndexLimit is the limit used by title-only directory listings.
	IndexLimit = 15
	// MaxLimit caps user supplied limits.
	MaxLimit = 100

	// minFieldScore stands in for a perfect field score so that weights
	// still separate perfect matches in different fields.
	minFieldScore = 0.001
)

// ErrNegativeWeight is returned by BuildIndex for weights below zero.
var ErrNegativeWeight = errors.New("field weight must not be negative")

// FieldMatch is one matched value of a field. Multi-valued fields produce
// one FieldMatch per matching sub-value.
type FieldMatch struct {
	Field      Field   `json:"field"`
	Value      string  `json:"value"`
	ValueIndex int     `json:"value_index"`
	Score      float64 `json:"score"`
	Spans      []Span  `json:"spans,omitempty"`
}

// Result is a ranked unit.
type Result struct {
	Unit    *Unit        `json:"unit"`
	Index   int          `json:"index"`
	Score   float64      `json:"score"`
	Matches []FieldMatch `json:"matches,omitempty"`
}

// IndexOptions configures BuildIndex.
type IndexOptions struct {
	Match          MatchOptions
	ExtendedSearch bool
	// IgnoreFieldNorm stops short values from outranking long ones.
	IgnoreFieldNorm bool
}

// IndexOption mutates IndexOptions.
type IndexOption func(*IndexOptions)

// WithThreshold sets the similarity threshold.
func WithThreshold(t float64) IndexOption {
	return func(o *IndexOptions) { o.Match.Threshold = t }
}

// WithAlgorithm selects the fuzzy algorithm.
func WithAlgorithm(a Algorithm) IndexOption {
	return func(o *IndexOptions) { o.Match.Algorithm = a }
}

// WithMinMatchCharLength drops highlight runs shorter than n runes.
func WithMinMatchCharLength(n int) IndexOption {
	return func(o *IndexOptions) { o.Match.MinMatchCharLength = n }
}

// WithExtendedSearch enables the operator syntax documented on Query.
func WithExtendedSearch(on bool) IndexOption {
	return func(o *IndexOptions) { o.ExtendedSearch = on }
}

// WithIgnoreFieldNorm disables the field length norm.
func WithIgnoreFieldNorm(on bool) IndexOption {
	return func(o *IndexOptions) { o.IgnoreFieldNorm = on }
}

type value struct {
	text *text
	norm float64
}

type field struct {
	name   Field
	weight float64
	values []value
}

// Index holds prepared units. It is never modified after BuildIndex, so any
// number of goroutines may search it.
type Index struct {
	units   []Unit
	fields  [][]field
	weights Weights
	opts    IndexOptions
}

// BuildIndex prepares units for searching with the given field weights.
func BuildIndex(units []Unit, weights Weights, opts ...IndexOption) (*Index, error) {
	o := IndexOptions{Match: DefaultMatchOptions()}
	for _, opt := range opts {
		opt(&o)
	}
	o.Match = o.Match.normalized()

	for f, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("%w: %s=%v", ErrNegativeWeight, f, w)
		}
	}
	active, total := weights.active()

	idx := &Index{
		units:   make([]Unit, len(units)),
		fields:  make([][]field, len(units)),
		weights: make(Weights, len(weights)),
		opts:    o,
	}
	for f, w := range weights {
		idx.weights[f] = w
	}
	for i := range units {
		idx.units[i] = units[i].clone()
		u := &idx.units[i]
		for _, name := range active {
			vals := u.Values(name)
			if len(vals) == 0 {
				continue
			}
			fd := field{name: name, weight: weights[name] / total}
			for _, v := range vals {
				fd.values = append(fd.values, value{text: prepare(v), norm: fieldNorm(v)})
			}
			idx.fields[i] = append(idx.fields[i], fd)
		}
	}
	return idx, nil
}

// fieldNorm favours short values: 1/sqrt(number of words).
func fieldNorm(s string) float64 {
	n := len(strings.Fields(s))
	if n == 0 {
		return 1
	}
	return math.Round(1000/math.Sqrt(float64(n))) / 1000
}

// Len is the number of indexed units.
func (idx *Index) Len() int {
	return len(idx.units)
}

// Unit returns the i-th indexed unit.
func (idx *Index) Unit(i int) *Unit {
	return &idx.units[i]
}

// Lookup finds a unit by key.
func (idx *Index) Lookup(key string) (*Unit, bool) {
	for i := range idx.units {
		if idx.units[i].Key == key {
			return &idx.units[i], true
		}
	}
	return nil, false
}

// Options returns the options the index was built with.
func (idx *Index) Options() IndexOptions {
	return idx.opts
}

// Weights returns a copy of the field weights.
func (idx *Index) Weights() Weights {
	w := make(Weights, len(idx.weights))
	for f, v := range idx.weights {
		w[f] = v
	}
	return w
}

// Search ranks units against query and returns at most limit results,
// best first. An empty query lists the first limit units in index order.
func (idx *Index) Search(query string, limit int) []Result {
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := Compile(query, idx.opts.Match, idx.opts.ExtendedSearch)
	if q.Empty() {
		n := min(limit, len(idx.units))
		out := make([]Result, n)
		for i := 0; i < n; i++ {
			out[i] = Result{Unit: &idx.units[i], Index: i}
		}
		return out
	}

	out := []Result{}
	for i := range idx.units {
		if r, ok := idx.score(q, i); ok {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		return out[i].Index < out[j].Index
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// score combines field scores as a weighted sum in log space:
// Π max(s_f, ε)^(w_f·norm_f). Fields that do not match contribute nothing.
func (idx *Index) score(q *Query, i int) (Result, bool) {
	res := Result{Unit: &idx.units[i], Index: i, Score: 1}
	matched := false
	for _, fd := range idx.fields[i] {
		best := -1.0
		var bestNorm float64
		for vi, v := range fd.values {
			m, ok := q.matchText(v.text)
			if !ok {
				continue
			}
			res.Matches = append(res.Matches, FieldMatch{
				Field:      fd.name,
				Value:      v.text.raw,
				ValueIndex: vi,
				Score:      m.Score,
				Spans:      m.Spans,
			})
			if best < 0 || m.Score < best {
				best, bestNorm = m.Score, v.norm
			}
		}
		if best < 0 {
			continue
		}
		matched = true
		exp := fd.weight
		if !idx.opts.IgnoreFieldNorm {
			exp *= bestNorm
		}
		res.Score *= math.Pow(clampScore(best), exp)
	}
	return res, matched
}

func clampScore(s float64) float64 {
	if s < minFieldScore {
		return minFieldScore
	}
	if s > 1-minFieldScore {
		return 1 - minFieldScore
	}
	return s
}

// NormalizeLimit parses a user supplied limit, falling back to def for
// anything non-numeric or outside 1..MaxLimit.
func NormalizeLimit(raw string, def int) int {
	if def <= 0 || def > MaxLimit {
		def = DefaultLimit
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > MaxLimit {
		return def
	}
	return n
}
