package search

import (
	"reflect"
	"testing"
)

func TestMatch(t *testing.T) {
	opts := DefaultMatchOptions()

	tests := []struct {
		name      string
		query     string
		text      string
		opts      MatchOptions
		wantOK    bool
		wantScore float64
		wantSpans []Span
	}{
		{
			name:   "empty query matches everything",
			query:  "",
			text:   "anything",
			opts:   opts,
			wantOK: true,
		},
		{
			name:      "exact substring",
			query:     "insta",
			text:      "Install Guide",
			opts:      opts,
			wantOK:    true,
			wantSpans: []Span{{Start: 0, End: 5}},
		},
		{
			name:      "case insensitive anywhere in text",
			query:     "GUIDE",
			text:      "install guide",
			opts:      opts,
			wantOK:    true,
			wantSpans: []Span{{Start: 8, End: 13}},
		},
		{
			name:      "every exact occurrence is a span",
			query:     "ab",
			text:      "ab-ab",
			opts:      opts,
			wantOK:    true,
			wantSpans: []Span{{Start: 0, End: 2}, {Start: 3, End: 5}},
		},
		{
			name:      "transposition",
			query:     "isntall",
			text:      "Install",
			opts:      opts,
			wantOK:    true,
			wantScore: 1.0 / 7,
			wantSpans: []Span{{Start: 0, End: 7}},
		},
		{
			name:   "transposition rejected at threshold zero",
			query:  "isntall",
			text:   "Install",
			opts:   MatchOptions{Threshold: 0},
			wantOK: false,
		},
		{
			name:   "too many errors",
			query:  "xyz",
			text:   "Install",
			opts:   opts,
			wantOK: false,
		},
		{
			name:   "empty text never matches",
			query:  "a",
			text:   "",
			opts:   MatchOptions{Threshold: 1},
			wantOK: false,
		},
		{
			name:      "markup characters are plain text",
			query:     "<b>",
			text:      "use <b> tags",
			opts:      opts,
			wantOK:    true,
			wantSpans: []Span{{Start: 4, End: 7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Match(tt.query, tt.text, tt.opts)
			if ok != tt.wantOK {
				t.Fatalf("Match(%q, %q) ok = %v, want %v", tt.query, tt.text, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", got.Score, tt.wantScore)
			}
			if !reflect.DeepEqual(got.Spans, tt.wantSpans) {
				t.Errorf("spans = %v, want %v", got.Spans, tt.wantSpans)
			}
		})
	}
}

func TestMatchMissingCharacter(t *testing.T) {
	got, ok := Match("instll", "install", DefaultMatchOptions())
	if !ok {
		t.Fatal("expected a match with one missing character")
	}
	if got.Score != 1.0/6 {
		t.Errorf("score = %v, want %v", got.Score, 1.0/6)
	}
	best, ok := BestSpan(got.Spans)
	if !ok || best != (Span{Start: 0, End: 4}) {
		t.Errorf("best span = %v, want [0,4)", best)
	}
}

func TestMatchThresholdIsMonotonic(t *testing.T) {
	texts := []string{"Install Guide", "Quickstart", "instructions", "stall", "tails", ""}
	queries := []string{"insta", "isntall", "qiuck", "tail", "zzz"}
	thresholds := []float64{0, 0.1, 0.2, 0.4, 0.6, 0.8, 1}

	for _, q := range queries {
		for _, text := range texts {
			matched := false
			for _, th := range thresholds {
				_, ok := Match(q, text, MatchOptions{Threshold: th})
				if matched && !ok {
					t.Errorf("%q vs %q: matched below threshold %v but not at it", q, text, th)
				}
				matched = matched || ok
			}
		}
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	first, _ := Match("hedaer", "a header and another header", DefaultMatchOptions())
	for i := 0; i < 10; i++ {
		again, _ := Match("hedaer", "a header and another header", DefaultMatchOptions())
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, again, first)
		}
	}
}

func TestMatchMinMatchCharLength(t *testing.T) {
	opts := MatchOptions{Threshold: 1, MinMatchCharLength: 3}
	if _, ok := Match("axbxc", "a-b-c", opts); ok {
		t.Error("single character runs should be dropped")
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"", AlgorithmApprox, false},
		{"approx", AlgorithmApprox, false},
		{" Subsequence ", AlgorithmSubsequence, false},
		{"bitap", "", true},
	}
	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAlgorithm(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
