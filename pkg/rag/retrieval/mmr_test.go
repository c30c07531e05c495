package retrieval

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"length mismatch", []float32{1, 0}, []float32{1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMMRPicksMostRelevantFirst(t *testing.T) {
	query := []float32{1, 0}
	entries := []IndexEntry{
		{SourceID: "far", Vector: []float32{0, 1}},
		{SourceID: "near", Vector: []float32{1, 0}},
		{SourceID: "mid", Vector: []float32{0.7, 0.7}},
	}

	selected := maximalMarginalRelevance(query, entries, 1, 0.7)

	if len(selected) != 1 {
		t.Fatalf("expected 1 selection, got %d", len(selected))
	}
	if entries[selected[0]].SourceID != "near" {
		t.Errorf("expected nearest entry first, got %s", entries[selected[0]].SourceID)
	}
}

func TestMMRPrefersDiversity(t *testing.T) {
	query := []float32{1, 0}
	entries := []IndexEntry{
		{SourceID: "a", Vector: []float32{1, 0}},
		{SourceID: "a-dup", Vector: []float32{0.95, 0.05}},
		{SourceID: "b", Vector: []float32{0.6, 0.8}},
	}

	// With strong diversity weighting the near-duplicate of the first
	// pick loses to the distinct entry.
	selected := maximalMarginalRelevance(query, entries, 2, 0.3)

	if len(selected) != 2 {
		t.Fatalf("expected 2 selections, got %d", len(selected))
	}
	if entries[selected[0]].SourceID != "a" {
		t.Errorf("expected a first, got %s", entries[selected[0]].SourceID)
	}
	if entries[selected[1]].SourceID != "b" {
		t.Errorf("expected diverse pick second, got %s", entries[selected[1]].SourceID)
	}
}

func TestMMRTiedCandidatesAreStable(t *testing.T) {
	query := []float32{1, 0}
	entries := []IndexEntry{
		{SourceID: "dup-0", Vector: []float32{1, 0}},
		{SourceID: "dup-1", Vector: []float32{1, 0}},
		{SourceID: "dup-2", Vector: []float32{1, 0}},
		{SourceID: "dup-3", Vector: []float32{1, 0}},
		{SourceID: "dup-4", Vector: []float32{1, 0}},
	}

	// Identical vectors tie on every score. Lowest index must win each
	// round, on every run.
	first := maximalMarginalRelevance(query, entries, 3, 0.7)
	if len(first) != 3 {
		t.Fatalf("expected 3 selections, got %d", len(first))
	}
	for i, idx := range first {
		if idx != i {
			t.Fatalf("tied candidates should select lowest index first, got %v", first)
		}
	}

	for run := 0; run < 200; run++ {
		got := maximalMarginalRelevance(query, entries, 3, 0.7)
		if len(got) != len(first) {
			t.Fatalf("run %d selected %d entries, first run selected %d", run, len(got), len(first))
		}
		for i := range got {
			if got[i] != first[i] {
				t.Fatalf("run %d selected %v, first run selected %v", run, got, first)
			}
		}
	}
}

func TestMMRBounds(t *testing.T) {
	query := []float32{1, 0}
	entries := []IndexEntry{
		{SourceID: "a", Vector: []float32{1, 0}},
		{SourceID: "b", Vector: []float32{0, 1}},
	}

	if got := maximalMarginalRelevance(query, entries, 0, 0.7); got != nil {
		t.Errorf("k=0 should select nothing, got %v", got)
	}
	if got := maximalMarginalRelevance(query, nil, 3, 0.7); got != nil {
		t.Errorf("no entries should select nothing, got %v", got)
	}
	if got := maximalMarginalRelevance(query, entries, 10, 0.7); len(got) != 2 {
		t.Errorf("k beyond entries should select all, got %d", len(got))
	}
}

func TestJoinPassages(t *testing.T) {
	passages := []Passage{
		{Text: "first chunk"},
		{Text: "second chunk"},
	}

	got := JoinPassages(passages)
	want := "first chunk\n\nsecond chunk"
	if got != want {
		t.Errorf("JoinPassages = %q, want %q", got, want)
	}

	if got := JoinPassages(nil); got != "" {
		t.Errorf("empty passages should join to empty string, got %q", got)
	}
}
