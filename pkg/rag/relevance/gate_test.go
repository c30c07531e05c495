package relevance

import (
	"reflect"
	"strings"
	"testing"
)

func TestKeywords(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"basic", "Apa itu stunting?", []string{"apa", "itu", "stunting"}},
		{"short tokens dropped", "di ke stunting", []string{"stunting"}},
		{"punctuation stripped", "gizi, buruk! (balita)", []string{"gizi", "buruk", "balita"}},
		{"deduplicated", "gizi gizi GIZI", []string{"gizi"}},
		{"empty", "", nil},
		{"only short tokens", "a di ke", nil},
		{"multi-byte short token dropped", "éé stunting", []string{"stunting"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Keywords(tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keywords(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	gate := NewGate(50, 1)

	longContext := strings.Repeat("informasi umum tentang kesehatan masyarakat. ", 3)

	tests := []struct {
		name         string
		query        string
		context      string
		wantRelevant bool
		wantReason   string
	}{
		{
			name:         "empty context",
			query:        "apa itu stunting?",
			context:      "",
			wantRelevant: false,
			wantReason:   ReasonEmptyContext,
		},
		{
			name:         "context below floor",
			query:        "apa itu stunting?",
			context:      "stunting adalah",
			wantRelevant: false,
			wantReason:   ReasonContextTooThin,
		},
		{
			name:         "keyword overlap",
			query:        "apa itu stunting?",
			context:      "Stunting adalah kondisi gagal tumbuh pada anak akibat kekurangan gizi kronis.",
			wantRelevant: true,
			wantReason:   ReasonOverlap,
		},
		{
			name:         "no overlap",
			query:        "siapa presiden?",
			context:      longContext,
			wantRelevant: false,
			wantReason:   ReasonNoOverlap,
		},
		{
			name:         "no extractable keywords",
			query:        "a di ke",
			context:      longContext,
			wantRelevant: false,
			wantReason:   ReasonNoOverlap,
		},
		{
			name:         "substring matches morphological variant",
			query:        "pencegahan gizi buruk",
			context:      "Panduan lengkap mengenai gizi seimbang untuk keluarga dan masyarakat luas di Indonesia.",
			wantRelevant: true,
			wantReason:   ReasonOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gate.Check(tt.query, tt.context)
			if got.Relevant != tt.wantRelevant {
				t.Errorf("Relevant = %v, want %v", got.Relevant, tt.wantRelevant)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestCheckSampleWindowCapsMatching(t *testing.T) {
	gate := NewGate(50, 1)

	// The only matching keyword sits past the 1000-char sample window.
	padding := strings.Repeat("x", 1100)
	context := padding + " stunting"

	got := gate.Check("apa itu stunting?", context)
	if got.Relevant {
		t.Error("keyword beyond the sample window should not count")
	}
}

func TestCheckCountsRunesNotBytes(t *testing.T) {
	gate := NewGate(50, 1)

	// 49 runes but 98 bytes; the floor counts runes, so this is too thin.
	thin := strings.Repeat("é", 49)
	got := gate.Check("apa itu stunting?", thin)
	if got.Reason != ReasonContextTooThin {
		t.Errorf("Reason = %q, want %q", got.Reason, ReasonContextTooThin)
	}

	// The keyword sits past 1000 bytes but inside the first 1000 runes,
	// so the sample window must still cover it.
	padding := strings.Repeat("é", 990)
	got = gate.Check("apa itu stunting?", padding+" stunting")
	if !got.Relevant {
		t.Error("keyword within the rune-counted sample window should count")
	}
}

func TestCheckMinOverlapThreshold(t *testing.T) {
	gate := NewGate(50, 2)

	context := "Stunting adalah kondisi gagal tumbuh yang disebabkan oleh kekurangan gizi kronis."

	// Only one keyword ("stunting") matches; threshold is two.
	got := gate.Check("dampak stunting ekonomi", context)
	if got.Relevant {
		t.Error("single keyword match should not pass a two-keyword threshold")
	}

	// Two keywords match.
	got = gate.Check("stunting gizi", context)
	if !got.Relevant {
		t.Error("two keyword matches should pass a two-keyword threshold")
	}
}
