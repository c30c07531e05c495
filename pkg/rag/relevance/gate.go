// Package relevance decides whether retrieved context is worth answering
// from, using a cheap keyword-overlap check instead of another model call.
package relevance

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Decision reasons, attached so pipeline logs explain every refusal.
const (
	ReasonEmptyContext   = "empty_context"
	ReasonContextTooThin = "context_too_thin"
	ReasonNoOverlap      = "no_keyword_overlap"
	ReasonOverlap        = "keyword_overlap"
)

type Decision struct {
	Relevant bool
	Reason   string
}

// Gate checks whether the context plausibly covers the query. It is a pure
// function of its inputs; the thresholds are tunable defaults.
type Gate struct {
	minContextLen int
	minOverlap    int
	sampleLen     int
}

func NewGate(minContextLen, minOverlap int) *Gate {
	return &Gate{
		minContextLen: minContextLen,
		minOverlap:    minOverlap,
		sampleLen:     1000,
	}
}

func (g *Gate) Check(query, context string) Decision {
	if context == "" {
		return Decision{Relevant: false, Reason: ReasonEmptyContext}
	}
	if utf8.RuneCountInString(context) < g.minContextLen {
		return Decision{Relevant: false, Reason: ReasonContextTooThin}
	}

	keywords := Keywords(query)

	// Lengths count runes, not bytes, so multi-byte text is measured and
	// sampled the same as ASCII.
	sample := strings.ToLower(context)
	if runes := []rune(sample); len(runes) > g.sampleLen {
		sample = string(runes[:g.sampleLen])
	}

	overlap := 0
	for _, kw := range keywords {
		if strings.Contains(sample, kw) {
			overlap++
		}
	}

	if overlap >= g.minOverlap {
		return Decision{Relevant: true, Reason: ReasonOverlap}
	}
	return Decision{Relevant: false, Reason: ReasonNoOverlap}
}

// Keywords lowercases the query, strips punctuation, and returns the
// deduplicated tokens longer than two characters, in first-seen order.
func Keywords(query string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, query)

	seen := make(map[string]bool)
	var keywords []string
	for _, token := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(token) <= 2 || seen[token] {
			continue
		}
		seen[token] = true
		keywords = append(keywords, token)
	}
	return keywords
}
