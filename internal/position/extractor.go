// Package position extracts options positions and price-range targets from post bodies.
package position

import "github.com/wonny/vulture/internal/contracts"

// Extractor applies an ordered pattern set to a body
// ⭐ SSOT: 본문 → 포지션 추출은 여기서만
type Extractor struct {
	patterns []Pattern
}

// NewExtractor creates an extractor with the default patterns
func NewExtractor() *Extractor {
	return NewExtractorWithPatterns(DefaultPatterns()...)
}

// NewExtractorWithPatterns creates an extractor with explicit patterns
func NewExtractorWithPatterns(patterns ...Pattern) *Extractor {
	return &Extractor{patterns: patterns}
}

// Extract returns all statements found in body: pattern by pattern in
// declaration order, text order within a pattern. Repeated statements are kept.
// No match yields an empty result, never an error.
func (e *Extractor) Extract(body string) []contracts.Statement {
	text := normalize(body)

	out := make([]contracts.Statement, 0)
	for _, p := range e.patterns {
		out = append(out, p.Find(text)...)
	}
	return out
}
