// Package fuzzy adapts the sahilm/fuzzy subsequence matcher to the
// driven.Matcher port. It is the default matcher: fast, dependency
// light, and tolerant of skipped characters ("rprt" finds "report").
package fuzzy

import (
	sahilm "github.com/sahilm/fuzzy"

	"github.com/clearday-labs/nextact-cli/internal/core/ports/driven"
)

// Ensure Matcher implements the interface.
var _ driven.Matcher = (*Matcher)(nil)

// Matcher ranks corpus entries by fuzzy subsequence match quality.
type Matcher struct{}

// NewMatcher creates a fuzzy subsequence matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Rank implements driven.Matcher. Entries whose characters do not
// contain the query as a subsequence are omitted. Results come back
// best first.
func (m *Matcher) Rank(query string, corpus []string) []driven.Candidate {
	if query == "" || len(corpus) == 0 {
		return nil
	}

	matches := sahilm.Find(query, corpus)

	candidates := make([]driven.Candidate, 0, len(matches))
	for _, match := range matches {
		candidates = append(candidates, driven.Candidate{
			Index: match.Index,
			Score: normalize(match.Score),
		})
	}
	return candidates
}

// normalize maps the library's unbounded higher-is-better score onto
// [0, 1) lower-is-better, preserving order. Zero maps to 0.5, strong
// matches approach 0, penalised matches approach 1.
func normalize(score int) float64 {
	s := float64(score)
	if s >= 0 {
		return 1 / (2 + s)
	}
	return 1 - 1/(2-s)
}
