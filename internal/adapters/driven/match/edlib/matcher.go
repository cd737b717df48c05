// Package edlib adapts the hbollon/go-edlib string-distance library
// to the driven.Matcher port. Unlike the default subsequence matcher
// it scores whole-string similarity, which suits short fields and
// catches transposition typos ("reprot" finds "report").
package edlib

import (
	"sort"
	"strings"

	goedlib "github.com/hbollon/go-edlib"

	"github.com/clearday-labs/nextact-cli/internal/core/ports/driven"
	"github.com/clearday-labs/nextact-cli/internal/logger"
)

// Ensure Matcher implements the interface.
var _ driven.Matcher = (*Matcher)(nil)

// DefaultMinSimilarity is the similarity threshold below which an
// entry is not considered a match.
const DefaultMinSimilarity = 0.6

// Matcher ranks corpus entries by edit-distance similarity. The best
// similarity of any whitespace token in the entry counts, so a typo'd
// word still matches inside a longer text.
type Matcher struct {
	algorithm     goedlib.Algorithm
	minSimilarity float64
}

// NewMatcher creates a matcher using Jaro-Winkler similarity, which
// favours matching prefixes and works well for query typos.
func NewMatcher() *Matcher {
	return &Matcher{
		algorithm:     goedlib.JaroWinkler,
		minSimilarity: DefaultMinSimilarity,
	}
}

// NewLevenshteinMatcher creates a matcher using normalised
// Levenshtein similarity.
func NewLevenshteinMatcher() *Matcher {
	return &Matcher{
		algorithm:     goedlib.Levenshtein,
		minSimilarity: DefaultMinSimilarity,
	}
}

// Rank implements driven.Matcher.
func (m *Matcher) Rank(query string, corpus []string) []driven.Candidate {
	query = strings.ToLower(query)
	if query == "" || len(corpus) == 0 {
		return nil
	}

	var candidates []driven.Candidate
	for i, entry := range corpus {
		sim := m.similarity(query, strings.ToLower(entry))
		if sim < m.minSimilarity {
			continue
		}
		// Clamp so a perfect match still scores inside [0, 1).
		score := 1 - sim
		if score < 0 {
			score = 0
		}
		candidates = append(candidates, driven.Candidate{Index: i, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score < candidates[j].Score
	})
	return candidates
}

// similarity returns the best per-token similarity of query against
// the entry's whitespace tokens, or against the whole entry when it
// is a single token.
func (m *Matcher) similarity(query, entry string) float64 {
	best := 0.0
	for _, token := range strings.Fields(entry) {
		sim, err := goedlib.StringsSimilarity(query, token, m.algorithm)
		if err != nil {
			logger.Debug("Similarity failed for %q: %v", token, err)
			continue
		}
		if float64(sim) > best {
			best = float64(sim)
		}
	}
	return best
}
