package services

import (
	"regexp"
	"strings"
)

// Highlight markers wrapped around matched substrings.
const (
	MarkStart = "<mark>"
	MarkEnd   = "</mark>"
)

// HighlightMatches wraps every case-insensitive occurrence of the
// query's whitespace-separated terms within text in highlight markers.
// Terms are matched verbatim: regex metacharacters in the query (and
// any punctuation) are escaped first. Overlapping term matches are
// merged before wrapping, so the output never contains nested or
// mismatched markers. An empty query returns text unchanged.
func HighlightMatches(text, query string) string {
	terms := strings.Fields(query)
	if len(terms) == 0 || text == "" {
		return text
	}

	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}

	re, err := regexp.Compile("(?i)" + strings.Join(quoted, "|"))
	if err != nil {
		// Quoted alternation should always compile; fall back to the
		// unmarked text rather than corrupting output.
		return text
	}

	ranges := mergeRanges(re.FindAllStringIndex(text, -1))
	if len(ranges) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(ranges)*(len(MarkStart)+len(MarkEnd)))

	last := 0
	for _, r := range ranges {
		b.WriteString(text[last:r[0]])
		b.WriteString(MarkStart)
		b.WriteString(text[r[0]:r[1]])
		b.WriteString(MarkEnd)
		last = r[1]
	}
	b.WriteString(text[last:])

	return b.String()
}

// mergeRanges collapses overlapping or adjacent [start, end) ranges.
// FindAllStringIndex returns non-overlapping ranges in order, but
// merging also guards adjacent matches against marker soup.
func mergeRanges(ranges [][]int) [][]int {
	if len(ranges) < 2 {
		return ranges
	}

	merged := make([][]int, 0, len(ranges))
	current := ranges[0]
	for _, r := range ranges[1:] {
		if r[0] <= current[1] {
			if r[1] > current[1] {
				current[1] = r[1]
			}
			continue
		}
		merged = append(merged, current)
		current = r
	}
	merged = append(merged, current)

	return merged
}

// Highlight implements the driving port by delegating to
// HighlightMatches.
func (s *SearchService) Highlight(text, query string) string {
	return HighlightMatches(text, query)
}
