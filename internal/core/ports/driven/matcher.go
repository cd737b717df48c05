package driven

// Candidate is a corpus entry matched against a query.
type Candidate struct {
	// Index is the entry's position in the corpus passed to Rank.
	Index int

	// Score is the match quality in [0, 1). Lower is better. Scores
	// from different Matcher implementations are comparable only with
	// themselves.
	Score float64
}

// Matcher provides approximate string matching. It abstracts the
// fuzzy algorithm so the query engine's contract does not depend on
// a specific library.
type Matcher interface {
	// Rank matches every corpus entry against the query and returns
	// the entries that match within the matcher's tolerance, best
	// first. Entries that do not match are omitted.
	Rank(query string, corpus []string) []Candidate
}
