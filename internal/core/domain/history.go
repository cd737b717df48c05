package domain

import "time"

// HistoryCap is the maximum number of retained history entries.
// Oldest entries (by timestamp) are evicted first beyond the cap.
const HistoryCap = 50

// HistoryEntry is a recorded past search query. The history set holds
// at most one entry per distinct query text; repeating a query updates
// the entry in place and increments Hits.
type HistoryEntry struct {
	// Query is the trimmed, non-empty query text. Exact (case-sensitive)
	// query text is the dedup key.
	Query string `json:"query"`

	// Timestamp is when the query was last issued.
	Timestamp time.Time `json:"timestamp"`

	// ResultCount is the number of results at the time of the last
	// search for this query.
	ResultCount int `json:"result_count"`

	// Hits counts how many times the query has been issued. Dedup
	// overwrites entries, so popularity must be tracked here rather
	// than by presence.
	Hits int `json:"hits"`
}

// PopularQuery pairs a query with its issue count for popularity
// ranking.
type PopularQuery struct {
	// Query is the query text.
	Query string `json:"query"`

	// Count is how many times the query has been issued.
	Count int `json:"count"`
}
