package driving

import (
	"context"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
)

// HistoryService manages recorded search queries.
type HistoryService interface {
	// Record notes that a query was issued and how many results it
	// returned. Repeating a query updates its entry in place.
	// Persistence failures are logged, never surfaced.
	Record(ctx context.Context, query string, resultCount int)

	// History returns all entries, newest first.
	History() []domain.HistoryEntry

	// Remove deletes the exact-match entry if present; no-op otherwise.
	Remove(ctx context.Context, query string)

	// Clear empties the history.
	Clear(ctx context.Context)

	// Popular returns up to n distinct queries ranked by issue count
	// descending, ties broken by recency.
	Popular(n int) []domain.PopularQuery
}
