package driving

import (
	"context"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// InitializeIndexes builds every index from scratch out of the
	// given collections. Synchronous and total: empty collections
	// are valid.
	InitializeIndexes(collections domain.Collections)

	// UpdateIndex rebuilds one type's index wholesale from the given
	// items. There is no partial-update mode; callers re-supply the
	// full collection whenever any item changes. Unknown types are
	// logged and ignored.
	UpdateIndex(t domain.EntityType, items []domain.Searchable)

	// Search executes a fuzzy query against the indexes. Non-empty
	// queries are always recorded in search history; empty or
	// whitespace-only queries short-circuit to an empty result list
	// before history recording. No match is not an error. The
	// returned error is reserved for future use and is always nil
	// today.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// Suggest produces up to domain.MaxSuggestions completions for a
	// partial query, drawn from contexts, projects and tags.
	Suggest(partial string, data domain.SuggestionData) []domain.Suggestion

	// Highlight wraps case-insensitive occurrences of the query's
	// terms within text in <mark> markers. Empty queries return the
	// text unchanged.
	Highlight(text, query string) string
}
