package domain

import "time"

// DefaultSearchLimit caps results when SearchOptions.Limit is unset.
// Zero means unbounded; the CLI and MCP surfaces apply this default.
const DefaultSearchLimit = 20

// SearchOptions configures a search query. The zero value searches
// every entity type with no filters and no limit.
type SearchOptions struct {
	// Types restricts the search universe to the given entity types.
	// Empty means all types.
	Types []EntityType

	// Filters narrows results by structured attributes.
	Filters SearchFilters

	// Limit is the maximum number of results. Zero or negative means
	// unbounded. Limit truncates the final sorted list only; it does
	// not affect scoring.
	Limit int
}

// SearchFilters is a structured predicate applied alongside text
// matching. Unset fields impose no constraint; set fields compose
// with AND semantics.
type SearchFilters struct {
	// Contexts is a set of context IDs; the entity's context must be
	// a member.
	Contexts []string

	// Priorities is a set of priority levels; the entity's priority
	// must be a member.
	Priorities []Priority

	// DateRange bounds the entity's relevant date, inclusive on both
	// ends.
	DateRange *DateRange
}

// DateRange is an inclusive time interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the range, inclusive.
func (r *DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// IsZero reports whether no filter field is set.
func (f *SearchFilters) IsZero() bool {
	return len(f.Contexts) == 0 && len(f.Priorities) == 0 && f.DateRange == nil
}

// Matches reports whether an entity's facets satisfy every set filter.
func (f *SearchFilters) Matches(facets Facets) bool {
	if len(f.Contexts) > 0 && !containsString(f.Contexts, facets.ContextID) {
		return false
	}
	if len(f.Priorities) > 0 && !containsPriority(f.Priorities, facets.Priority) {
		return false
	}
	if f.DateRange != nil {
		if facets.Due == nil || !f.DateRange.Contains(*facets.Due) {
			return false
		}
	}
	return true
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsPriority(set []Priority, v Priority) bool {
	for _, p := range set {
		if p == v {
			return true
		}
	}
	return false
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Type tags the matched entity's kind.
	Type EntityType

	// Entity is the matched entity.
	Entity Searchable

	// MatchedFields names the fields that matched, in field order.
	MatchedFields []string

	// Score is the relevance score. Lower is more relevant, and
	// scores are comparable across entity types.
	Score float64
}

// SuggestionKind tags the kind of a query suggestion.
type SuggestionKind string

// Available suggestion kinds.
const (
	SuggestionContext SuggestionKind = "context"
	SuggestionProject SuggestionKind = "project"
	SuggestionTag     SuggestionKind = "tag"
)

// Suggestion is a single query completion offered for a partial input.
type Suggestion struct {
	// Text is the prefixed completion ("@office", "#website", "+errand").
	Text string

	// Kind tags what the suggestion references.
	Kind SuggestionKind
}

// SuggestionData is the reference data suggestions are drawn from.
type SuggestionData struct {
	Contexts []Context
	Projects []Project
	Tags     []string
}

// MaxSuggestions caps the number of suggestions returned for a
// partial query.
const MaxSuggestions = 10
