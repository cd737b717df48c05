package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driven"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driving"
	"github.com/clearday-labs/nextact-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Score bands. Within a band the score varies by field rank and match
// position; the bands are disjoint so an exact whole-query match always
// outranks a token match, which always outranks a fuzzy match.
const (
	bandExact = 0.0
	bandToken = 10.0
	bandFuzzy = 100.0
)

// indexedField is one pre-extracted searchable text field.
type indexedField struct {
	name  string
	text  string
	lower string
}

// indexEntry is one entity's slot in a type index.
type indexEntry struct {
	id     string
	entity domain.Searchable
	facets domain.Facets
	fields []indexedField
}

// typeIndex holds the index for a single entity type. Entries keep
// the original collection order, which is the tie-break order for
// equal scores.
type typeIndex struct {
	entries []indexEntry
}

// SearchService indexes task entities and executes fuzzy queries
// against them. It is constructed once by the composition root and
// shared by reference; there is no hidden module-level instance.
type SearchService struct {
	matcher driven.Matcher
	history driving.HistoryService

	mu      sync.RWMutex
	indexes map[domain.EntityType]*typeIndex
}

// NewSearchService creates a new search service.
// The matcher and history parameters are optional (can be nil):
// without a matcher, search degrades to exact matching only; without
// a history service, queries are not recorded.
func NewSearchService(matcher driven.Matcher, history driving.HistoryService) *SearchService {
	return &SearchService{
		matcher: matcher,
		history: history,
		indexes: make(map[domain.EntityType]*typeIndex),
	}
}

// InitializeIndexes builds every index from scratch out of the given
// collections.
func (s *SearchService) InitializeIndexes(collections domain.Collections) {
	logger.Section("Index Initialisation")

	fresh := make(map[domain.EntityType]*typeIndex, len(domain.EntityTypes()))
	for _, t := range domain.EntityTypes() {
		fresh[t] = buildTypeIndex(collections.ByType(t))
		logger.Debug("Indexed %d %s entities", len(fresh[t].entries), t)
	}

	s.mu.Lock()
	s.indexes = fresh
	s.mu.Unlock()
}

// UpdateIndex rebuilds one type's index wholesale from the given items.
// Unknown types are logged and ignored; they must not crash the caller.
func (s *SearchService) UpdateIndex(t domain.EntityType, items []domain.Searchable) {
	if !t.IsValid() {
		logger.Warn("UpdateIndex: %v: %q", domain.ErrUnknownEntityType, t)
		return
	}

	idx := buildTypeIndex(items)

	s.mu.Lock()
	s.indexes[t] = idx
	s.mu.Unlock()

	logger.Debug("Reindexed %d %s entities", len(idx.entries), t)
}

// buildTypeIndex extracts searchable fields and facets for every item.
func buildTypeIndex(items []domain.Searchable) *typeIndex {
	idx := &typeIndex{entries: make([]indexEntry, 0, len(items))}
	for _, item := range items {
		raw := item.SearchFields()
		fields := make([]indexedField, 0, len(raw))
		for _, f := range raw {
			fields = append(fields, indexedField{
				name:  f.Name,
				text:  f.Text,
				lower: strings.ToLower(f.Text),
			})
		}
		idx.entries = append(idx.entries, indexEntry{
			id:     item.EntityID(),
			entity: item,
			facets: item.Facets(),
			fields: fields,
		})
	}
	return idx
}

// Search executes a fuzzy query against the indexes.
//
// Recording the query in history is part of the contract, not a hidden
// side effect: every non-empty query is recorded with its result count.
// Empty or whitespace-only queries short-circuit to an empty result
// list before history recording.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	// Return empty for empty query. A filter-only search with empty
	// text also returns nothing; filters narrow text matches, they do
	// not replace them.
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	types := s.requestedTypes(opts.Types)
	logger.Debug("Types: %v, Limit: %d", types, opts.Limit)

	s.mu.RLock()
	results := s.match(query, types, &opts.Filters)
	s.mu.RUnlock()

	// Stable sort: equal scores keep canonical type order, then the
	// original collection order within a type.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	logger.Info("Results: %d", len(results))

	if s.history != nil {
		s.history.Record(ctx, query, len(results))
	}

	return results, nil
}

// requestedTypes resolves the searched type set in canonical order.
// Unknown requested types are dropped with a warning.
func (s *SearchService) requestedTypes(requested []domain.EntityType) []domain.EntityType {
	if len(requested) == 0 {
		return domain.EntityTypes()
	}

	want := make(map[domain.EntityType]bool, len(requested))
	for _, t := range requested {
		if !t.IsValid() {
			logger.Warn("Search: %v: %q", domain.ErrUnknownEntityType, t)
			continue
		}
		want[t] = true
	}

	types := make([]domain.EntityType, 0, len(want))
	for _, t := range domain.EntityTypes() {
		if want[t] {
			types = append(types, t)
		}
	}
	return types
}

// fieldRef locates a field within the accumulating candidate set, for
// resolving fuzzy matches back onto their entries.
type fieldRef struct {
	result int // index into candidates
	field  int // field rank on the entity
}

// candidate accumulates per-field scores for one entity before it is
// turned into a SearchResult.
type candidate struct {
	entry  *indexEntry
	typ    domain.EntityType
	scores []float64 // one per field; negative = no match
}

// match scores every filtered entry of the requested types against the
// query. Caller holds the read lock.
func (s *SearchService) match(
	query string, types []domain.EntityType, filters *domain.SearchFilters,
) []domain.SearchResult {
	lowerQuery := strings.ToLower(query)
	tokens := strings.Fields(lowerQuery)

	var candidates []candidate
	var fuzzyCorpus []string
	var fuzzyRefs []fieldRef

	for _, t := range types {
		idx := s.indexes[t]
		if idx == nil {
			continue
		}

		for i := range idx.entries {
			entry := &idx.entries[i]
			if !filters.IsZero() && !filters.Matches(entry.facets) {
				continue
			}

			cand := candidate{
				entry:  entry,
				typ:    t,
				scores: make([]float64, len(entry.fields)),
			}
			for f := range entry.fields {
				cand.scores[f] = -1
			}

			queued := false
			for f, field := range entry.fields {
				if field.text == "" {
					continue
				}

				if pos := strings.Index(field.lower, lowerQuery); pos >= 0 {
					cand.scores[f] = bandExact + float64(f) + posFraction(pos, len(field.lower))
					continue
				}

				if len(tokens) > 1 && allTokensContained(field.lower, tokens) {
					cand.scores[f] = bandToken + float64(f)
					continue
				}

				if s.matcher != nil {
					fuzzyCorpus = append(fuzzyCorpus, field.text)
					fuzzyRefs = append(fuzzyRefs, fieldRef{result: len(candidates), field: f})
					queued = true
				}
			}

			if queued || hasMatch(cand.scores) {
				candidates = append(candidates, cand)
			}
		}
	}

	// One matcher pass over every unresolved field.
	if len(fuzzyCorpus) > 0 {
		for _, m := range s.matcher.Rank(query, fuzzyCorpus) {
			ref := fuzzyRefs[m.Index]
			cand := &candidates[ref.result]
			cand.scores[ref.field] = bandFuzzy + float64(ref.field) + m.Score
		}
	}

	results := make([]domain.SearchResult, 0, len(candidates))
	for i := range candidates {
		cand := &candidates[i]
		if !hasMatch(cand.scores) {
			continue
		}

		best := -1.0
		var matched []string
		for f, score := range cand.scores {
			if score < 0 {
				continue
			}
			matched = append(matched, cand.entry.fields[f].name)
			if best < 0 || score < best {
				best = score
			}
		}

		results = append(results, domain.SearchResult{
			Type:          cand.typ,
			Entity:        cand.entry.entity,
			MatchedFields: matched,
			Score:         best,
		})
	}

	return results
}

// posFraction maps a match position to [0, 1): earlier matches in a
// field score slightly better.
func posFraction(pos, length int) float64 {
	if length <= 0 {
		return 0
	}
	return float64(pos) / float64(length+1)
}

func allTokensContained(text string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}

func hasMatch(scores []float64) bool {
	for _, s := range scores {
		if s >= 0 {
			return true
		}
	}
	return false
}
