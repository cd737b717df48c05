package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// stubMatcher implements driven.Matcher with case-insensitive
// subsequence matching at a fixed score.
type stubMatcher struct{}

func (stubMatcher) Rank(query string, corpus []string) []driven.Candidate {
	var out []driven.Candidate
	lowerQuery := strings.ToLower(query)
	for i, text := range corpus {
		if isSubsequence(lowerQuery, strings.ToLower(text)) {
			out = append(out, driven.Candidate{Index: i, Score: 0.5})
		}
	}
	return out
}

func isSubsequence(needle, haystack string) bool {
	hay := []rune(haystack)
	j := 0
	for _, r := range needle {
		for j < len(hay) && hay[j] != r {
			j++
		}
		if j == len(hay) {
			return false
		}
		j++
	}
	return true
}

// recordingHistory implements driving.HistoryService and records calls.
type recordingHistory struct {
	queries []string
	counts  []int
}

func (h *recordingHistory) Record(_ context.Context, query string, resultCount int) {
	h.queries = append(h.queries, query)
	h.counts = append(h.counts, resultCount)
}

func (h *recordingHistory) History() []domain.HistoryEntry    { return nil }
func (h *recordingHistory) Remove(_ context.Context, _ string) {}
func (h *recordingHistory) Clear(_ context.Context)            {}
func (h *recordingHistory) Popular(_ int) []domain.PopularQuery {
	return nil
}

// --- Fixtures ---

func testCollections() domain.Collections {
	due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	return domain.Collections{
		Actions: []domain.Action{
			{
				ID:          "a1",
				Title:       "Call plumber about the kitchen sink",
				Description: "Leaking since Tuesday",
				ContextID:   "phone",
				Priority:    domain.PriorityHigh,
				DueDate:     &due,
			},
			{
				ID:        "a2",
				Title:     "Buy stamps",
				Notes:     "Post office closes at five",
				ContextID: "errands",
				Priority:  domain.PriorityLow,
			},
		},
		Projects: []domain.Project{
			{ID: "p1", Title: "Kitchen renovation", Description: "New sink and counters"},
		},
		Waiting: []domain.WaitingItem{
			{ID: "w1", Title: "Quote from contractor", DelegatedTo: "Alex"},
		},
		Calendar: []domain.CalendarItem{
			{ID: "c1", Title: "Dentist appointment", StartAt: due},
		},
		Inbox: []domain.InboxItem{
			{ID: "i1", Title: "Read that sourdough article"},
		},
	}
}

func newTestService() *SearchService {
	s := NewSearchService(stubMatcher{}, nil)
	s.InitializeIndexes(testCollections())
	return s
}

// --- Tests ---

func TestSearch_UniqueTokenFindsItem(t *testing.T) {
	s := newTestService()

	results, err := s.Search(context.Background(), "plumber", domain.SearchOptions{
		Types: []domain.EntityType{domain.EntityTypeAction},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.EntityTypeAction, results[0].Type)
	assert.Equal(t, "a1", results[0].Entity.EntityID())
	assert.Contains(t, results[0].MatchedFields, "title")
}

func TestSearch_EmptyQuery(t *testing.T) {
	history := &recordingHistory{}
	s := NewSearchService(stubMatcher{}, history)
	s.InitializeIndexes(testCollections())

	for _, query := range []string{"", "   ", "\t\n"} {
		results, err := s.Search(context.Background(), query, domain.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, results)
	}

	// Empty queries short-circuit before history recording.
	assert.Empty(t, history.queries)
}

func TestSearch_FilterOnlyEmptyQueryReturnsNothing(t *testing.T) {
	s := newTestService()

	results, err := s.Search(context.Background(), "", domain.SearchOptions{
		Filters: domain.SearchFilters{Contexts: []string{"phone"}},
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_NoMatchIsNotAnError(t *testing.T) {
	s := newTestService()

	results, err := s.Search(context.Background(), "zzzzqqqq", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_ResultsSortedAscending(t *testing.T) {
	s := newTestService()

	results, err := s.Search(context.Background(), "sink", domain.SearchOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestSearch_LimitTruncatesOnly(t *testing.T) {
	s := newTestService()

	all, err := s.Search(context.Background(), "sink", domain.SearchOptions{})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(all), 2)

	limited, err := s.Search(context.Background(), "sink", domain.SearchOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)

	// Limit does not change which item ranks first.
	assert.Equal(t, all[0].Entity.EntityID(), limited[0].Entity.EntityID())
}

func TestSearch_TypesRestrictUniverse(t *testing.T) {
	s := newTestService()

	results, err := s.Search(context.Background(), "sink", domain.SearchOptions{
		Types: []domain.EntityType{domain.EntityTypeProject},
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Equal(t, domain.EntityTypeProject, r.Type)
	}
}

func TestSearch_UnknownRequestedTypeIgnored(t *testing.T) {
	s := newTestService()

	results, err := s.Search(context.Background(), "plumber", domain.SearchOptions{
		Types: []domain.EntityType{"bogus", domain.EntityTypeAction},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a1", results[0].Entity.EntityID())
}

func TestSearch_Filters(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	t.Run("context filter", func(t *testing.T) {
		results, err := s.Search(ctx, "sink", domain.SearchOptions{
			Filters: domain.SearchFilters{Contexts: []string{"phone"}},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "a1", results[0].Entity.EntityID())
	})

	t.Run("priority filter excludes", func(t *testing.T) {
		results, err := s.Search(ctx, "plumber", domain.SearchOptions{
			Filters: domain.SearchFilters{Priorities: []domain.Priority{domain.PriorityLow}},
		})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("date range filter", func(t *testing.T) {
		results, err := s.Search(ctx, "plumber", domain.SearchOptions{
			Filters: domain.SearchFilters{
				DateRange: &domain.DateRange{
					Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
					End:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
	})

	t.Run("AND semantics", func(t *testing.T) {
		results, err := s.Search(ctx, "plumber", domain.SearchOptions{
			Filters: domain.SearchFilters{
				Contexts:   []string{"phone"},
				Priorities: []domain.Priority{domain.PriorityHigh},
			},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)

		results, err = s.Search(ctx, "plumber", domain.SearchOptions{
			Filters: domain.SearchFilters{
				Contexts:   []string{"phone"},
				Priorities: []domain.Priority{domain.PriorityLow},
			},
		})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestSearch_ExactBeatsFuzzy(t *testing.T) {
	s := NewSearchService(stubMatcher{}, nil)
	s.UpdateIndex(domain.EntityTypeAction, []domain.Searchable{
		// "rprt" subsequence-matches this title but not exactly.
		&domain.Action{ID: "fuzzy-only", Title: "Write the report"},
		&domain.Action{ID: "exact", Title: "rprt shorthand note"},
	})

	results, err := s.Search(context.Background(), "rprt", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "exact", results[0].Entity.EntityID())
	assert.Equal(t, "fuzzy-only", results[1].Entity.EntityID())
	assert.Less(t, results[0].Score, results[1].Score)
}

func TestSearch_TitleOutranksNotes(t *testing.T) {
	s := NewSearchService(stubMatcher{}, nil)
	s.UpdateIndex(domain.EntityTypeAction, []domain.Searchable{
		&domain.Action{ID: "in-notes", Title: "Errands", Notes: "stamps for the letters"},
		&domain.Action{ID: "in-title", Title: "stamps"},
	})

	results, err := s.Search(context.Background(), "stamps", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "in-title", results[0].Entity.EntityID())
}

func TestSearch_CrossTypeTieBreakIsDeterministic(t *testing.T) {
	s := NewSearchService(stubMatcher{}, nil)
	s.UpdateIndex(domain.EntityTypeProject, []domain.Searchable{
		&domain.Project{ID: "p1", Title: "identical"},
	})
	s.UpdateIndex(domain.EntityTypeAction, []domain.Searchable{
		&domain.Action{ID: "a1", Title: "identical"},
	})

	for i := 0; i < 5; i++ {
		results, err := s.Search(context.Background(), "identical", domain.SearchOptions{})
		require.NoError(t, err)
		require.Len(t, results, 2)
		// Equal scores keep canonical type order: action before project.
		assert.Equal(t, "a1", results[0].Entity.EntityID())
		assert.Equal(t, "p1", results[1].Entity.EntityID())
	}
}

func TestInitializeIndexes_Idempotent(t *testing.T) {
	s := NewSearchService(stubMatcher{}, nil)
	data := testCollections()

	s.InitializeIndexes(data)
	first, err := s.Search(context.Background(), "sink", domain.SearchOptions{})
	require.NoError(t, err)

	s.InitializeIndexes(data)
	second, err := s.Search(context.Background(), "sink", domain.SearchOptions{})
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Entity.EntityID(), second[i].Entity.EntityID())
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestInitializeIndexes_EmptyCollections(t *testing.T) {
	s := NewSearchService(stubMatcher{}, nil)
	s.InitializeIndexes(domain.Collections{})

	results, err := s.Search(context.Background(), "anything", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestUpdateIndex_ReplacesWholesale(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	results, err := s.Search(ctx, "plumber", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Rebuilding with a collection that no longer holds a1 removes it.
	s.UpdateIndex(domain.EntityTypeAction, []domain.Searchable{
		&domain.Action{ID: "a3", Title: "Water the plants"},
	})

	results, err = s.Search(ctx, "plumber", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = s.Search(ctx, "plants", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a3", results[0].Entity.EntityID())
}

func TestUpdateIndex_UnknownTypeIsNoOp(t *testing.T) {
	s := newTestService()

	assert.NotPanics(t, func() {
		s.UpdateIndex("perspective", []domain.Searchable{
			&domain.Action{ID: "x", Title: "stray"},
		})
	})

	results, err := s.Search(context.Background(), "stray", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_RecordsHistory(t *testing.T) {
	history := &recordingHistory{}
	s := NewSearchService(stubMatcher{}, history)
	s.InitializeIndexes(testCollections())

	_, err := s.Search(context.Background(), "plumber", domain.SearchOptions{})
	require.NoError(t, err)

	require.Len(t, history.queries, 1)
	assert.Equal(t, "plumber", history.queries[0])
	assert.Equal(t, 1, history.counts[0])
}

func TestSearch_CJKQuery(t *testing.T) {
	s := NewSearchService(stubMatcher{}, nil)
	s.UpdateIndex(domain.EntityTypeAction, []domain.Searchable{
		&domain.Action{
			ID:          "a1",
			Title:       "完成项目报告",
			Description: "编写季度项目总结报告",
		},
	})

	results, err := s.Search(context.Background(), "项目报告", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.EntityTypeAction, results[0].Type)
	assert.Contains(t, results[0].MatchedFields, "title")
}

func TestSearch_NoMatcherDegradesToExact(t *testing.T) {
	s := NewSearchService(nil, nil)
	s.UpdateIndex(domain.EntityTypeAction, []domain.Searchable{
		&domain.Action{ID: "a1", Title: "Write the report"},
	})
	ctx := context.Background()

	results, err := s.Search(ctx, "report", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Typo finds nothing without a matcher.
	results, err = s.Search(ctx, "reprot", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}
