package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driven"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driving"
	"github.com/clearday-labs/nextact-cli/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService records, deduplicates and ages out past search
// queries. The in-memory list is authoritative; every mutation writes
// the whole list through the store. Store failures never surface to
// callers: a failed load starts empty, a failed save leaves the
// in-memory history valid until the next successful write.
type HistoryService struct {
	store driven.HistoryStore

	mu      sync.Mutex
	entries []domain.HistoryEntry // oldest first
	clock   func() time.Time
}

// NewHistoryService creates a history service, loading persisted
// entries from the store. The store is optional (can be nil): without
// it, history is kept in memory only. Corrupt or missing persisted
// data degrades to an empty history, never an error.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	s := &HistoryService{
		store: store,
		clock: time.Now,
	}

	if store != nil {
		entries, err := store.Load(context.Background())
		if err != nil {
			logger.Warn("History load failed, starting empty: %v", err)
		} else {
			s.entries = capEntries(entries)
		}
	}

	return s
}

// Record notes that a query was issued and how many results it
// returned. The dedup key is the exact (case-sensitive) query text:
// a repeat updates the entry's timestamp and result count in place and
// increments its hit counter. The history is capped at
// domain.HistoryCap entries, oldest evicted first.
func (s *HistoryService) Record(ctx context.Context, query string, resultCount int) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()

	if i := s.find(query); i >= 0 {
		entry := s.entries[i]
		entry.Timestamp = now
		entry.ResultCount = resultCount
		entry.Hits++
		// Move to the end: the list stays ordered oldest first.
		s.entries = append(append(s.entries[:i:i], s.entries[i+1:]...), entry)
	} else {
		s.entries = append(s.entries, domain.HistoryEntry{
			Query:       query,
			Timestamp:   now,
			ResultCount: resultCount,
			Hits:        1,
		})
	}

	s.entries = capEntries(s.entries)
	s.persist(ctx)
}

// History returns all entries, newest first.
func (s *HistoryService) History() []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.HistoryEntry, len(s.entries))
	for i, e := range s.entries {
		out[len(s.entries)-1-i] = e
	}
	return out
}

// Remove deletes the exact-match entry if present; no-op otherwise.
func (s *HistoryService) Remove(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(query)
	if i < 0 {
		return
	}

	s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
	s.persist(ctx)
}

// Clear empties the history.
func (s *HistoryService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.persist(ctx)
}

// Popular returns up to n distinct queries ranked by hit count
// descending, ties broken by recency (most recent first).
func (s *HistoryService) Popular(n int) []domain.PopularQuery {
	s.mu.Lock()
	defer s.mu.Unlock()

	ranked := make([]domain.HistoryEntry, len(s.entries))
	copy(ranked, s.entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Hits != ranked[j].Hits {
			return ranked[i].Hits > ranked[j].Hits
		}
		return ranked[i].Timestamp.After(ranked[j].Timestamp)
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	out := make([]domain.PopularQuery, len(ranked))
	for i, e := range ranked {
		out[i] = domain.PopularQuery{Query: e.Query, Count: e.Hits}
	}
	return out
}

// find returns the index of the exact-match entry, or -1.
// Caller holds the lock.
func (s *HistoryService) find(query string) int {
	for i := range s.entries {
		if s.entries[i].Query == query {
			return i
		}
	}
	return -1
}

// persist writes the full list through the store. Failures (e.g.
// storage quota) are logged; the in-memory history stays valid and
// the next mutation retries the write. Caller holds the lock.
func (s *HistoryService) persist(ctx context.Context) {
	if s.store == nil {
		return
	}

	snapshot := make([]domain.HistoryEntry, len(s.entries))
	copy(snapshot, s.entries)

	if err := s.store.Save(ctx, snapshot); err != nil {
		logger.Warn("History save failed, keeping in-memory history: %v", err)
	}
}

// capEntries evicts the oldest entries beyond domain.HistoryCap.
// Entries are kept ordered oldest first; persisted data from older
// versions may be unsorted, so sort before trimming.
func capEntries(entries []domain.HistoryEntry) []domain.HistoryEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	if len(entries) > domain.HistoryCap {
		entries = entries[len(entries)-domain.HistoryCap:]
	}
	return entries
}
