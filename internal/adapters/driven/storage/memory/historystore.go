package memory

import (
	"context"
	"sync"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Load returns the stored entries.
func (s *HistoryStore) Load(_ context.Context) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.HistoryEntry(nil), s.entries...), nil
}

// Save replaces the stored entries wholesale.
func (s *HistoryStore) Save(_ context.Context, entries []domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]domain.HistoryEntry(nil), entries...)
	return nil
}
