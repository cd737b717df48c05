package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// historyFileName is the file the search history lives in, inside the
// nextact config directory.
const historyFileName = "search_history.json"

// HistoryStore is a JSON file-backed implementation of
// driven.HistoryStore. The whole history is small (capped at
// domain.HistoryCap entries), so every save rewrites the file.
type HistoryStore struct {
	mu       sync.Mutex
	filePath string
}

// NewHistoryStore creates a JSON-based history store.
// If configDir is empty, defaults to ~/.nextact/search_history.json.
func NewHistoryStore(configDir string) (*HistoryStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".nextact")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &HistoryStore{
		filePath: filepath.Join(configDir, historyFileName),
	}, nil
}

// Load reads the history file. A missing file is an empty history;
// unparseable content returns domain.ErrCorruptHistory so callers can
// degrade to an empty history.
func (s *HistoryStore) Load(_ context.Context) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.filePath, err)
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.filePath, domain.ErrCorruptHistory)
	}
	return entries, nil
}

// Save replaces the history file wholesale.
func (s *HistoryStore) Save(_ context.Context, entries []domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entries == nil {
		entries = []domain.HistoryEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the history file path.
func (s *HistoryStore) Path() string {
	return s.filePath
}
