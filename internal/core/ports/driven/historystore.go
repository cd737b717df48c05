package driven

import (
	"context"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
)

// HistoryStore persists the full search history list under a single
// durable key. The history service holds the authoritative in-memory
// copy; every mutation writes the whole list back.
type HistoryStore interface {
	// Load reads the persisted history, oldest first. A missing key
	// yields an empty list and no error. Undecodable content returns
	// an error wrapping domain.ErrCorruptHistory; callers treat it as
	// an empty history.
	Load(ctx context.Context) ([]domain.HistoryEntry, error)

	// Save replaces the persisted history with the given list.
	Save(ctx context.Context, entries []domain.HistoryEntry) error
}
