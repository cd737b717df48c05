package driven

import (
	"context"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
)

// EntityStore persists task entities and contexts.
// Backed by SQLite for durable storage; an in-memory implementation
// exists for tests and embedded use.
type EntityStore interface {
	// Collections loads every entity collection at once, for index
	// initialisation.
	Collections(ctx context.Context) (*domain.Collections, error)

	// List returns all entities of one type.
	List(ctx context.Context, t domain.EntityType) ([]domain.Searchable, error)

	// Save stores or updates an entity. The entity's type and ID
	// identify the row.
	Save(ctx context.Context, entity domain.Searchable) error

	// Delete removes an entity. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, t domain.EntityType, id string) error

	// Contexts returns all known contexts.
	Contexts(ctx context.Context) ([]domain.Context, error)

	// SaveContext stores or updates a context.
	SaveContext(ctx context.Context, c domain.Context) error
}
