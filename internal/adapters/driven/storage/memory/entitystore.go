package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driven"
)

// Ensure EntityStore implements the interface.
var _ driven.EntityStore = (*EntityStore)(nil)

// EntityStore is an in-memory implementation of driven.EntityStore.
type EntityStore struct {
	mu          sync.RWMutex
	collections domain.Collections
	contexts    map[string]domain.Context
}

// NewEntityStore creates a new in-memory entity store.
func NewEntityStore() *EntityStore {
	return &EntityStore{
		contexts: make(map[string]domain.Context),
	}
}

// NewEntityStoreWith creates an in-memory entity store pre-seeded with
// collections and contexts.
func NewEntityStoreWith(collections domain.Collections, contexts []domain.Context) *EntityStore {
	s := NewEntityStore()
	s.collections = collections
	for _, c := range contexts {
		s.contexts[c.ID] = c
	}
	return s
}

// Collections returns a copy of every entity collection.
func (s *EntityStore) Collections(_ context.Context) (*domain.Collections, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := domain.Collections{
		Actions:  append([]domain.Action(nil), s.collections.Actions...),
		Projects: append([]domain.Project(nil), s.collections.Projects...),
		Waiting:  append([]domain.WaitingItem(nil), s.collections.Waiting...),
		Calendar: append([]domain.CalendarItem(nil), s.collections.Calendar...),
		Inbox:    append([]domain.InboxItem(nil), s.collections.Inbox...),
	}
	return &c, nil
}

// List returns all entities of one type.
func (s *EntityStore) List(_ context.Context, t domain.EntityType) ([]domain.Searchable, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%q: %w", t, domain.ErrUnknownEntityType)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collections.ByType(t), nil
}

// Save stores or updates an entity, keyed by its type and ID.
func (s *EntityStore) Save(_ context.Context, entity domain.Searchable) error {
	if entity == nil || entity.EntityID() == "" {
		return fmt.Errorf("entity requires an ID: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := entity.(type) {
	case *domain.Action:
		s.collections.Actions = upsert(s.collections.Actions, *e, func(a domain.Action) string { return a.ID })
	case *domain.Project:
		s.collections.Projects = upsert(s.collections.Projects, *e, func(p domain.Project) string { return p.ID })
	case *domain.WaitingItem:
		s.collections.Waiting = upsert(s.collections.Waiting, *e, func(w domain.WaitingItem) string { return w.ID })
	case *domain.CalendarItem:
		s.collections.Calendar = upsert(s.collections.Calendar, *e, func(c domain.CalendarItem) string { return c.ID })
	case *domain.InboxItem:
		s.collections.Inbox = upsert(s.collections.Inbox, *e, func(i domain.InboxItem) string { return i.ID })
	default:
		return fmt.Errorf("%q: %w", entity.Type(), domain.ErrUnknownEntityType)
	}
	return nil
}

// Delete removes an entity. Returns domain.ErrNotFound if absent.
func (s *EntityStore) Delete(_ context.Context, t domain.EntityType, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed bool
	switch t {
	case domain.EntityTypeAction:
		s.collections.Actions, removed = remove(s.collections.Actions, id, func(a domain.Action) string { return a.ID })
	case domain.EntityTypeProject:
		s.collections.Projects, removed = remove(s.collections.Projects, id, func(p domain.Project) string { return p.ID })
	case domain.EntityTypeWaiting:
		s.collections.Waiting, removed = remove(s.collections.Waiting, id, func(w domain.WaitingItem) string { return w.ID })
	case domain.EntityTypeCalendar:
		s.collections.Calendar, removed = remove(s.collections.Calendar, id, func(c domain.CalendarItem) string { return c.ID })
	case domain.EntityTypeInbox:
		s.collections.Inbox, removed = remove(s.collections.Inbox, id, func(i domain.InboxItem) string { return i.ID })
	default:
		return fmt.Errorf("%q: %w", t, domain.ErrUnknownEntityType)
	}

	if !removed {
		return fmt.Errorf("%s %s: %w", t, id, domain.ErrNotFound)
	}
	return nil
}

// Contexts returns all known contexts.
func (s *EntityStore) Contexts(_ context.Context) ([]domain.Context, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Context, 0, len(s.contexts))
	for _, c := range s.contexts {
		out = append(out, c)
	}
	return out, nil
}

// SaveContext stores or updates a context.
func (s *EntityStore) SaveContext(_ context.Context, c domain.Context) error {
	if c.ID == "" {
		return fmt.Errorf("context requires an ID: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[c.ID] = c
	return nil
}

// upsert replaces the item with a matching ID, or appends it.
func upsert[E any](items []E, item E, id func(E) string) []E {
	key := id(item)
	for i := range items {
		if id(items[i]) == key {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

// remove deletes the item with a matching ID, preserving order.
func remove[E any](items []E, key string, id func(E) string) ([]E, bool) {
	for i := range items {
		if id(items[i]) == key {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}
