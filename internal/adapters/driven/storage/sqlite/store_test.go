package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.FileExists(t, store.Path())
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening runs migrate again over an up-to-date schema.
	store, err = NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

// ==================== Entity Store Tests ====================

func TestEntityStore_SaveAndList(t *testing.T) {
	store := newTestStore(t)
	entities := store.EntityStore()
	ctx := context.Background()

	due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	action := &domain.Action{
		ID:        "a1",
		Title:     "Call plumber about kitchen sink",
		ContextID: "phone",
		Priority:  domain.PriorityHigh,
		DueDate:   &due,
		Tags:      []string{"home"},
	}
	require.NoError(t, entities.Save(ctx, action))

	got, err := entities.List(ctx, domain.EntityTypeAction)
	require.NoError(t, err)
	require.Len(t, got, 1)

	loaded := got[0].(*domain.Action)
	assert.Equal(t, "a1", loaded.ID)
	assert.Equal(t, "Call plumber about kitchen sink", loaded.Title)
	assert.Equal(t, domain.PriorityHigh, loaded.Priority)
	require.NotNil(t, loaded.DueDate)
	assert.True(t, loaded.DueDate.Equal(due))
	assert.Equal(t, []string{"home"}, loaded.Tags)
}

func TestEntityStore_SaveUpsertsByTypeAndID(t *testing.T) {
	store := newTestStore(t)
	entities := store.EntityStore()
	ctx := context.Background()

	require.NoError(t, entities.Save(ctx, &domain.Action{ID: "x", Title: "Action x"}))
	require.NoError(t, entities.Save(ctx, &domain.InboxItem{ID: "x", Title: "Inbox x"}))
	require.NoError(t, entities.Save(ctx, &domain.Action{ID: "x", Title: "Action x updated"}))

	actions, err := entities.List(ctx, domain.EntityTypeAction)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "Action x updated", actions[0].(*domain.Action).Title)

	// Same ID under a different type is a distinct row.
	inbox, err := entities.List(ctx, domain.EntityTypeInbox)
	require.NoError(t, err)
	assert.Len(t, inbox, 1)
}

func TestEntityStore_Collections(t *testing.T) {
	store := newTestStore(t)
	entities := store.EntityStore()
	ctx := context.Background()

	require.NoError(t, entities.Save(ctx, &domain.Action{ID: "a1", Title: "First"}))
	require.NoError(t, entities.Save(ctx, &domain.Action{ID: "a2", Title: "Second"}))
	require.NoError(t, entities.Save(ctx, &domain.Project{ID: "p1", Title: "Kitchen"}))
	require.NoError(t, entities.Save(ctx, &domain.WaitingItem{ID: "w1", Title: "Quote", DelegatedTo: "Alex"}))
	require.NoError(t, entities.Save(ctx, &domain.CalendarItem{ID: "c1", Title: "Dentist", StartAt: time.Now().UTC()}))
	require.NoError(t, entities.Save(ctx, &domain.InboxItem{ID: "i1", Title: "Idea"}))

	collections, err := entities.Collections(ctx)
	require.NoError(t, err)

	assert.Len(t, collections.Actions, 2)
	assert.Len(t, collections.Projects, 1)
	assert.Len(t, collections.Waiting, 1)
	assert.Len(t, collections.Calendar, 1)
	assert.Len(t, collections.Inbox, 1)

	// Insertion order is preserved within a type.
	assert.Equal(t, "a1", collections.Actions[0].ID)
	assert.Equal(t, "a2", collections.Actions[1].ID)
}

func TestEntityStore_Delete(t *testing.T) {
	store := newTestStore(t)
	entities := store.EntityStore()
	ctx := context.Background()

	require.NoError(t, entities.Save(ctx, &domain.Action{ID: "a1", Title: "Doomed"}))
	require.NoError(t, entities.Delete(ctx, domain.EntityTypeAction, "a1"))

	err := entities.Delete(ctx, domain.EntityTypeAction, "a1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntityStore_UnknownType(t *testing.T) {
	store := newTestStore(t)
	entities := store.EntityStore()
	ctx := context.Background()

	_, err := entities.List(ctx, domain.EntityType("bogus"))
	assert.ErrorIs(t, err, domain.ErrUnknownEntityType)

	err = entities.Delete(ctx, domain.EntityType("bogus"), "id")
	assert.ErrorIs(t, err, domain.ErrUnknownEntityType)
}

func TestEntityStore_SaveRequiresID(t *testing.T) {
	store := newTestStore(t)
	err := store.EntityStore().Save(context.Background(), &domain.Action{Title: "No ID"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEntityStore_Contexts(t *testing.T) {
	store := newTestStore(t)
	entities := store.EntityStore()
	ctx := context.Background()

	require.NoError(t, entities.SaveContext(ctx, domain.Context{ID: "c1", Name: "office"}))
	require.NoError(t, entities.SaveContext(ctx, domain.Context{ID: "c2", Name: "errands"}))
	require.NoError(t, entities.SaveContext(ctx, domain.Context{ID: "c1", Name: "home office"}))

	contexts, err := entities.Contexts(ctx)
	require.NoError(t, err)
	require.Len(t, contexts, 2)
	assert.Equal(t, "home office", contexts[0].Name)
	assert.Equal(t, "errands", contexts[1].Name)
}

// ==================== History Store Tests ====================

func TestHistoryStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	history := store.HistoryStore()
	ctx := context.Background()

	entries := []domain.HistoryEntry{
		{Query: "plumber", Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), ResultCount: 2, Hits: 1},
		{Query: "report", Timestamp: time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC), ResultCount: 0, Hits: 3},
	}
	require.NoError(t, history.Save(ctx, entries))

	got, err := history.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "plumber", got[0].Query)
	assert.Equal(t, 3, got[1].Hits)
	assert.True(t, got[0].Timestamp.Before(got[1].Timestamp))
}

func TestHistoryStore_SaveReplacesWholesale(t *testing.T) {
	store := newTestStore(t)
	history := store.HistoryStore()
	ctx := context.Background()

	require.NoError(t, history.Save(ctx, []domain.HistoryEntry{
		{Query: "old", Timestamp: time.Now().UTC()},
	}))
	require.NoError(t, history.Save(ctx, []domain.HistoryEntry{
		{Query: "new", Timestamp: time.Now().UTC()},
	}))

	got, err := history.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Query)
}

func TestHistoryStore_EmptyLoad(t *testing.T) {
	store := newTestStore(t)
	got, err := store.HistoryStore().Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
