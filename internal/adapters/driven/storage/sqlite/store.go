package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/clearday-labs/nextact-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/clearday-labs/nextact-cli/internal/core/domain"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.nextact/data/nextact.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".nextact", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "nextact.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// EntityStore returns an EntityStore interface backed by this store.
func (s *Store) EntityStore() driven.EntityStore {
	return &entityStore{store: s}
}

// HistoryStore returns a HistoryStore interface backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
}

// SchedulerStore returns a SchedulerStore interface backed by this store.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "0001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Entity Store ====================

// entityStore implements driven.EntityStore. Entities are stored as
// JSON payloads keyed by (type, id); the search subsystem reads whole
// collections, so rows are only ever decoded in bulk.
type entityStore struct {
	store *Store
}

var _ driven.EntityStore = (*entityStore)(nil)

// Collections loads every entity collection at once.
func (s *entityStore) Collections(ctx context.Context) (*domain.Collections, error) {
	// rowid order preserves insertion order within each type, which
	// keeps result ordering stable across runs.
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT type, payload FROM entities ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying entities: %w", err)
	}
	defer rows.Close()

	var collections domain.Collections
	for rows.Next() {
		var entityType, payload string
		if err := rows.Scan(&entityType, &payload); err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		if err := appendEntity(&collections, domain.EntityType(entityType), []byte(payload)); err != nil {
			return nil, err
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entities: %w", err)
	}

	return &collections, nil
}

// List returns all entities of one type.
func (s *entityStore) List(ctx context.Context, t domain.EntityType) ([]domain.Searchable, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%q: %w", t, domain.ErrUnknownEntityType)
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT payload FROM entities WHERE type = ? ORDER BY rowid
	`, t)
	if err != nil {
		return nil, fmt.Errorf("querying entities: %w", err)
	}
	defer rows.Close()

	var entities []domain.Searchable //nolint:prealloc // size unknown from query
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		entity, err := decodeEntity(t, []byte(payload))
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entities: %w", err)
	}

	return entities, nil
}

// Save stores or updates an entity, keyed by its type and ID.
func (s *entityStore) Save(ctx context.Context, entity domain.Searchable) error {
	if entity == nil || entity.EntityID() == "" {
		return fmt.Errorf("entity requires an ID: %w", domain.ErrInvalidInput)
	}
	if !entity.Type().IsValid() {
		return fmt.Errorf("%q: %w", entity.Type(), domain.ErrUnknownEntityType)
	}

	payload, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshalling entity: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO entities (type, id, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(type, id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, entity.Type(), entity.EntityID(), string(payload), now, now)

	if err != nil {
		return fmt.Errorf("saving entity: %w", err)
	}
	return nil
}

// Delete removes an entity. Returns domain.ErrNotFound if absent.
func (s *entityStore) Delete(ctx context.Context, t domain.EntityType, id string) error {
	if !t.IsValid() {
		return fmt.Errorf("%q: %w", t, domain.ErrUnknownEntityType)
	}

	result, err := s.store.db.ExecContext(ctx,
		"DELETE FROM entities WHERE type = ? AND id = ?", t, id)
	if err != nil {
		return fmt.Errorf("deleting entity: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", t, id, domain.ErrNotFound)
	}
	return nil
}

// Contexts returns all known contexts.
func (s *entityStore) Contexts(ctx context.Context) ([]domain.Context, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name FROM contexts ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying contexts: %w", err)
	}
	defer rows.Close()

	var contexts []domain.Context //nolint:prealloc // size unknown from query
	for rows.Next() {
		var c domain.Context
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning context: %w", err)
		}
		contexts = append(contexts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contexts: %w", err)
	}

	return contexts, nil
}

// SaveContext stores or updates a context.
func (s *entityStore) SaveContext(ctx context.Context, c domain.Context) error {
	if c.ID == "" {
		return fmt.Errorf("context requires an ID: %w", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO contexts (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			updated_at = excluded.updated_at
	`, c.ID, c.Name, now, now)

	if err != nil {
		return fmt.Errorf("saving context: %w", err)
	}
	return nil
}

// decodeEntity unmarshals a payload into the concrete type for t.
func decodeEntity(t domain.EntityType, payload []byte) (domain.Searchable, error) {
	switch t {
	case domain.EntityTypeAction:
		var a domain.Action
		if err := json.Unmarshal(payload, &a); err != nil {
			return nil, fmt.Errorf("unmarshalling action: %w", err)
		}
		return &a, nil
	case domain.EntityTypeProject:
		var p domain.Project
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("unmarshalling project: %w", err)
		}
		return &p, nil
	case domain.EntityTypeWaiting:
		var w domain.WaitingItem
		if err := json.Unmarshal(payload, &w); err != nil {
			return nil, fmt.Errorf("unmarshalling waiting item: %w", err)
		}
		return &w, nil
	case domain.EntityTypeCalendar:
		var c domain.CalendarItem
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, fmt.Errorf("unmarshalling calendar item: %w", err)
		}
		return &c, nil
	case domain.EntityTypeInbox:
		var i domain.InboxItem
		if err := json.Unmarshal(payload, &i); err != nil {
			return nil, fmt.Errorf("unmarshalling inbox item: %w", err)
		}
		return &i, nil
	default:
		return nil, fmt.Errorf("%q: %w", t, domain.ErrUnknownEntityType)
	}
}

// appendEntity decodes a payload and appends it to the right collection.
func appendEntity(collections *domain.Collections, t domain.EntityType, payload []byte) error {
	entity, err := decodeEntity(t, payload)
	if err != nil {
		return err
	}

	switch e := entity.(type) {
	case *domain.Action:
		collections.Actions = append(collections.Actions, *e)
	case *domain.Project:
		collections.Projects = append(collections.Projects, *e)
	case *domain.WaitingItem:
		collections.Waiting = append(collections.Waiting, *e)
	case *domain.CalendarItem:
		collections.Calendar = append(collections.Calendar, *e)
	case *domain.InboxItem:
		collections.Inbox = append(collections.Inbox, *e)
	}
	return nil
}

// ==================== History Store ====================

// historyStore implements driven.HistoryStore. The history service
// owns ordering and the cap; this adapter just replaces the stored
// set wholesale inside a transaction.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Load returns all stored history entries ordered oldest first.
func (s *historyStore) Load(ctx context.Context) ([]domain.HistoryEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT query, timestamp, result_count, hits
		FROM search_history
		ORDER BY timestamp
	`)
	if err != nil {
		return nil, fmt.Errorf("querying search history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.HistoryEntry
		var timestamp string
		if err := rows.Scan(&entry.Query, &timestamp, &entry.ResultCount, &entry.Hits); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, timestamp)
		if err != nil {
			return nil, fmt.Errorf("parsing history timestamp: %w", domain.ErrCorruptHistory)
		}
		entry.Timestamp = t
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search history: %w", err)
	}

	return entries, nil
}

// Save replaces the stored history wholesale.
func (s *historyStore) Save(ctx context.Context, entries []domain.HistoryEntry) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, "DELETE FROM search_history"); err != nil {
		return fmt.Errorf("clearing search history: %w", err)
	}

	for _, entry := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO search_history (query, timestamp, result_count, hits)
			VALUES (?, ?, ?, ?)
		`, entry.Query, entry.Timestamp.UTC().Format(time.RFC3339Nano),
			entry.ResultCount, entry.Hits)
		if err != nil {
			return fmt.Errorf("inserting history entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing search history: %w", err)
	}
	return nil
}
