// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - EntityStore: Task entity and context persistence
//   - HistoryStore: Search history persistence
//   - SchedulerStore: Background task state and result persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Entities are stored as JSON payloads keyed by
// (type, id): the search subsystem always reads whole collections, so
// per-field columns would buy nothing.
//
// # Data Location
//
// By default, the database is stored at ~/.nextact/data/nextact.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
