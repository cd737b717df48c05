// Package domain defines the core business entities for Nextact.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Action, Project, WaitingItem, CalendarItem, InboxItem: the
//     searchable task entities
//   - Context: a situational tag (location, tool, energy level)
//   - SearchOptions, SearchResult: the search contract
//   - HistoryEntry: a recorded past query
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
