package mcp

import (
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driven"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search and suggestion capabilities.
	Search driving.SearchService

	// History exposes the search history.
	History driving.HistoryService

	// Forecast buckets upcoming commitments per day.
	Forecast driving.ForecastService

	// Entities supplies the reference data suggestions draw from.
	Entities driven.EntityStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// History, Forecast and Entities are optional; the matching tools
	// and resources degrade to empty output without them.
	return nil
}
