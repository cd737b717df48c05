package mcp

import (
	"context"
	"time"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driven"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results     []domain.SearchResult
	suggestions []domain.Suggestion
	err         error

	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) InitializeIndexes(_ domain.Collections) {}

func (m *mockSearchService) UpdateIndex(_ domain.EntityType, _ []domain.Searchable) {}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) Suggest(_ string, _ domain.SuggestionData) []domain.Suggestion {
	return m.suggestions
}

func (m *mockSearchService) Highlight(text, _ string) string { return text }

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entries []domain.HistoryEntry
}

func (m *mockHistoryService) Record(_ context.Context, _ string, _ int) {}

func (m *mockHistoryService) History() []domain.HistoryEntry { return m.entries }

func (m *mockHistoryService) Remove(_ context.Context, _ string) {}

func (m *mockHistoryService) Clear(_ context.Context) {}

func (m *mockHistoryService) Popular(_ int) []domain.PopularQuery { return nil }

// mockForecastService is a mock implementation of driving.ForecastService.
type mockForecastService struct {
	forecast *domain.Forecast
	err      error
}

func (m *mockForecastService) Forecast(_ context.Context, _ time.Time, _ int) (*domain.Forecast, error) {
	return m.forecast, m.err
}

// mockEntityStore is a mock implementation of driven.EntityStore.
type mockEntityStore struct {
	collections domain.Collections
	contexts    []domain.Context
	err         error
}

func (m *mockEntityStore) Collections(_ context.Context) (*domain.Collections, error) {
	if m.err != nil {
		return nil, m.err
	}
	c := m.collections
	return &c, nil
}

func (m *mockEntityStore) List(_ context.Context, t domain.EntityType) ([]domain.Searchable, error) {
	return m.collections.ByType(t), m.err
}

func (m *mockEntityStore) Save(_ context.Context, _ domain.Searchable) error { return m.err }

func (m *mockEntityStore) Delete(_ context.Context, _ domain.EntityType, _ string) error {
	return m.err
}

func (m *mockEntityStore) Contexts(_ context.Context) ([]domain.Context, error) {
	return m.contexts, m.err
}

func (m *mockEntityStore) SaveContext(_ context.Context, _ domain.Context) error { return m.err }

// Ensure mocks implement interfaces
var (
	_ driving.SearchService   = (*mockSearchService)(nil)
	_ driving.HistoryService  = (*mockHistoryService)(nil)
	_ driving.ForecastService = (*mockForecastService)(nil)
	_ driven.EntityStore      = (*mockEntityStore)(nil)
)
