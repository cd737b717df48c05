package cli

import (
	"time"

	"github.com/clearday-labs/nextact-cli/internal/adapters/driven/match/fuzzy"
	"github.com/clearday-labs/nextact-cli/internal/adapters/driven/storage/memory"
	"github.com/clearday-labs/nextact-cli/internal/core/domain"
	"github.com/clearday-labs/nextact-cli/internal/core/services"
)

// setupTestServices wires the commands to real services over in-memory
// stores seeded with a small fixture, and returns a cleanup that
// restores the previous wiring. initServices skips wiring while
// searchService is set, so commands run against the fixture.
func setupTestServices() func() {
	prevConfig := configStore
	prevEntity := entityStore
	prevSearch := searchService
	prevHistory := historyService
	prevForecast := forecastService
	prevReview := reviewService

	due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	overdue := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	collections := domain.Collections{
		Actions: []domain.Action{
			{ID: "a-1", Title: "Finish project report", ContextID: "office", Priority: domain.PriorityHigh, DueDate: &due, Tags: []string{"writing"}},
			{ID: "a-2", Title: "Buy stamps", ContextID: "errands", DueDate: &overdue},
		},
		Projects: []domain.Project{
			{ID: "p-1", Title: "Website relaunch", Tags: []string{"work"}},
		},
		Inbox: []domain.InboxItem{
			{ID: "i-1", Title: "Look into standing desks"},
		},
	}
	contexts := []domain.Context{
		{ID: "office", Name: "Office"},
		{ID: "errands", Name: "Errands"},
	}

	seeded := memory.NewEntityStoreWith(collections, contexts)
	entityStore = seeded

	history := services.NewHistoryService(memory.NewHistoryStore())
	historyService = history

	search := services.NewSearchService(fuzzy.NewMatcher(), history)
	search.InitializeIndexes(collections)
	searchService = search

	forecastService = services.NewForecastService(seeded)
	reviewService = services.NewReviewService(seeded, 0)

	return func() {
		configStore = prevConfig
		entityStore = prevEntity
		searchService = prevSearch
		historyService = prevHistory
		forecastService = prevForecast
		reviewService = prevReview
	}
}
