package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driven"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driving"
	"github.com/clearday-labs/nextact-cli/internal/logger"
)

// Ensure ForecastService implements the interface.
var _ driving.ForecastService = (*ForecastService)(nil)

// ForecastService derives per-day buckets of calendar items and due
// actions from the entity store.
type ForecastService struct {
	entities driven.EntityStore
}

// NewForecastService creates a new forecast service.
func NewForecastService(entities driven.EntityStore) *ForecastService {
	return &ForecastService{entities: entities}
}

// Forecast buckets commitments per day from `from` over `days` days.
// Incomplete actions due before `from` land in the overdue bucket.
func (s *ForecastService) Forecast(
	ctx context.Context, from time.Time, days int,
) (*domain.Forecast, error) {
	logger.Section("Forecast")

	if days <= 0 {
		days = domain.DefaultForecastDays
	}

	collections, err := s.entities.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading collections: %w", err)
	}

	start := startOfDay(from)
	end := start.AddDate(0, 0, days)

	forecast := &domain.Forecast{
		Days: make([]domain.ForecastDay, days),
	}
	for i := range forecast.Days {
		forecast.Days[i].Date = start.AddDate(0, 0, i)
	}

	for _, action := range collections.Actions {
		if action.CompletedAt != nil || action.DueDate == nil {
			continue
		}
		due := *action.DueDate
		switch {
		case due.Before(start):
			forecast.Overdue = append(forecast.Overdue, action)
		case due.Before(end):
			i := dayOffset(start, due)
			forecast.Days[i].DueActions = append(forecast.Days[i].DueActions, action)
		}
	}

	for _, item := range collections.Calendar {
		if item.StartAt.IsZero() || item.StartAt.Before(start) || !item.StartAt.Before(end) {
			continue
		}
		i := dayOffset(start, item.StartAt)
		forecast.Days[i].Calendar = append(forecast.Days[i].Calendar, item)
	}

	logger.Debug("Forecast: %d overdue, %d days", len(forecast.Overdue), days)

	return forecast, nil
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayOffset returns how many calendar days t lies after start.
// Rounded rather than truncated so a DST-shortened day still lands in
// its own bucket.
func dayOffset(start, t time.Time) int {
	return int(math.Round(startOfDay(t).Sub(start).Hours() / 24))
}
