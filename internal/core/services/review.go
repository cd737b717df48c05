package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driven"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driving"
	"github.com/clearday-labs/nextact-cli/internal/logger"
)

// Ensure ReviewService implements the interface.
var _ driving.ReviewService = (*ReviewService)(nil)

// DefaultReviewInterval applies to projects without their own review
// cadence.
const DefaultReviewInterval = 7 * 24 * time.Hour

// ReviewService drives the periodic project review workflow.
type ReviewService struct {
	entities        driven.EntityStore
	defaultInterval time.Duration
}

// NewReviewService creates a review service. A non-positive interval
// falls back to DefaultReviewInterval.
func NewReviewService(entities driven.EntityStore, defaultInterval time.Duration) *ReviewService {
	if defaultInterval <= 0 {
		defaultInterval = DefaultReviewInterval
	}
	return &ReviewService{
		entities:        entities,
		defaultInterval: defaultInterval,
	}
}

// DueForReview lists incomplete projects whose review interval has
// elapsed, never-reviewed projects first, then oldest review first.
func (s *ReviewService) DueForReview(ctx context.Context, now time.Time) ([]domain.Project, error) {
	logger.Section("Project Review")

	collections, err := s.entities.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading collections: %w", err)
	}

	var due []domain.Project
	for _, p := range collections.Projects {
		if p.DueForReview(now, s.defaultInterval) {
			due = append(due, p)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].LastReviewedAt.Before(due[j].LastReviewedAt)
	})

	logger.Debug("Due for review: %d of %d projects", len(due), len(collections.Projects))

	return due, nil
}

// MarkReviewed records that a project was reviewed at the given
// instant.
func (s *ReviewService) MarkReviewed(ctx context.Context, projectID string, now time.Time) error {
	items, err := s.entities.List(ctx, domain.EntityTypeProject)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}

	for _, item := range items {
		project, ok := item.(*domain.Project)
		if !ok || project.ID != projectID {
			continue
		}

		project.LastReviewedAt = now
		project.UpdatedAt = now
		if err := s.entities.Save(ctx, project); err != nil {
			return fmt.Errorf("saving project %s: %w", projectID, err)
		}

		logger.Info("Project %s marked reviewed", projectID)
		return nil
	}

	return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
}
