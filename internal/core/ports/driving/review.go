package driving

import (
	"context"
	"time"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
)

// ReviewService drives the periodic project review workflow.
type ReviewService interface {
	// DueForReview lists incomplete projects whose review interval
	// has elapsed, oldest review first.
	DueForReview(ctx context.Context, now time.Time) ([]domain.Project, error)

	// MarkReviewed records that a project was reviewed at the given
	// instant. Returns domain.ErrNotFound for unknown projects.
	MarkReviewed(ctx context.Context, projectID string, now time.Time) error
}
