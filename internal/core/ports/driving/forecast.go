package driving

import (
	"context"
	"time"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
)

// ForecastService derives a dated view over upcoming commitments.
type ForecastService interface {
	// Forecast buckets calendar items and due actions per day from
	// `from` over `days` days, with overdue actions collected
	// separately. Completed actions are excluded.
	Forecast(ctx context.Context, from time.Time, days int) (*domain.Forecast, error)
}
