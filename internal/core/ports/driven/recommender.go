package driven

import (
	"context"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// Recommender evaluates the recommendation contract for one drive.
type Recommender interface {
	Recommend(ctx context.Context, metrics domain.DriveRecord) (string, error)
}
