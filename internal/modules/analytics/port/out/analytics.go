package out

import (
	"context"

	"studybuddy/internal/modules/analytics/domain"
)

// DatasetSource reads the current study log for aggregation.
type DatasetSource interface {
	Dataset(ctx context.Context) (domain.Dataset, error)
}
