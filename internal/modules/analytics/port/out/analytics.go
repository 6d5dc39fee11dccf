package out

import (
	"context"

	"tempo/internal/modules/analytics/domain"
)

// SessionSource supplies the full session collection as aggregation
// records. The aggregator never mutates persisted state.
type SessionSource interface {
	Records(ctx context.Context) ([]domain.Record, error)
}
