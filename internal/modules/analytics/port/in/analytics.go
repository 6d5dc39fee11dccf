package in

import (
	"context"

	"tempo/internal/modules/analytics/dto"
)

type Usecase interface {
	Aggregate(ctx context.Context, period string) (dto.SnapshotOutput, error)
}
