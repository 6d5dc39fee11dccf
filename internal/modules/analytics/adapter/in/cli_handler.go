package in

import (
	"context"

	analyticsdto "tempo/internal/modules/analytics/dto"
	analyticsin "tempo/internal/modules/analytics/port/in"
)

type CLIHandler struct {
	usecase analyticsin.Usecase
}

func NewCLIHandler(usecase analyticsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Aggregate(ctx context.Context, period string) (analyticsdto.SnapshotOutput, error) {
	return h.usecase.Aggregate(ctx, period)
}
