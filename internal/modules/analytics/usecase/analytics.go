package usecase

import (
	"context"
	"fmt"

	"tempo/internal/modules/analytics/domain"
	analyticsdto "tempo/internal/modules/analytics/dto"
	analyticsin "tempo/internal/modules/analytics/port/in"
	"tempo/internal/modules/analytics/service"
	apperrors "tempo/internal/platform/errors"
)

type Interactor struct {
	svc *service.AnalyticsService
}

func NewInteractor(svc *service.AnalyticsService) analyticsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Aggregate(ctx context.Context, period string) (analyticsdto.SnapshotOutput, error) {
	p := domain.Period(period)
	if err := p.Validate(); err != nil {
		return analyticsdto.SnapshotOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	snap, err := i.svc.Aggregate(ctx, p)
	if err != nil {
		return analyticsdto.SnapshotOutput{}, err
	}
	out := analyticsdto.SnapshotOutput{
		Period:       string(snap.Period),
		Hours:        snap.Hours,
		TotalMinutes: snap.TotalTagged,
		SessionCount: snap.SessionCount,
	}
	out.Tags = make([]analyticsdto.TagShareOutput, 0, len(snap.Tags))
	for _, share := range snap.Tags {
		out.Tags = append(out.Tags, analyticsdto.TagShareOutput{Tag: share.Tag, Minutes: share.Minutes, Percent: share.Percent})
	}
	return out, nil
}
