package service

import (
	"context"

	"tempo/internal/modules/analytics/domain"
	analyticsout "tempo/internal/modules/analytics/port/out"
	"tempo/internal/platform/clock"
)

// AnalyticsService computes derived rollups over the session collection.
// Read-only; the window slides with the clock on every call.
type AnalyticsService struct {
	clock  clock.Clock
	source analyticsout.SessionSource
}

func NewAnalyticsService(clock clock.Clock, source analyticsout.SessionSource) *AnalyticsService {
	return &AnalyticsService{clock: clock, source: source}
}

func (s *AnalyticsService) Aggregate(ctx context.Context, period domain.Period) (domain.Snapshot, error) {
	if err := period.Validate(); err != nil {
		return domain.Snapshot{}, err
	}
	records, err := s.source.Records(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Aggregate(records, period, s.clock.Now()), nil
}
