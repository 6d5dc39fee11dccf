package out

import (
	"context"
	"time"

	"tempo/internal/modules/analytics/domain"
	analyticsout "tempo/internal/modules/analytics/port/out"
	sessiondomain "tempo/internal/modules/session/domain"
	sessionin "tempo/internal/modules/session/port/in"
)

// SessionSourceAdapter bridges the session module's in-port into the
// aggregator's read-model.
type SessionSourceAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionSourceAdapter(sessions sessionin.Usecase) analyticsout.SessionSource {
	return &SessionSourceAdapter{sessions: sessions}
}

func (a *SessionSourceAdapter) Records(ctx context.Context) ([]domain.Record, error) {
	sessions, err := a.sessions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(sessions))
	for _, session := range sessions {
		records = append(records, domain.Record{
			StartedAt: session.StartedAt,
			Duration:  time.Duration(session.DurationMS) * time.Millisecond,
			Tag:       session.Tag,
			Completed: session.Status == string(sessiondomain.StatusCompleted),
		})
	}
	return records, nil
}
