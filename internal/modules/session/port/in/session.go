package in

import (
	"context"
	"time"

	"tempo/internal/modules/session/dto"
)

// Usecase is the session lifecycle surface the presentation layer drives.
// Lookup misses surface as apperrors sentinels (ErrNotFound,
// ErrNoActiveSession), not as panics or wrapped storage failures.
type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error)
	Stop(ctx context.Context, input dto.StopInput) (dto.SessionOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.SessionOutput, error)
	Delete(ctx context.Context, sessionID string) (bool, error)
	ListAll(ctx context.Context) ([]dto.SessionOutput, error)
	GetActive(ctx context.Context) (dto.SessionOutput, error)
	TotalDuration(ctx context.Context) (time.Duration, error)
	ClearAll(ctx context.Context) error
}
