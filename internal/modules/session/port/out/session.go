package out

import (
	"context"

	"tempo/internal/modules/session/domain"
)

// SessionStore owns the full session collection. List returns a fresh
// snapshot ordered newest start time first. Get reports
// apperrors.ErrNotFound for unknown ids.
type SessionStore interface {
	List(ctx context.Context) ([]domain.Session, error)
	Get(ctx context.Context, id string) (domain.Session, error)
	Put(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, id string) (bool, error)
	Reset(ctx context.Context) error
}

// ActiveSlotStore owns the at-most-one active session slot. LoadActive
// reports apperrors.ErrNoActiveSession when the slot is empty.
type ActiveSlotStore interface {
	SaveActive(ctx context.Context, session domain.Session) error
	LoadActive(ctx context.Context) (domain.Session, error)
	ClearActive(ctx context.Context) error
}

// SequenceStore owns the numbering metadata. The counter only increases,
// even across deletions.
type SequenceStore interface {
	LoadMeta(ctx context.Context) (domain.Meta, error)
	SaveMeta(ctx context.Context, meta domain.Meta) error
	ResetMeta(ctx context.Context) error
}

// Store is what a storage backend provides: all three collections with
// read-your-writes consistency within the process.
type Store interface {
	SessionStore
	ActiveSlotStore
	SequenceStore
}

// Notifier pushes a best-effort completion notice to the desktop. Failures
// are not fatal to the stop operation.
type Notifier interface {
	SessionCompleted(session domain.Session) error
}
