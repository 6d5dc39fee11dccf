package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"tempo/internal/modules/session/domain"
	sessionout "tempo/internal/modules/session/port/out"
	"tempo/internal/platform/clock"
	apperrors "tempo/internal/platform/errors"
	"tempo/internal/platform/id"
	"tempo/internal/platform/tx"
)

// SessionService owns the lifecycle rules: single-active-session
// exclusivity, monotonic numbering, duration derivation. Every mutation
// runs its check-then-write cycle inside the tx.Manager so that concurrent
// callers cannot race the active slot or the counter.
type SessionService struct {
	clock clock.Clock
	idGen id.Generator
	store sessionout.Store
	txm   tx.Manager
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.Store, txm tx.Manager) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, store: store, txm: txm}
}

// Start creates a new active session, or returns the existing active
// session unchanged when one is already running. Starting twice never
// yields two active sessions.
func (s *SessionService) Start(ctx context.Context, tag domain.TagPatch) (domain.Session, error) {
	var session domain.Session
	err := s.txm.Within(ctx, func(ctx context.Context) error {
		active, err := s.loadActive(ctx)
		if err == nil {
			session = active
			return nil
		}
		if !errors.Is(err, apperrors.ErrNoActiveSession) {
			return err
		}
		meta, err := s.store.LoadMeta(ctx)
		if err != nil {
			return err
		}
		meta.LastNumber++
		session = domain.New(s.idGen.New(), meta.LastNumber, s.clock.Now(), tag.Apply(""))
		if err := s.store.Put(ctx, session); err != nil {
			return err
		}
		if err := s.store.SaveActive(ctx, session); err != nil {
			return err
		}
		return s.store.SaveMeta(ctx, meta)
	})
	return session, err
}

// Stop completes the identified session, stamping the end time and
// applying the final experience and tag patch. The active slot is cleared
// only when the stopped session occupied it.
func (s *SessionService) Stop(ctx context.Context, sessionID, experience string, tag domain.TagPatch) (domain.Session, error) {
	var session domain.Session
	err := s.txm.Within(ctx, func(ctx context.Context) error {
		existing, err := s.store.Get(ctx, sessionID)
		if err != nil {
			return err
		}
		session = domain.Complete(existing, s.clock.Now(), experience, tag)
		if err := s.store.Put(ctx, session); err != nil {
			return err
		}
		return s.clearActiveIf(ctx, sessionID)
	})
	return session, err
}

// Update rewrites the experience and, when the patch carries one, the tag.
// Status and timestamps are untouched; it works on active and completed
// sessions alike.
func (s *SessionService) Update(ctx context.Context, sessionID, experience string, tag domain.TagPatch) (domain.Session, error) {
	var session domain.Session
	err := s.txm.Within(ctx, func(ctx context.Context) error {
		existing, err := s.store.Get(ctx, sessionID)
		if err != nil {
			return err
		}
		existing.Experience = strings.TrimSpace(experience)
		existing.Tag = tag.Apply(existing.Tag)
		session = existing
		if err := s.store.Put(ctx, existing); err != nil {
			return err
		}
		if session.Status() == domain.StatusActive {
			return s.refreshActiveIf(ctx, session)
		}
		return nil
	})
	return session, err
}

// Delete removes the session and reports whether a removal occurred. An
// active session can be deleted directly; its slot is cleared too.
func (s *SessionService) Delete(ctx context.Context, sessionID string) (bool, error) {
	var removed bool
	err := s.txm.Within(ctx, func(ctx context.Context) error {
		ok, err := s.store.Delete(ctx, sessionID)
		if err != nil {
			return err
		}
		removed = ok
		if !ok {
			return nil
		}
		return s.clearActiveIf(ctx, sessionID)
	})
	return removed, err
}

func (s *SessionService) ListAll(ctx context.Context) ([]domain.Session, error) {
	return s.store.List(ctx)
}

// GetActive returns the single active session, self-healing a stale slot:
// if the slot points at a session that no longer exists or is already
// completed, the slot is cleared and ErrNoActiveSession reported.
func (s *SessionService) GetActive(ctx context.Context) (domain.Session, error) {
	var session domain.Session
	err := s.txm.Within(ctx, func(ctx context.Context) error {
		active, err := s.loadActive(ctx)
		if err != nil {
			return err
		}
		session = active
		return nil
	})
	return session, err
}

func (s *SessionService) TotalDuration(ctx context.Context) (time.Duration, error) {
	sessions, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	var total time.Duration
	for _, session := range sessions {
		total += session.Duration()
	}
	return total, nil
}

// ClearAll resets all three collections. Destructive; only the account
// wipe flow calls it.
func (s *SessionService) ClearAll(ctx context.Context) error {
	return s.txm.Within(ctx, func(ctx context.Context) error {
		if err := s.store.Reset(ctx); err != nil {
			return err
		}
		if err := s.store.ClearActive(ctx); err != nil {
			return err
		}
		return s.store.ResetMeta(ctx)
	})
}

// loadActive validates the slot against the collection before trusting it.
func (s *SessionService) loadActive(ctx context.Context) (domain.Session, error) {
	active, err := s.store.LoadActive(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	current, err := s.store.Get(ctx, active.ID)
	if errors.Is(err, apperrors.ErrNotFound) || (err == nil && current.Status() != domain.StatusActive) {
		if clearErr := s.store.ClearActive(ctx); clearErr != nil {
			return domain.Session{}, clearErr
		}
		return domain.Session{}, apperrors.ErrNoActiveSession
	}
	if err != nil {
		return domain.Session{}, err
	}
	return current, nil
}

func (s *SessionService) clearActiveIf(ctx context.Context, sessionID string) error {
	active, err := s.store.LoadActive(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return nil
	}
	if err != nil {
		return err
	}
	if active.ID != sessionID {
		return nil
	}
	return s.store.ClearActive(ctx)
}

func (s *SessionService) refreshActiveIf(ctx context.Context, session domain.Session) error {
	active, err := s.store.LoadActive(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return nil
	}
	if err != nil {
		return err
	}
	if active.ID != session.ID {
		return nil
	}
	return s.store.SaveActive(ctx, session)
}
