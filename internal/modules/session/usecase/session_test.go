package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sessionadapter "tempo/internal/modules/session/adapter/out"
	"tempo/internal/modules/session/domain"
	sessiondto "tempo/internal/modules/session/dto"
	sessionin "tempo/internal/modules/session/port/in"
	sessionout "tempo/internal/modules/session/port/out"
	"tempo/internal/modules/session/service"
	"tempo/internal/modules/session/usecase"
	apperrors "tempo/internal/platform/errors"
	"tempo/internal/platform/tx"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type seqID struct {
	n int
}

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("sess-%d", s.n)
}

type recordingNotifier struct {
	completed []domain.Session
}

func (r *recordingNotifier) SessionCompleted(session domain.Session) error {
	r.completed = append(r.completed, session)
	return nil
}

func newInteractor(t *testing.T, clk *fakeClock, notifier *recordingNotifier) sessionin.Usecase {
	t.Helper()
	store := sessionadapter.NewFileStore(t.TempDir())
	svc := service.NewSessionService(clk, &seqID{}, store, tx.NewSerialManager())
	var port sessionout.Notifier
	if notifier != nil {
		port = notifier
	}
	return usecase.NewInteractor(svc, port)
}

func TestStopReportsMillisecondsAndNotifies(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{start, start.Add(90 * time.Minute)}}
	notifier := &recordingNotifier{}
	uc := newInteractor(t, clk, notifier)
	ctx := context.Background()

	started, err := uc.Start(ctx, sessiondto.StartInput{Tag: sessiondto.SetTag("Work")})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != "active" || started.DurationMS != 0 {
		t.Fatalf("unexpected start output: %+v", started)
	}
	stopped, err := uc.Stop(ctx, sessiondto.StopInput{SessionID: started.ID, Experience: " Did X ", Tag: sessiondto.KeepTag()})
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stopped.DurationMS != 5_400_000 {
		t.Fatalf("expected 5400000ms, got %d", stopped.DurationMS)
	}
	if stopped.Experience != "Did X" || stopped.Tag != "Work" || stopped.Status != "completed" {
		t.Fatalf("unexpected stop output: %+v", stopped)
	}
	if len(notifier.completed) != 1 || notifier.completed[0].ID != started.ID {
		t.Fatalf("notifier must fire once for the stopped session")
	}
}

func TestClearTagUpdateClearsStoredTag(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{start}}
	uc := newInteractor(t, clk, nil)
	ctx := context.Background()

	started, err := uc.Start(ctx, sessiondto.StartInput{Tag: sessiondto.SetTag("  Work  ")})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Tag != "Work" {
		t.Fatalf("tag must be normalized at start, got %q", started.Tag)
	}
	updated, err := uc.Update(ctx, sessiondto.UpdateInput{SessionID: started.ID, Experience: "note", Tag: sessiondto.ClearTag()})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Tag != "" {
		t.Fatalf("clear tag must empty the tag, got %q", updated.Tag)
	}
	active, err := uc.GetActive(ctx)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active.Tag != "" || active.Experience != "note" {
		t.Fatalf("slot must reflect the update, got %+v", active)
	}
}

func TestLookupMissesSurfaceAsSentinels(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}}
	uc := newInteractor(t, clk, nil)
	ctx := context.Background()

	if _, err := uc.GetActive(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
	if _, err := uc.Stop(ctx, sessiondto.StopInput{SessionID: "nope"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from stop, got %v", err)
	}
	if _, err := uc.Update(ctx, sessiondto.UpdateInput{SessionID: "nope"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from update, got %v", err)
	}
	removed, err := uc.Delete(ctx, "nope")
	if err != nil || removed {
		t.Fatalf("expected false from delete, got %v %v", removed, err)
	}
}

func TestListAllOrdersNewestFirst(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{
		start, start.Add(10 * time.Minute),
		start.Add(time.Hour), start.Add(time.Hour + 10*time.Minute),
		start.Add(2 * time.Hour),
	}}
	uc := newInteractor(t, clk, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		started, err := uc.Start(ctx, sessiondto.StartInput{})
		if err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
		if _, err := uc.Stop(ctx, sessiondto.StopInput{SessionID: started.ID, Tag: sessiondto.KeepTag()}); err != nil {
			t.Fatalf("stop %d: %v", i, err)
		}
	}
	if _, err := uc.Start(ctx, sessiondto.StartInput{}); err != nil {
		t.Fatalf("third start: %v", err)
	}
	sessions, err := uc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected three sessions, got %d", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].StartedAt.After(sessions[i-1].StartedAt) {
			t.Fatalf("list must be ordered newest start first: %v before %v", sessions[i-1].StartedAt, sessions[i].StartedAt)
		}
	}
	if sessions[0].Status != "active" {
		t.Fatalf("newest session should be the running one, got %+v", sessions[0])
	}
}
