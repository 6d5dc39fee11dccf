package usecase

import (
	"context"
	"time"

	"tempo/internal/modules/session/domain"
	sessiondto "tempo/internal/modules/session/dto"
	sessionin "tempo/internal/modules/session/port/in"
	sessionout "tempo/internal/modules/session/port/out"
	"tempo/internal/modules/session/service"
)

type Interactor struct {
	svc      *service.SessionService
	notifier sessionout.Notifier
}

func NewInteractor(svc *service.SessionService, notifier sessionout.Notifier) sessionin.Usecase {
	return &Interactor{svc: svc, notifier: notifier}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Start(ctx, toPatch(input.Tag))
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Stop(ctx context.Context, input sessiondto.StopInput) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Stop(ctx, input.SessionID, input.Experience, toPatch(input.Tag))
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	if i.notifier != nil {
		// Best effort; a failed notification must not fail the stop.
		_ = i.notifier.SessionCompleted(session)
	}
	return toOutput(session), nil
}

func (i *Interactor) Update(ctx context.Context, input sessiondto.UpdateInput) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Update(ctx, input.SessionID, input.Experience, toPatch(input.Tag))
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Delete(ctx context.Context, sessionID string) (bool, error) {
	return i.svc.Delete(ctx, sessionID)
}

func (i *Interactor) ListAll(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	sessions, err := i.svc.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toOutput(session))
	}
	return out, nil
}

func (i *Interactor) GetActive(ctx context.Context) (sessiondto.SessionOutput, error) {
	session, err := i.svc.GetActive(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) TotalDuration(ctx context.Context) (time.Duration, error) {
	return i.svc.TotalDuration(ctx)
}

func (i *Interactor) ClearAll(ctx context.Context) error {
	return i.svc.ClearAll(ctx)
}

func toPatch(tag sessiondto.TagUpdate) domain.TagPatch {
	if !tag.Set {
		return domain.KeepTag()
	}
	return domain.SetTag(tag.Value)
}

func toOutput(session domain.Session) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		ID:         session.ID,
		Number:     session.Number,
		StartedAt:  session.StartedAt,
		EndedAt:    session.EndedAt,
		DurationMS: session.Duration().Milliseconds(),
		Experience: session.Experience,
		Tag:        session.Tag,
		Status:     string(session.Status()),
	}
}
