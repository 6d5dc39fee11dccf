package in

import (
	"context"
	"time"

	sessiondto "tempo/internal/modules/session/dto"
	sessionin "tempo/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, tag sessiondto.TagUpdate) (sessiondto.SessionOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{Tag: tag})
}

func (h CLIHandler) Stop(ctx context.Context, sessionID, experience string, tag sessiondto.TagUpdate) (sessiondto.SessionOutput, error) {
	return h.usecase.Stop(ctx, sessiondto.StopInput{SessionID: sessionID, Experience: experience, Tag: tag})
}

func (h CLIHandler) Update(ctx context.Context, sessionID, experience string, tag sessiondto.TagUpdate) (sessiondto.SessionOutput, error) {
	return h.usecase.Update(ctx, sessiondto.UpdateInput{SessionID: sessionID, Experience: experience, Tag: tag})
}

func (h CLIHandler) Delete(ctx context.Context, sessionID string) (bool, error) {
	return h.usecase.Delete(ctx, sessionID)
}

func (h CLIHandler) ListAll(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	return h.usecase.ListAll(ctx)
}

func (h CLIHandler) GetActive(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.GetActive(ctx)
}

func (h CLIHandler) TotalDuration(ctx context.Context) (time.Duration, error) {
	return h.usecase.TotalDuration(ctx)
}

func (h CLIHandler) ClearAll(ctx context.Context) error {
	return h.usecase.ClearAll(ctx)
}
