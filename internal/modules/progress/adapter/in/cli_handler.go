package in

import (
	"context"

	"focusflow/internal/modules/progress/dto"
	progressin "focusflow/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Overview(ctx context.Context) (dto.OverviewOutput, error) {
	return h.usecase.Overview(ctx)
}

func (h CLIHandler) ResetDaily(ctx context.Context) (dto.ResetOutput, error) {
	return h.usecase.ResetDaily(ctx)
}

func (h CLIHandler) SetResetTime(ctx context.Context, timeOfDay string) error {
	return h.usecase.SetResetTime(ctx, timeOfDay)
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]dto.HistoryDayOutput, error) {
	return h.usecase.History(ctx, limit)
}
