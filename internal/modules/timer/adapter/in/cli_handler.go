package in

import (
	"context"

	"focusflow/internal/modules/timer/dto"
	timerin "focusflow/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.SessionOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Add(ctx context.Context, title string, durationSeconds, dailyGoalMinutes int) (dto.SessionOutput, error) {
	return h.usecase.Add(ctx, dto.AddInput{Title: title, DurationSeconds: durationSeconds, DailyGoalMinutes: dailyGoalMinutes})
}

func (h CLIHandler) Update(ctx context.Context, input dto.UpdateInput) (dto.SessionOutput, error) {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id int) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Start(ctx context.Context, id int) error {
	return h.usecase.Start(ctx, id)
}

func (h CLIHandler) Pause(ctx context.Context, id int) error {
	return h.usecase.Pause(ctx, id)
}

func (h CLIHandler) PauseActive(ctx context.Context) error {
	return h.usecase.PauseActive(ctx)
}

func (h CLIHandler) Reset(ctx context.Context, id int) error {
	return h.usecase.Reset(ctx, id)
}

func (h CLIHandler) Tick(ctx context.Context) error {
	return h.usecase.Tick(ctx)
}

func (h CLIHandler) ActiveID(ctx context.Context) int {
	return h.usecase.ActiveID(ctx)
}
