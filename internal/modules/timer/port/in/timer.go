package in

import (
	"context"

	"focusflow/internal/modules/timer/domain"
	"focusflow/internal/modules/timer/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.SessionOutput, error)
	Add(ctx context.Context, input dto.AddInput) (dto.SessionOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.SessionOutput, error)
	Delete(ctx context.Context, id int) error
	Start(ctx context.Context, id int) error
	Pause(ctx context.Context, id int) error
	// PauseActive pauses whichever session is counting down, reporting
	// ErrNoActiveSession when nothing is.
	PauseActive(ctx context.Context) error
	Reset(ctx context.Context, id int) error
	Tick(ctx context.Context) error
	ActiveID(ctx context.Context) int

	// Snapshot and DrainDailyFocus feed the progress module.
	Snapshot(ctx context.Context) []domain.Session
	DrainDailyFocus(ctx context.Context) ([]domain.Session, error)
}
