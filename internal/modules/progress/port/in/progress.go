package in

import (
	"context"

	"focusflow/internal/modules/progress/dto"
)

type Usecase interface {
	Overview(ctx context.Context) (dto.OverviewOutput, error)
	ResetDaily(ctx context.Context) (dto.ResetOutput, error)
	SetResetTime(ctx context.Context, timeOfDay string) error
	// CheckAutoReset is polled by the runner; it reports whether the daily
	// reset fired on this check.
	CheckAutoReset(ctx context.Context) (bool, error)
	History(ctx context.Context, limit int) ([]dto.HistoryDayOutput, error)
}
