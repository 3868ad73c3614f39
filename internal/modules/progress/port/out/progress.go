package out

import (
	"context"

	"focusflow/internal/modules/progress/domain"
)

type StateStore interface {
	// Load recovers missing or malformed values to defaults; it never fails
	// into a state the engine cannot run from.
	Load(ctx context.Context) (domain.DailyState, error)
	Save(ctx context.Context, state domain.DailyState) error
}

// HistoryProjector is the sqlite read model for archived days. It is an
// observer: a projector failure is logged and never blocks a reset.
type HistoryProjector interface {
	RecordReset(ctx context.Context, day domain.HistoryDay, entries []domain.HistoryEntry) error
	ListDays(ctx context.Context, limit int) ([]domain.HistoryDay, error)
}
