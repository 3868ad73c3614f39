package service

import (
	"context"

	"focusflow/internal/modules/progress/domain"
	progressout "focusflow/internal/modules/progress/port/out"
)

type ProgressService struct {
	store progressout.StateStore
}

func NewProgressService(store progressout.StateStore) *ProgressService {
	return &ProgressService{store: store}
}

func (s *ProgressService) Load(ctx context.Context) (domain.DailyState, error) {
	return s.store.Load(ctx)
}

func (s *ProgressService) Persist(ctx context.Context, state domain.DailyState) error {
	return s.store.Save(ctx, state)
}
