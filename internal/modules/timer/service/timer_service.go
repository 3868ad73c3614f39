package service

import (
	"context"

	"focusflow/internal/modules/timer/domain"
	timerout "focusflow/internal/modules/timer/port/out"
)

// TimerService owns the collection-level mutations (id assignment, partial
// merges, ordering) and persistence. The interactor above it owns the
// active-session invariant.
type TimerService struct {
	store timerout.SessionStore
}

func NewTimerService(store timerout.SessionStore) *TimerService {
	return &TimerService{store: store}
}

func (s *TimerService) Load(ctx context.Context) ([]domain.Session, error) {
	return s.store.Load(ctx)
}

func (s *TimerService) Persist(ctx context.Context, sessions []domain.Session) error {
	return s.store.Save(ctx, sessions)
}

// Append creates a session from the template fields and adds it to the back.
func (s *TimerService) Append(sessions []domain.Session, title string, durationSeconds, dailyGoalMinutes int) ([]domain.Session, domain.Session) {
	session := domain.NewSession(domain.NextID(sessions), title, durationSeconds, dailyGoalMinutes)
	return append(sessions, session), session
}

// Remove deletes by id and reports whether anything was removed.
func (s *TimerService) Remove(sessions []domain.Session, id int) ([]domain.Session, bool) {
	for i := range sessions {
		if sessions[i].ID == id {
			return append(sessions[:i], sessions[i+1:]...), true
		}
	}
	return sessions, false
}

// MoveToFront promotes the most recently started session in display order.
func (s *TimerService) MoveToFront(sessions []domain.Session, id int) []domain.Session {
	for i := range sessions {
		if sessions[i].ID == id {
			top := sessions[i]
			copy(sessions[1:i+1], sessions[:i])
			sessions[0] = top
			return sessions
		}
	}
	return sessions
}

// Find returns a pointer into the slice so callers mutate in place.
func (s *TimerService) Find(sessions []domain.Session, id int) *domain.Session {
	for i := range sessions {
		if sessions[i].ID == id {
			return &sessions[i]
		}
	}
	return nil
}
