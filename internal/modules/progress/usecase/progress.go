package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"focusflow/internal/modules/progress/domain"
	"focusflow/internal/modules/progress/dto"
	progressin "focusflow/internal/modules/progress/port/in"
	progressout "focusflow/internal/modules/progress/port/out"
	"focusflow/internal/modules/progress/service"
	timerdomain "focusflow/internal/modules/timer/domain"
	timerin "focusflow/internal/modules/timer/port/in"
	clockpkg "focusflow/internal/platform/clock"
	apperrors "focusflow/internal/platform/errors"
)

// Interactor derives aggregate daily progress from the timer module and owns
// the daily rollover: archive yesterday, zero counters, continue or break the
// streak, and advance the reset date so the trigger cannot re-fire.
type Interactor struct {
	mu        sync.Mutex
	clock     clockpkg.Clock
	svc       *service.ProgressService
	timer     timerin.Usecase
	projector progressout.HistoryProjector // optional

	state domain.DailyState
}

func NewInteractor(ctx context.Context, clk clockpkg.Clock, svc *service.ProgressService, timer timerin.Usecase, projector progressout.HistoryProjector) (*Interactor, error) {
	state, err := svc.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load daily state: %w", err)
	}
	return &Interactor{clock: clk, svc: svc, timer: timer, projector: projector, state: state}, nil
}

var _ progressin.Usecase = (*Interactor)(nil)

func focusEntries(sessions []timerdomain.Session) []domain.SessionFocus {
	entries := make([]domain.SessionFocus, 0, len(sessions))
	for _, s := range sessions {
		entries = append(entries, domain.SessionFocus{
			ID:               s.ID,
			Title:            s.Title,
			FocusSeconds:     s.FocusSeconds,
			DailyGoalMinutes: s.DailyGoalMinutes,
		})
	}
	return entries
}

func (i *Interactor) Overview(ctx context.Context) (dto.OverviewOutput, error) {
	entries := focusEntries(i.timer.Snapshot(ctx))

	i.mu.Lock()
	defer i.mu.Unlock()
	return dto.OverviewOutput{
		TotalFocusSeconds:     domain.TotalFocusSeconds(entries),
		TotalDailyGoalMinutes: domain.TotalGoalMinutes(entries),
		Streak:                i.state.Streak,
		YesterdayMinutes:      i.state.YesterdayMinutes,
		LastResetDate:         i.state.LastResetDate,
		ResetTime:             i.state.ResetTime,
	}, nil
}

// ResetDaily is the manual "start new day" trigger.
func (i *Interactor) ResetDaily(ctx context.Context) (dto.ResetOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.resetLocked(ctx, domain.FormatDate(i.clock.Now()))
}

func (i *Interactor) resetLocked(ctx context.Context, today string) (dto.ResetOutput, error) {
	sessions, err := i.timer.DrainDailyFocus(ctx)
	if err != nil {
		return dto.ResetOutput{}, fmt.Errorf("drain daily focus: %w", err)
	}
	entries := focusEntries(sessions)

	next, result := domain.Rollover(i.state, entries, today)
	i.state = next
	if err := i.svc.Persist(ctx, i.state); err != nil {
		return dto.ResetOutput{}, fmt.Errorf("persist daily state: %w", err)
	}
	i.project(ctx, today, entries, result)

	return dto.ResetOutput{
		Date:             today,
		YesterdayMinutes: i.state.YesterdayMinutes,
		GoalMet:          result.GoalMet,
		Streak:           i.state.Streak,
	}, nil
}

// project feeds the sqlite history read model. Failures are logged; the
// rollover itself already happened.
func (i *Interactor) project(ctx context.Context, today string, entries []domain.SessionFocus, result domain.RolloverResult) {
	if i.projector == nil {
		return
	}
	day := domain.HistoryDay{
		Date:         today,
		TotalMinutes: i.state.YesterdayMinutes,
		GoalMinutes:  domain.TotalGoalMinutes(entries),
		GoalMet:      result.GoalMet,
		Streak:       i.state.Streak,
	}
	rows := make([]domain.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, domain.HistoryEntry{
			SessionID:    e.ID,
			Title:        e.Title,
			MinutesSpent: e.FocusSeconds / 60,
			GoalMinutes:  e.DailyGoalMinutes,
			GoalMet:      e.DailyGoalMinutes > 0 && e.FocusSeconds >= e.DailyGoalMinutes*60,
		})
	}
	if err := i.projector.RecordReset(ctx, day, rows); err != nil {
		log.Warn().Err(err).Str("date", today).Msg("history projection failed")
	}
}

func (i *Interactor) SetResetTime(ctx context.Context, timeOfDay string) error {
	if !domain.ValidTimeOfDay(timeOfDay) {
		return fmt.Errorf("reset time %q: %w", timeOfDay, apperrors.ErrInvalidInput)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.state.ResetTime = timeOfDay
	if err := i.svc.Persist(ctx, i.state); err != nil {
		return fmt.Errorf("persist daily state: %w", err)
	}
	return nil
}

func (i *Interactor) CheckAutoReset(ctx context.Context) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.clock.Now()
	if !domain.ShouldReset(i.state, now) {
		return false, nil
	}
	if _, err := i.resetLocked(ctx, domain.FormatDate(now)); err != nil {
		return false, err
	}
	return true, nil
}

func (i *Interactor) History(ctx context.Context, limit int) ([]dto.HistoryDayOutput, error) {
	if i.projector == nil {
		return nil, nil
	}
	days, err := i.projector.ListDays(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	out := make([]dto.HistoryDayOutput, 0, len(days))
	for _, d := range days {
		out = append(out, dto.HistoryDayOutput{
			Date:         d.Date,
			TotalMinutes: d.TotalMinutes,
			GoalMinutes:  d.GoalMinutes,
			GoalMet:      d.GoalMet,
			Streak:       d.Streak,
		})
	}
	return out, nil
}
