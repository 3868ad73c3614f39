package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"focusflow/internal/modules/timer/domain"
	"focusflow/internal/modules/timer/dto"
	timerin "focusflow/internal/modules/timer/port/in"
	timerout "focusflow/internal/modules/timer/port/out"
	"focusflow/internal/modules/timer/service"
	clockpkg "focusflow/internal/platform/clock"
	apperrors "focusflow/internal/platform/errors"
)

// Interactor is the timer engine: it owns the session collection, the single
// nullable active-session id, and write-through persistence. The tick source
// and the reset check run on background goroutines, so every operation takes
// the mutex; mutations stay atomic with respect to each other.
type Interactor struct {
	mu    sync.Mutex
	svc   *service.TimerService
	chime timerout.Chime
	clock clockpkg.Clock

	sessions []domain.Session
	activeID int // 0 when nothing is counting down
}

func NewInteractor(ctx context.Context, clk clockpkg.Clock, svc *service.TimerService, chime timerout.Chime) (*Interactor, error) {
	sessions, err := svc.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	i := &Interactor{svc: svc, chime: chime, clock: clk, sessions: sessions}

	// Reconcile persisted state: the first running session becomes the active
	// one, any others are demoted. This scan happens only at load time; from
	// here on the active id is tracked explicitly.
	for idx := range i.sessions {
		if i.sessions[idx].State != domain.StateRunning {
			continue
		}
		if i.activeID == 0 && i.sessions[idx].TargetTimeMs != 0 {
			i.activeID = i.sessions[idx].ID
		} else {
			i.sessions[idx].Pause()
		}
	}
	return i, nil
}

var _ timerin.Usecase = (*Interactor)(nil)

// persist is write-through and fire-and-forget: the next mutation writes a
// superset of this state, so a failed write is logged, never propagated.
func (i *Interactor) persist(ctx context.Context) {
	if err := i.svc.Persist(ctx, i.sessions); err != nil {
		log.Warn().Err(err).Msg("persist sessions failed")
	}
}

func (i *Interactor) List(ctx context.Context) ([]dto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := make([]dto.SessionOutput, 0, len(i.sessions))
	for _, s := range i.sessions {
		out = append(out, toOutput(s, s.ID == i.activeID))
	}
	return out, nil
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	var session domain.Session
	i.sessions, session = i.svc.Append(i.sessions, input.Title, input.DurationSeconds, input.DailyGoalMinutes)
	i.persist(ctx)
	return toOutput(session, false), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	session := i.svc.Find(i.sessions, input.ID)
	if session == nil {
		return dto.SessionOutput{}, fmt.Errorf("update session %d: %w", input.ID, apperrors.ErrSessionNotFound)
	}
	session.Apply(domain.Patch{
		Title:            input.Title,
		SessionDuration:  input.DurationSeconds,
		TimeLeft:         input.TimeLeft,
		DailyGoalMinutes: input.DailyGoalMinutes,
	})
	if session.ID == i.activeID {
		// An in-flight countdown reflects the edit immediately.
		session.Retarget(i.clock.Now())
		if session.IsCompleted {
			// The edit clamped timeLeft to zero; it can no longer be active.
			session.Pause()
			i.activeID = 0
		}
	}
	i.persist(ctx)
	return toOutput(*session, session.ID == i.activeID), nil
}

func (i *Interactor) Delete(ctx context.Context, id int) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	var removed bool
	i.sessions, removed = i.svc.Remove(i.sessions, id)
	if !removed {
		return fmt.Errorf("delete session %d: %w", id, apperrors.ErrSessionNotFound)
	}
	if i.activeID == id {
		i.activeID = 0
	}
	i.persist(ctx)
	return nil
}

func (i *Interactor) Start(ctx context.Context, id int) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	session := i.svc.Find(i.sessions, id)
	if session == nil {
		return fmt.Errorf("start session %d: %w", id, apperrors.ErrSessionNotFound)
	}
	if session.IsCompleted {
		return fmt.Errorf("start session %d: %w", id, apperrors.ErrSessionCompleted)
	}
	if i.activeID != 0 && i.activeID != id {
		if previous := i.svc.Find(i.sessions, i.activeID); previous != nil {
			previous.Pause()
		}
	}
	session.Start(i.clock.Now())
	i.sessions = i.svc.MoveToFront(i.sessions, id)
	i.activeID = id
	i.persist(ctx)
	return nil
}

func (i *Interactor) Pause(ctx context.Context, id int) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.activeID != id {
		return nil
	}
	if session := i.svc.Find(i.sessions, id); session != nil {
		session.Pause()
	}
	i.activeID = 0
	i.persist(ctx)
	return nil
}

func (i *Interactor) PauseActive(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.activeID == 0 {
		return fmt.Errorf("pause active session: %w", apperrors.ErrNoActiveSession)
	}
	if session := i.svc.Find(i.sessions, i.activeID); session != nil {
		session.Pause()
	}
	i.activeID = 0
	i.persist(ctx)
	return nil
}

func (i *Interactor) Reset(ctx context.Context, id int) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	session := i.svc.Find(i.sessions, id)
	if session == nil {
		return fmt.Errorf("reset session %d: %w", id, apperrors.ErrSessionNotFound)
	}
	session.Reset()
	if i.activeID == id {
		i.activeID = 0
	}
	i.persist(ctx)
	return nil
}

// Tick advances the active countdown to the current wall clock. Invoked once
// per second by the runner and the TUI; a tick with no active session is a
// no-op.
func (i *Interactor) Tick(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.activeID == 0 {
		return nil
	}
	session := i.svc.Find(i.sessions, i.activeID)
	if session == nil {
		i.activeID = 0
		return nil
	}
	_, completed := session.Tick(i.clock.Now())
	if completed {
		i.activeID = 0
		if i.chime != nil {
			i.chime.Play(ctx)
		}
		log.Info().Int("session", session.ID).Str("title", session.Title).Msg("session completed")
	}
	i.persist(ctx)
	return nil
}

func (i *Interactor) ActiveID(context.Context) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.activeID
}

func (i *Interactor) Snapshot(context.Context) []domain.Session {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := make([]domain.Session, len(i.sessions))
	copy(out, i.sessions)
	return out
}

// DrainDailyFocus snapshots today's focus counters and zeroes them in one
// critical section, so a concurrent tick can never credit seconds to a day
// that was already rolled over.
func (i *Interactor) DrainDailyFocus(ctx context.Context) ([]domain.Session, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := make([]domain.Session, len(i.sessions))
	copy(out, i.sessions)
	for idx := range i.sessions {
		i.sessions[idx].FocusSeconds = 0
	}
	i.persist(ctx)
	return out, nil
}

func toOutput(s domain.Session, active bool) dto.SessionOutput {
	return dto.SessionOutput{
		ID:               s.ID,
		Title:            s.Title,
		SessionDuration:  s.SessionDuration,
		TimeLeft:         s.TimeLeft,
		IsCompleted:      s.IsCompleted,
		DailyGoalMinutes: s.DailyGoalMinutes,
		FocusSeconds:     s.FocusSeconds,
		State:            s.State.String(),
		Active:           active,
	}
}
