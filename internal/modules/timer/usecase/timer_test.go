package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"focusflow/internal/modules/timer/domain"
	"focusflow/internal/modules/timer/dto"
	"focusflow/internal/modules/timer/service"
	"focusflow/internal/modules/timer/usecase"
	apperrors "focusflow/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

type fakeStore struct {
	sessions []domain.Session
	saves    int
}

func (f *fakeStore) Load(context.Context) ([]domain.Session, error) {
	if f.sessions == nil {
		return domain.DefaultSessions(), nil
	}
	out := make([]domain.Session, len(f.sessions))
	copy(out, f.sessions)
	return out, nil
}

func (f *fakeStore) Save(_ context.Context, sessions []domain.Session) error {
	f.sessions = make([]domain.Session, len(sessions))
	copy(f.sessions, sessions)
	f.saves++
	return nil
}

type fakeChime struct {
	plays int
}

func (f *fakeChime) Play(context.Context) { f.plays++ }

func newEngine(t *testing.T, store *fakeStore, chime *fakeChime) (*usecase.Interactor, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	engine, err := usecase.NewInteractor(context.Background(), clk, service.NewTimerService(store), chime)
	if err != nil {
		t.Fatalf("new interactor: %v", err)
	}
	return engine, clk
}

func assertInvariants(t *testing.T, engine *usecase.Interactor) {
	t.Helper()
	running := 0
	for _, s := range engine.Snapshot(context.Background()) {
		if s.TimeLeft < 0 || s.TimeLeft > s.SessionDuration {
			t.Fatalf("timeLeft out of range: %+v", s)
		}
		if s.TimeLeft == 0 && !s.IsCompleted {
			t.Fatalf("timeLeft==0 without completion: %+v", s)
		}
		if s.State == domain.StateRunning {
			running++
		}
	}
	if running > 1 {
		t.Fatalf("%d sessions running, want at most one", running)
	}
}

func TestStartDemotesPreviousActiveWithTimeLeftIntact(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	engine, clk := newEngine(t, store, &fakeChime{})
	ctx := context.Background()

	if err := engine.Start(ctx, 2); err != nil { // Reading, 2700s
		t.Fatalf("start: %v", err)
	}
	clk.advance(10 * time.Second)
	if err := engine.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}

	if err := engine.Start(ctx, 1); err != nil { // Deep Work
		t.Fatalf("start second: %v", err)
	}
	assertInvariants(t, engine)

	if got := engine.ActiveID(ctx); got != 1 {
		t.Fatalf("activeID=%d want=1", got)
	}
	sessions := engine.Snapshot(ctx)
	if sessions[0].ID != 1 {
		t.Fatalf("started session should be moved to front, got id=%d", sessions[0].ID)
	}
	for _, s := range sessions {
		if s.ID != 2 {
			continue
		}
		if s.State != domain.StatePaused {
			t.Fatalf("previous active should be paused: %+v", s)
		}
		if s.TimeLeft != 2700-10 {
			t.Fatalf("demotion must not touch timeLeft, got %d", s.TimeLeft)
		}
		if s.TargetTimeMs != 0 {
			t.Fatalf("paused session kept a deadline: %+v", s)
		}
	}
}

func TestTickCompletionClearsActiveAndPlaysChime(t *testing.T) {
	t.Parallel()
	store := &fakeStore{sessions: []domain.Session{
		{ID: 1, Title: "Deep Work", SessionDuration: 1500, TimeLeft: 1500, DailyGoalMinutes: 90},
	}}
	chime := &fakeChime{}
	engine, clk := newEngine(t, store, chime)
	ctx := context.Background()

	if err := engine.Start(ctx, 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.advance(1500 * time.Second)
	if err := engine.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}
	assertInvariants(t, engine)

	if got := engine.ActiveID(ctx); got != 0 {
		t.Fatalf("active should be cleared, got %d", got)
	}
	s := engine.Snapshot(ctx)[0]
	if s.TimeLeft != 0 || !s.IsCompleted || s.State != domain.StatePaused {
		t.Fatalf("unexpected terminal state: %+v", s)
	}
	if s.FocusSeconds != 1500 {
		t.Fatalf("focusSeconds=%d want=1500", s.FocusSeconds)
	}
	if chime.plays != 1 {
		t.Fatalf("chime plays=%d want=1", chime.plays)
	}
}

func TestStartCompletedSessionIsRejected(t *testing.T) {
	t.Parallel()
	store := &fakeStore{sessions: []domain.Session{
		{ID: 1, Title: "Done", SessionDuration: 60, TimeLeft: 0, IsCompleted: true},
	}}
	engine, _ := newEngine(t, store, &fakeChime{})

	err := engine.Start(context.Background(), 1)
	if !errors.Is(err, apperrors.ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted, got %v", err)
	}
}

func TestPauseIsNoOpForNonActiveSession(t *testing.T) {
	t.Parallel()
	engine, _ := newEngine(t, &fakeStore{}, &fakeChime{})
	ctx := context.Background()

	if err := engine.Start(ctx, 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := engine.Pause(ctx, 2); err != nil {
		t.Fatalf("pause non-active: %v", err)
	}
	if got := engine.ActiveID(ctx); got != 1 {
		t.Fatalf("pause of non-active must not clear active, got %d", got)
	}

	if err := engine.Pause(ctx, 1); err != nil {
		t.Fatalf("pause active: %v", err)
	}
	if got := engine.ActiveID(ctx); got != 0 {
		t.Fatalf("active should be cleared, got %d", got)
	}
}

func TestPauseActiveRequiresRunningSession(t *testing.T) {
	t.Parallel()
	engine, _ := newEngine(t, &fakeStore{}, &fakeChime{})
	ctx := context.Background()

	if err := engine.PauseActive(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}

	if err := engine.Start(ctx, 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := engine.PauseActive(ctx); err != nil {
		t.Fatalf("pause active: %v", err)
	}
	if got := engine.ActiveID(ctx); got != 0 {
		t.Fatalf("active should be cleared, got %d", got)
	}
	for _, s := range engine.Snapshot(ctx) {
		if s.ID == 1 && s.State != domain.StatePaused {
			t.Fatalf("session should be paused: %+v", s)
		}
	}
}

func TestResetRestoresDurationRegardlessOfState(t *testing.T) {
	t.Parallel()
	engine, clk := newEngine(t, &fakeStore{}, &fakeChime{})
	ctx := context.Background()

	if err := engine.Start(ctx, 3); err != nil { // Emails, 900s
		t.Fatalf("start: %v", err)
	}
	clk.advance(900 * time.Second)
	if err := engine.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if err := engine.Reset(ctx, 3); err != nil {
		t.Fatalf("reset: %v", err)
	}
	assertInvariants(t, engine)

	for _, s := range engine.Snapshot(ctx) {
		if s.ID != 3 {
			continue
		}
		if s.TimeLeft != 900 || s.IsCompleted || s.State != domain.StatePaused {
			t.Fatalf("unexpected post-reset state: %+v", s)
		}
	}
}

func TestUpdateActiveSessionRetargetsDeadline(t *testing.T) {
	t.Parallel()
	engine, clk := newEngine(t, &fakeStore{}, &fakeChime{})
	ctx := context.Background()

	if err := engine.Start(ctx, 1); err != nil { // Deep Work, 1500s
		t.Fatalf("start: %v", err)
	}
	clk.advance(10 * time.Second)
	if err := engine.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}

	// Shorten the running countdown to one minute.
	duration, timeLeft := 60, 60
	if _, err := engine.Update(ctx, dto.UpdateInput{ID: 1, DurationSeconds: &duration, TimeLeft: &timeLeft}); err != nil {
		t.Fatalf("update: %v", err)
	}
	clk.advance(60 * time.Second)
	if err := engine.Tick(ctx); err != nil {
		t.Fatalf("tick after edit: %v", err)
	}
	assertInvariants(t, engine)

	s := engine.Snapshot(ctx)[0]
	if !s.IsCompleted || s.TimeLeft != 0 {
		t.Fatalf("edited countdown should finish after its new duration: %+v", s)
	}
	if got := engine.ActiveID(ctx); got != 0 {
		t.Fatalf("active should be cleared after completion, got %d", got)
	}
}

func TestDeleteActiveSessionClearsActiveSlot(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	engine, _ := newEngine(t, store, &fakeChime{})
	ctx := context.Background()

	if err := engine.Start(ctx, 2); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := engine.Delete(ctx, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := engine.ActiveID(ctx); got != 0 {
		t.Fatalf("deleting active session must clear slot, got %d", got)
	}
	// Further ticks are harmless no-ops.
	if err := engine.Tick(ctx); err != nil {
		t.Fatalf("tick after delete: %v", err)
	}
	if err := engine.Delete(ctx, 2); !errors.Is(err, apperrors.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAddAssignsNextIDAndPersists(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	engine, _ := newEngine(t, store, &fakeChime{})
	ctx := context.Background()

	added, err := engine.Add(ctx, dto.AddInput{})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID != 4 {
		t.Fatalf("id=%d want=4 (seed has 1..3)", added.ID)
	}
	if added.Title != domain.DefaultTitle || added.SessionDuration != domain.DefaultDurationSeconds {
		t.Fatalf("defaults not applied: %+v", added)
	}
	if store.saves == 0 {
		t.Fatal("add must write through")
	}
}

func TestLoadReconciliationDemotesExtraRunners(t *testing.T) {
	t.Parallel()
	store := &fakeStore{sessions: []domain.Session{
		{ID: 1, Title: "A", SessionDuration: 600, TimeLeft: 300, State: domain.StateRunning, TargetTimeMs: 1_700_000_300_000},
		{ID: 2, Title: "B", SessionDuration: 600, TimeLeft: 200, State: domain.StateRunning, TargetTimeMs: 1_700_000_200_000},
		{ID: 3, Title: "C", SessionDuration: 600, TimeLeft: 100, State: domain.StateRunning},
	}}
	engine, _ := newEngine(t, store, &fakeChime{})
	assertInvariants(t, engine)

	if got := engine.ActiveID(context.Background()); got != 1 {
		t.Fatalf("first runner should stay active, got %d", got)
	}
}

func TestDrainDailyFocusZeroesCounters(t *testing.T) {
	t.Parallel()
	store := &fakeStore{sessions: []domain.Session{
		{ID: 1, Title: "A", SessionDuration: 600, TimeLeft: 600, DailyGoalMinutes: 30, FocusSeconds: 1800},
		{ID: 2, Title: "B", SessionDuration: 600, TimeLeft: 600, DailyGoalMinutes: 45, FocusSeconds: 2700},
	}}
	engine, _ := newEngine(t, store, &fakeChime{})
	ctx := context.Background()

	drained, err := engine.DrainDailyFocus(ctx)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if drained[0].FocusSeconds != 1800 || drained[1].FocusSeconds != 2700 {
		t.Fatalf("drain snapshot should hold pre-reset counters: %+v", drained)
	}
	for _, s := range engine.Snapshot(ctx) {
		if s.FocusSeconds != 0 {
			t.Fatalf("focusSeconds not zeroed: %+v", s)
		}
	}
}
