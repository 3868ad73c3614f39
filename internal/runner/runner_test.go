package runner

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	progressdto "focusflow/internal/modules/progress/dto"
	timerdomain "focusflow/internal/modules/timer/domain"
	timerdto "focusflow/internal/modules/timer/dto"
)

type countingTimer struct {
	ticks atomic.Int64
}

func (c *countingTimer) List(context.Context) ([]timerdto.SessionOutput, error) { return nil, nil }
func (c *countingTimer) Add(context.Context, timerdto.AddInput) (timerdto.SessionOutput, error) {
	return timerdto.SessionOutput{}, nil
}
func (c *countingTimer) Update(context.Context, timerdto.UpdateInput) (timerdto.SessionOutput, error) {
	return timerdto.SessionOutput{}, nil
}
func (c *countingTimer) Delete(context.Context, int) error              { return nil }
func (c *countingTimer) Start(context.Context, int) error               { return nil }
func (c *countingTimer) Pause(context.Context, int) error               { return nil }
func (c *countingTimer) PauseActive(context.Context) error              { return nil }
func (c *countingTimer) Reset(context.Context, int) error               { return nil }
func (c *countingTimer) ActiveID(context.Context) int                   { return 0 }
func (c *countingTimer) Snapshot(context.Context) []timerdomain.Session { return nil }
func (c *countingTimer) DrainDailyFocus(context.Context) ([]timerdomain.Session, error) {
	return nil, nil
}

func (c *countingTimer) Tick(context.Context) error {
	c.ticks.Add(1)
	return nil
}

type countingProgress struct {
	checks atomic.Int64
}

func (c *countingProgress) Overview(context.Context) (progressdto.OverviewOutput, error) {
	return progressdto.OverviewOutput{}, nil
}
func (c *countingProgress) ResetDaily(context.Context) (progressdto.ResetOutput, error) {
	return progressdto.ResetOutput{}, nil
}
func (c *countingProgress) SetResetTime(context.Context, string) error { return nil }
func (c *countingProgress) History(context.Context, int) ([]progressdto.HistoryDayOutput, error) {
	return nil, nil
}

func (c *countingProgress) CheckAutoReset(context.Context) (bool, error) {
	c.checks.Add(1)
	return false, nil
}

func TestRunTicksAndChecksUntilCancelled(t *testing.T) {
	t.Parallel()
	timerFake := &countingTimer{}
	progressFake := &countingProgress{}
	r := NewWithInterval(timerFake, progressFake, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for timerFake.ticks.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("runner never ticked")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if progressFake.checks.Load() == 0 {
		t.Fatal("auto reset was never checked")
	}
}
