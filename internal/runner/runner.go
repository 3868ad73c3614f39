package runner

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	progressin "focusflow/internal/modules/progress/port/in"
	timerin "focusflow/internal/modules/timer/port/in"
)

const defaultInterval = time.Second

// Runner drives the wall-clock loop: one timer tick and one auto-reset check
// per interval. The countdown itself is anchored to deadlines, so a missed or
// late tick only delays display updates, never loses time.
type Runner struct {
	timer    timerin.Usecase
	progress progressin.Usecase
	interval time.Duration
}

func New(timer timerin.Usecase, progress progressin.Usecase) *Runner {
	return &Runner{timer: timer, progress: progress, interval: defaultInterval}
}

// NewWithInterval exists for tests that cannot wait out real seconds.
func NewWithInterval(timer timerin.Usecase, progress progressin.Usecase, interval time.Duration) *Runner {
	return &Runner{timer: timer, progress: progress, interval: interval}
}

// Run blocks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	log.Info().Dur("interval", r.interval).Msg("runner started")
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("runner stopped")
			return ctx.Err()
		case <-ticker.C:
			r.step(ctx)
		}
	}
}

func (r *Runner) step(ctx context.Context) {
	if err := r.timer.Tick(ctx); err != nil {
		log.Warn().Err(err).Msg("tick failed")
	}
	fired, err := r.progress.CheckAutoReset(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("auto reset check failed")
		return
	}
	if fired {
		log.Info().Msg("daily reset fired")
	}
}
