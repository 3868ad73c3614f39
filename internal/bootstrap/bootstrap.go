package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	progressinadapter "focusflow/internal/modules/progress/adapter/in"
	progressoutadapter "focusflow/internal/modules/progress/adapter/out"
	progressservice "focusflow/internal/modules/progress/service"
	progressusecase "focusflow/internal/modules/progress/usecase"
	timerinadapter "focusflow/internal/modules/timer/adapter/in"
	timeroutadapter "focusflow/internal/modules/timer/adapter/out"
	timerservice "focusflow/internal/modules/timer/service"
	timerusecase "focusflow/internal/modules/timer/usecase"
	"focusflow/internal/platform/clock"
	"focusflow/internal/platform/config"
	"focusflow/internal/platform/kvstore"
	"focusflow/internal/runner"
	uiapp "focusflow/internal/ui/app"
)

type App struct {
	Settings config.Settings

	TimerCLI    timerinadapter.CLIHandler
	ProgressCLI progressinadapter.CLIHandler

	timerUC    *timerusecase.Interactor
	progressUC *progressusecase.Interactor
}

func New(cfg config.Config) (*App, error) {
	ctx := context.Background()
	clk := clock.SystemClock{}

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.SettingsPath).Msg("settings unusable, continuing with defaults")
	}

	kv := kvstore.NewFileStore(cfg.DataDir)

	timerUC, err := timerusecase.NewInteractor(
		ctx,
		clk,
		timerservice.NewTimerService(timeroutadapter.NewKVSessionStore(kv)),
		timeroutadapter.NewExecChime(settings.ChimeCommand),
	)
	if err != nil {
		return nil, fmt.Errorf("new timer engine: %w", err)
	}

	projector, err := progressoutadapter.NewSQLiteHistoryProjector(cfg.DBPath)
	if err != nil {
		// History is a read model; run without it rather than refuse to start.
		log.Warn().Err(err).Str("path", cfg.DBPath).Msg("history database unavailable")
		projector = nil
	}

	progressSvc := progressservice.NewProgressService(progressoutadapter.NewKVStateStore(kv))
	var progressUC *progressusecase.Interactor
	if projector != nil {
		progressUC, err = progressusecase.NewInteractor(ctx, clk, progressSvc, timerUC, projector)
	} else {
		progressUC, err = progressusecase.NewInteractor(ctx, clk, progressSvc, timerUC, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("new progress tracker: %w", err)
	}

	return &App{
		Settings:    settings,
		TimerCLI:    timerinadapter.NewCLIHandler(timerUC),
		ProgressCLI: progressinadapter.NewCLIHandler(progressUC),
		timerUC:     timerUC,
		progressUC:  progressUC,
	}, nil
}

// RunTUI runs the interactive terminal UI until the user quits.
func RunTUI(app *App) error {
	model := uiapp.NewModel(app.timerUC, app.progressUC)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// RunHeadless drives the tick loop without a UI until ctx is cancelled.
func RunHeadless(ctx context.Context, app *App) error {
	return runner.New(app.timerUC, app.progressUC).Run(ctx)
}
