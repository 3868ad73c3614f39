package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"focusflow/internal/bootstrap"
	"focusflow/internal/modules/timer/dto"
	"focusflow/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string
	var verbose bool

	root := &cobra.Command{
		Use:           "focusflow",
		Short:         "Focus session timer with daily goals and streaks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
				Level(level).With().Timestamp().Logger()
		},
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default ~/.focusflow)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newRunCmd(&dataDir))
	root.AddCommand(newListCmd(&dataDir))
	root.AddCommand(newAddCmd(&dataDir))
	root.AddCommand(newEditCmd(&dataDir))
	root.AddCommand(newRemoveCmd(&dataDir))
	root.AddCommand(newStartCmd(&dataDir))
	root.AddCommand(newPauseCmd(&dataDir))
	root.AddCommand(newResetCmd(&dataDir))
	root.AddCommand(newStatusCmd(&dataDir))
	root.AddCommand(newDayCmd(&dataDir))
	root.AddCommand(newHistoryCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid session id %q", arg)
	}
	return id, nil
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newRunCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the timer loop headless until interrupted",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := bootstrap.RunHeadless(ctx, app); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func newListCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List focus sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			sessions, err := app.TimerCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range sessions {
				marker := " "
				if s.Active {
					marker = "*"
				}
				state := s.State
				if s.IsCompleted {
					state = "done"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d\t%-24s %02d:%02d\t%s\tgoal %dm\tfocus %dm\n",
					marker, s.ID, s.Title, s.TimeLeft/60, s.TimeLeft%60, state, s.DailyGoalMinutes, s.FocusSeconds/60)
			}
			return nil
		},
	}
}

func newAddCmd(dataDir *string) *cobra.Command {
	var title string
	var durationMinutes, goalMinutes int

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a focus session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if title == "" {
				title = app.Settings.DefaultSession.Title
			}
			if !cmd.Flags().Changed("duration") {
				durationMinutes = app.Settings.DefaultSession.DurationMinutes
			}
			if !cmd.Flags().Changed("goal") {
				goalMinutes = app.Settings.DefaultSession.DailyGoalMinutes
			}
			out, err := app.TimerCLI.Add(context.Background(), title, durationMinutes*60, goalMinutes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %d %s (%dm, goal %dm)\n",
				out.ID, out.Title, out.SessionDuration/60, out.DailyGoalMinutes)
			return nil
		},
	}
	add.Flags().StringVar(&title, "title", "", "session title")
	add.Flags().IntVar(&durationMinutes, "duration", 30, "countdown length in minutes")
	add.Flags().IntVar(&goalMinutes, "goal", 30, "daily goal in minutes, 0 for none")
	return add
}

func newEditCmd(dataDir *string) *cobra.Command {
	var title string
	var durationMinutes, timeLeftMinutes, goalMinutes int

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a focus session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			input := dto.UpdateInput{ID: id}
			if cmd.Flags().Changed("title") {
				input.Title = &title
			}
			if cmd.Flags().Changed("duration") {
				seconds := durationMinutes * 60
				input.DurationSeconds = &seconds
			}
			if cmd.Flags().Changed("time-left") {
				seconds := timeLeftMinutes * 60
				input.TimeLeft = &seconds
			}
			if cmd.Flags().Changed("goal") {
				input.DailyGoalMinutes = &goalMinutes
			}
			out, err := app.TimerCLI.Update(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %d %s (%dm left of %dm, goal %dm)\n",
				out.ID, out.Title, out.TimeLeft/60, out.SessionDuration/60, out.DailyGoalMinutes)
			return nil
		},
	}
	edit.Flags().StringVar(&title, "title", "", "new title")
	edit.Flags().IntVar(&durationMinutes, "duration", 0, "new countdown length in minutes")
	edit.Flags().IntVar(&timeLeftMinutes, "time-left", 0, "remaining minutes")
	edit.Flags().IntVar(&goalMinutes, "goal", 0, "new daily goal in minutes")
	return edit
}

func newRemoveCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a focus session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.TimerCLI.Delete(context.Background(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", id)
			return nil
		},
	}
}

func newStartCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Start a session countdown, pausing any other",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.TimerCLI.Start(context.Background(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "started %d\n", id)
			return nil
		},
	}
}

func newPauseCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "pause [id]",
		Short: "Pause a session, or the active one when no id is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				if err := app.TimerCLI.PauseActive(context.Background()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "paused active session")
				return nil
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.TimerCLI.Pause(context.Background(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "paused %d\n", id)
			return nil
		},
	}
}

func newResetCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Reset a session countdown to its full duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.TimerCLI.Reset(context.Background(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reset %d\n", id)
			return nil
		},
	}
}

func newStatusCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's progress, streak and yesterday's total",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			overview, err := app.ProgressCLI.Overview(context.Background())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "today:     %d/%d min\n", overview.TotalFocusSeconds/60, overview.TotalDailyGoalMinutes)
			_, _ = fmt.Fprintf(out, "streak:    %d days\n", overview.Streak)
			_, _ = fmt.Fprintf(out, "yesterday: %.0f min\n", overview.YesterdayMinutes)
			if overview.LastResetDate != "" {
				_, _ = fmt.Fprintf(out, "last day started: %s at %s\n", overview.LastResetDate, overview.ResetTime)
			} else {
				_, _ = fmt.Fprintf(out, "daily reset at %s\n", overview.ResetTime)
			}
			return nil
		},
	}
}

func newDayCmd(dataDir *string) *cobra.Command {
	day := &cobra.Command{Use: "day", Short: "Daily reset commands"}

	day.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Archive today and start a new day now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ProgressCLI.ResetDaily(context.Background())
			if err != nil {
				return err
			}
			verdict := "goal missed, streak reset"
			if out.GoalMet {
				verdict = fmt.Sprintf("goal met, streak %d", out.Streak)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "new day %s: archived %.0f min, %s\n", out.Date, out.YesterdayMinutes, verdict)
			return nil
		},
	})

	day.AddCommand(&cobra.Command{
		Use:   "set-time <HH:MM>",
		Short: "Set the automatic daily reset time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.ProgressCLI.SetResetTime(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "daily reset at %s\n", args[0])
			return nil
		},
	})
	return day
}

func newHistoryCmd(dataDir *string) *cobra.Command {
	var limit int

	history := &cobra.Command{
		Use:   "history",
		Short: "Show archived days, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			days, err := app.ProgressCLI.History(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(days) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no history yet")
				return nil
			}
			for _, d := range days {
				verdict := "missed"
				if d.GoalMet {
					verdict = "met"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.0f/%d min\tgoal %s\tstreak %d\n",
					d.Date, d.TotalMinutes, d.GoalMinutes, verdict, d.Streak)
			}
			return nil
		},
	}
	history.Flags().IntVar(&limit, "limit", 30, "number of days to show")
	return history
}
