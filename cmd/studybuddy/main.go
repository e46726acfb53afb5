package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"studybuddy/internal/bootstrap"
	"studybuddy/internal/platform/config"
	"studybuddy/internal/platform/logging"
)

type rootFlags struct {
	dataDir    string
	configPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "studybuddy",
		Short:         "Study streaks, plans, a focus timer and weekly stats",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", ".studybuddy", "directory holding the study document")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default <data-dir>/config.yaml)")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newStatusCmd(flags))
	root.AddCommand(newPlanCmd(flags))
	root.AddCommand(newSessionCmd(flags))
	root.AddCommand(newTimerCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newImportCmd(flags))
	return root
}

// loadApp builds the app for one command. The TUI logs to a file because it
// owns the terminal.
func loadApp(ctx context.Context, flags *rootFlags, tui bool) (*bootstrap.App, error) {
	cfg, err := config.New(flags.dataDir, flags.configPath)
	if err != nil {
		return nil, err
	}
	logPath := ""
	var opts bootstrap.Options
	if tui {
		logPath = cfg.LogPath()
	} else {
		opts.Bell = os.Stdout
	}
	log, err := logging.New(cfg.Log.Level, logPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, log, opts)
}

func withApp(flags *rootFlags, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := context.Background()
	app, err := loadApp(ctx, flags, false)
	if err != nil {
		return err
	}
	defer func() {
		_ = app.Close()
		_ = app.Log.Sync()
	}()
	return fn(ctx, app)
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the studybuddy terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(context.Background(), flags, true)
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close()
				_ = app.Log.Sync()
			}()
			return bootstrap.RunTUI(app)
		},
	}
}

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show streak and totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.StudyCLI.Overview(ctx)
				if err != nil {
					return err
				}
				last := out.LastStudyDate
				if last == "" {
					last = "never"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak: %d days\ntotal: %.2f hrs\nlast studied: %s\nplans: %d/%d done\nsessions: %d\n",
					out.Streak, out.TotalHours, last, out.CompletedPlans, out.PlanCount, out.SessionCount)
				return nil
			})
		},
	}
}

func newPlanCmd(flags *rootFlags) *cobra.Command {
	plan := &cobra.Command{Use: "plan", Short: "Manage study plans"}

	var subject, difficulty string
	var hours float64
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a study plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.StudyCLI.CreatePlan(ctx, subject, hours, difficulty)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "plan created: %s subject=%s hours=%.2f difficulty=%s\n", out.ID, out.Subject, out.Duration, out.Difficulty)
				return nil
			})
		},
	}
	add.Flags().StringVar(&subject, "subject", "", "subject to study")
	add.Flags().Float64Var(&hours, "hours", 1, "planned duration in hours")
	add.Flags().StringVar(&difficulty, "difficulty", "medium", "easy|medium|hard")
	_ = add.MarkFlagRequired("subject")

	done := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a plan completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.StudyCLI.CompletePlan(ctx, args[0])
				if err != nil {
					return err
				}
				if !out.Found {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no plan with id %s\n", args[0])
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "plan completed: %s %s\n", out.Plan.ID, out.Plan.Subject)
				return nil
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List study plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				plans, err := app.StudyCLI.ListPlans(ctx)
				if err != nil {
					return err
				}
				for _, p := range plans {
					mark := " "
					if p.Completed {
						mark = "x"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s  %-24s %5.2fh  %s\n", mark, p.ID, p.Subject, p.Duration, p.Difficulty)
				}
				return nil
			})
		},
	}

	plan.AddCommand(add, done, list)
	return plan
}

func newSessionCmd(flags *rootFlags) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Study session log"}

	var minutes int
	record := &cobra.Command{
		Use:   "record",
		Short: "Record a finished study session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.StudyCLI.RecordSession(ctx, minutes)
				if err != nil {
					return err
				}
				overview, err := app.StudyCLI.Overview(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session recorded: %dmin on %s streak=%d total=%.2fh\n", out.Duration, out.Date, overview.Streak, overview.TotalHours)
				return nil
			})
		},
	}
	record.Flags().IntVar(&minutes, "minutes", 25, "session length in minutes")
	session.AddCommand(record)
	return session
}

func newTimerCmd(flags *rootFlags) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Focus countdown"}

	var minutes int
	run := &cobra.Command{
		Use:   "run",
		Short: "Run a countdown in the foreground and record it when it finishes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if minutes > 0 {
					if _, err := app.TimerCLI.Configure(ctx, minutes); err != nil {
						return err
					}
				}
				sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()

				state, err := app.TimerCLI.Start(sigCtx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "\r%s ", state.Display)
				events := app.TimerCLI.Events()
				for {
					select {
					case <-sigCtx.Done():
						paused, _ := app.TimerCLI.Pause(ctx)
						_, _ = fmt.Fprintf(w, "\nstopped at %s, nothing recorded\n", paused.Display)
						return nil
					case ev := <-events:
						if !ev.Completed {
							_, _ = fmt.Fprintf(w, "\r%s ", ev.Timer.Display)
							continue
						}
						if ev.RecordError != "" {
							return fmt.Errorf("record session: %s", ev.RecordError)
						}
						_, _ = fmt.Fprintf(w, "\rsession complete: %d minutes recorded\n", ev.CompletedMinutes)
						return nil
					}
				}
			})
		},
	}
	run.Flags().IntVar(&minutes, "minutes", 0, "countdown length (default from config)")
	timer.AddCommand(run)
	return timer
}

func newStatsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completion rate, session averages and the last 7 days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				report, err := app.AnalyticsCLI.Report(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				avg := "-"
				if report.AverageSessionMinutes.HasData {
					avg = fmt.Sprintf("%d min", report.AverageSessionMinutes.Minutes)
				}
				_, _ = fmt.Fprintf(w, "streak: %d days  total: %.2f hrs\n", report.Streak, report.TotalHours)
				_, _ = fmt.Fprintf(w, "completion rate: %d%%\naverage session: %s\nmost productive: %s\n\n",
					report.CompletionRate, avg, report.MostProductiveWeekday.Weekday)
				const width = 30
				for _, bar := range report.Last7Days.Bars {
					n := bar.Minutes * width / report.Last7Days.Ceiling
					_, _ = fmt.Fprintf(w, "%s %s %-*s %d\n", bar.Label, bar.Day, width, strings.Repeat("█", n), bar.Minutes)
				}
				return nil
			})
		},
	}
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	var dir string
	var toStdout bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the full document to study-data-<date>.json",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				target := dir
				if toStdout {
					target = ""
				}
				out, err := app.StudyCLI.Export(ctx, target)
				if err != nil {
					return err
				}
				if toStdout {
					_, _ = cmd.OutOrStdout().Write(out.Content)
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported: %s\n", out.Path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory to write the export into")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the document instead of writing a file")
	return cmd
}

func newImportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the document with an exported file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.StudyCLI.Import(ctx, args[0])
				if err != nil {
					return fmt.Errorf("import failed: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported: plans=%d sessions=%d streak=%d\n", out.Plans, out.Sessions, out.Streak)
				return nil
			})
		},
	}
}
