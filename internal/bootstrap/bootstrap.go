package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	analyticsinadapter "studybuddy/internal/modules/analytics/adapter/in"
	analyticsoutadapter "studybuddy/internal/modules/analytics/adapter/out"
	analyticsusecase "studybuddy/internal/modules/analytics/usecase"
	studyinadapter "studybuddy/internal/modules/study/adapter/in"
	studyoutadapter "studybuddy/internal/modules/study/adapter/out"
	studyout "studybuddy/internal/modules/study/port/out"
	studyservice "studybuddy/internal/modules/study/service"
	studyusecase "studybuddy/internal/modules/study/usecase"
	timerinadapter "studybuddy/internal/modules/timer/adapter/in"
	timeroutadapter "studybuddy/internal/modules/timer/adapter/out"
	timerdomain "studybuddy/internal/modules/timer/domain"
	timerservice "studybuddy/internal/modules/timer/service"
	timerusecase "studybuddy/internal/modules/timer/usecase"
	"studybuddy/internal/platform/clock"
	"studybuddy/internal/platform/config"
	"studybuddy/internal/platform/id"
	uiapp "studybuddy/internal/ui/app"
)

type App struct {
	StudyCLI     studyinadapter.CLIHandler
	TimerCLI     timerinadapter.CLIHandler
	AnalyticsCLI analyticsinadapter.CLIHandler
	Log          *zap.SugaredLogger

	closers []func() error
}

type Options struct {
	// Bell receives the completion bell; nil disables it.
	Bell io.Writer
}

// New builds the process-wide instances and loads the document once.
func New(ctx context.Context, cfg config.Config, log *zap.SugaredLogger, opts Options) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	clk := clock.SystemClock{}
	app := &App{Log: log}

	slot, err := newSlot(cfg, app)
	if err != nil {
		return nil, err
	}
	studyUC := studyusecase.NewInteractor(
		studyservice.NewDocumentService(clk, id.TimeOrdered{}, slot, loc, log.Named("study")),
		studyoutadapter.NewFileArtifactStore(),
	)
	loaded, err := studyUC.Load(ctx)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("load document: %w", err)
	}
	log.Debugw("document ready", "status", loaded.Status, "backend", cfg.Storage.Backend)

	timer, err := timerdomain.NewTimer(cfg.Timer.Minutes)
	if err != nil {
		app.Close()
		return nil, err
	}
	timerUC := timerusecase.NewInteractor(
		timerservice.NewRunner(timer, clk, time.Second),
		timeroutadapter.NewStudySessionRecorder(studyUC),
		timeroutadapter.NewBellNotifier(opts.Bell, log.Named("timer")),
		log.Named("timer"),
	)
	app.closers = append(app.closers, timerUC.Close)

	analyticsUC := analyticsusecase.NewInteractor(analyticsoutadapter.NewStudyDatasetAdapter(studyUC), clk, loc)

	app.StudyCLI = studyinadapter.NewCLIHandler(studyUC)
	app.TimerCLI = timerinadapter.NewCLIHandler(timerUC)
	app.AnalyticsCLI = analyticsinadapter.NewCLIHandler(analyticsUC)
	return app, nil
}

func newSlot(cfg config.Config, app *App) (studyout.Slot, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		store, err := studyoutadapter.NewSQLiteSlotStore(cfg.DBPath(), cfg.Storage.Key)
		if err != nil {
			return nil, fmt.Errorf("new sqlite slot: %w", err)
		}
		app.closers = append(app.closers, store.Close)
		return store, nil
	default:
		return studyoutadapter.NewFileSlotStore(cfg.SlotPath()), nil
	}
}

// Close stops the timer task and releases storage, newest first.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.StudyCLI, app.TimerCLI, app.AnalyticsCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
