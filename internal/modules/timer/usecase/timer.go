package usecase

import (
	"context"

	"go.uber.org/zap"

	"studybuddy/internal/modules/timer/domain"
	timerdto "studybuddy/internal/modules/timer/dto"
	timerin "studybuddy/internal/modules/timer/port/in"
	timerout "studybuddy/internal/modules/timer/port/out"
	"studybuddy/internal/modules/timer/service"
)

const eventBuffer = 64

type Interactor struct {
	runner   *service.Runner
	recorder timerout.SessionRecorder
	notifier timerout.Notifier
	events   chan timerdto.TimerEvent
	log      *zap.SugaredLogger
}

// NewInteractor wires completion of the runner's countdown to the recorder
// and notifier ports. Either port may be nil.
func NewInteractor(runner *service.Runner, recorder timerout.SessionRecorder, notifier timerout.Notifier, log *zap.SugaredLogger) timerin.Usecase {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	i := &Interactor{
		runner:   runner,
		recorder: recorder,
		notifier: notifier,
		events:   make(chan timerdto.TimerEvent, eventBuffer),
		log:      log,
	}
	runner.SetHandler(i.handle)
	return i
}

func (i *Interactor) Start(ctx context.Context) (timerdto.TimerOutput, error) {
	snap, started := i.runner.Start(ctx)
	if !started {
		i.log.Debugw("timer already running")
	}
	return toOutput(snap), nil
}

func (i *Interactor) Pause(_ context.Context) (timerdto.TimerOutput, error) {
	return toOutput(i.runner.Pause()), nil
}

func (i *Interactor) Reset(_ context.Context) (timerdto.TimerOutput, error) {
	return toOutput(i.runner.Reset()), nil
}

func (i *Interactor) Configure(_ context.Context, input timerdto.ConfigureInput) (timerdto.TimerOutput, error) {
	snap, err := i.runner.Configure(input.Minutes)
	return toOutput(snap), err
}

func (i *Interactor) State(_ context.Context) (timerdto.TimerOutput, error) {
	return toOutput(i.runner.Snapshot()), nil
}

func (i *Interactor) Events() <-chan timerdto.TimerEvent {
	return i.events
}

func (i *Interactor) Close() error {
	i.runner.Close()
	return nil
}

func (i *Interactor) handle(ev service.Event) {
	out := timerdto.TimerEvent{Timer: toOutput(ev.Snapshot)}
	if ev.Completion != nil {
		out.Completed = true
		out.CompletedMinutes = ev.Completion.Minutes
		ctx := context.Background()
		if i.recorder != nil {
			if err := i.recorder.RecordSession(ctx, ev.Completion.Minutes); err != nil {
				i.log.Errorw("record finished session", "minutes", ev.Completion.Minutes, "error", err)
				out.RecordError = err.Error()
			}
		}
		if i.notifier != nil {
			if err := i.notifier.Notify(ctx, ev.Completion.Minutes); err != nil {
				i.log.Warnw("notify completion", "error", err)
			}
		}
	}
	select {
	case i.events <- out:
	default:
		i.log.Debugw("timer event dropped, no reader")
	}
}

func toOutput(s domain.Snapshot) timerdto.TimerOutput {
	return timerdto.TimerOutput{
		Minutes:           s.Minutes,
		Seconds:           s.Seconds,
		State:             string(s.State),
		ConfiguredMinutes: s.ConfiguredMinutes,
		Display:           s.Clock(),
	}
}
