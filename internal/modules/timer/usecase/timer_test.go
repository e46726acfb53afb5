package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"studybuddy/internal/modules/timer/domain"
	timerdto "studybuddy/internal/modules/timer/dto"
	timerin "studybuddy/internal/modules/timer/port/in"
	timerout "studybuddy/internal/modules/timer/port/out"
	"studybuddy/internal/modules/timer/service"
	"studybuddy/internal/modules/timer/usecase"
	"studybuddy/internal/platform/clock"
	apperrors "studybuddy/internal/platform/errors"
)

type manualTicker struct{ ch chan time.Time }

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               {}

type manualTickers struct{ made chan *manualTicker }

func (f *manualTickers) NewTicker(time.Duration) clock.Ticker {
	t := &manualTicker{ch: make(chan time.Time, 1)}
	f.made <- t
	return t
}

type fakeRecorder struct {
	mu      sync.Mutex
	minutes []int
	err     error
}

func (f *fakeRecorder) RecordSession(_ context.Context, minutes int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.minutes = append(f.minutes, minutes)
	return f.err
}

func (f *fakeRecorder) recorded() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.minutes...)
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeNotifier) Notify(context.Context, int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return nil
}

func newTimerUsecase(t *testing.T, minutes int, recorder timerout.SessionRecorder, notifier timerout.Notifier) (timerin.Usecase, *manualTickers) {
	t.Helper()
	timer, err := domain.NewTimer(minutes)
	if err != nil {
		t.Fatalf("new timer: %v", err)
	}
	tickers := &manualTickers{made: make(chan *manualTicker, 4)}
	uc := usecase.NewInteractor(service.NewRunner(timer, tickers, time.Second), recorder, notifier, nil)
	t.Cleanup(func() { _ = uc.Close() })
	return uc, tickers
}

func runToCompletion(t *testing.T, uc timerin.Usecase, tickers *manualTickers, seconds int) timerdto.TimerEvent {
	t.Helper()
	if _, err := uc.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	tk := <-tickers.made
	var last timerdto.TimerEvent
	for i := 0; i < seconds; i++ {
		tk.ch <- time.Time{}
		select {
		case last = <-uc.Events():
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d", i+1)
		}
	}
	return last
}

func TestCompletionRecordsSessionAndNotifies(t *testing.T) {
	t.Parallel()
	recorder := &fakeRecorder{}
	notifier := &fakeNotifier{}
	uc, tickers := newTimerUsecase(t, 1, recorder, notifier)

	last := runToCompletion(t, uc, tickers, 60)
	if !last.Completed || last.CompletedMinutes != 1 || last.RecordError != "" {
		t.Fatalf("unexpected completion event: %+v", last)
	}
	if got := recorder.recorded(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected one recorded session of 1 minute, got %v", got)
	}
	if notifier.calls != 1 {
		t.Fatalf("expected one notification, got %d", notifier.calls)
	}
	state, _ := uc.State(context.Background())
	if state.State != "idle" || state.Display != "01:00" {
		t.Fatalf("expected idle 01:00 after completion, got %+v", state)
	}
}

func TestCompletionSurfacesRecordFailure(t *testing.T) {
	t.Parallel()
	recorder := &fakeRecorder{err: errors.New("slot full")}
	uc, tickers := newTimerUsecase(t, 1, recorder, nil)

	last := runToCompletion(t, uc, tickers, 60)
	if !last.Completed || last.RecordError != "slot full" {
		t.Fatalf("expected record error on completion event, got %+v", last)
	}
}

func TestTimerUsecaseControls(t *testing.T) {
	t.Parallel()
	uc, tickers := newTimerUsecase(t, 25, nil, nil)
	ctx := context.Background()

	state, err := uc.State(ctx)
	if err != nil || state.Display != "25:00" || state.State != "idle" {
		t.Fatalf("initial state: %+v, %v", state, err)
	}
	if _, err := uc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	<-tickers.made
	if again, err := uc.Start(ctx); err != nil || again.State != "running" {
		t.Fatalf("double start must be a harmless no-op: %+v, %v", again, err)
	}
	if _, err := uc.Configure(ctx, timerdto.ConfigureInput{Minutes: 30}); !errors.Is(err, apperrors.ErrTimerRunning) {
		t.Fatalf("expected ErrTimerRunning, got %v", err)
	}
	paused, _ := uc.Pause(ctx)
	if paused.State != "paused" {
		t.Fatalf("expected paused, got %+v", paused)
	}
	configured, err := uc.Configure(ctx, timerdto.ConfigureInput{Minutes: 30})
	if err != nil || configured.Display != "30:00" || configured.ConfiguredMinutes != 30 {
		t.Fatalf("configure while paused: %+v, %v", configured, err)
	}
	reset, _ := uc.Reset(ctx)
	if reset.State != "idle" || reset.Display != "30:00" {
		t.Fatalf("expected idle 30:00 after reset, got %+v", reset)
	}
}
