package domain_test

import (
	"errors"
	"testing"

	"studybuddy/internal/modules/timer/domain"
	apperrors "studybuddy/internal/platform/errors"
)

func mustTimer(t *testing.T, minutes int) *domain.Timer {
	t.Helper()
	timer, err := domain.NewTimer(minutes)
	if err != nil {
		t.Fatalf("new timer: %v", err)
	}
	return timer
}

func TestTimerCompletesAfterConfiguredSeconds(t *testing.T) {
	t.Parallel()
	timer := mustTimer(t, 25)
	if got := timer.Snapshot().Clock(); got != "25:00" {
		t.Fatalf("expected 25:00 before start, got %s", got)
	}
	if !timer.Start() {
		t.Fatalf("start from idle must succeed")
	}
	for i := 1; i < 1500; i++ {
		if _, done := timer.Tick(); done {
			t.Fatalf("completed early at tick %d", i)
		}
	}
	if got := timer.Snapshot().Clock(); got != "00:01" {
		t.Fatalf("expected 00:01 before the last tick, got %s", got)
	}
	done, ok := timer.Tick()
	if !ok || done.Minutes != 25 {
		t.Fatalf("expected completion of 25 minutes on tick 1500, got %+v, %v", done, ok)
	}
	snap := timer.Snapshot()
	if snap.State != domain.StateIdle || snap.Clock() != "25:00" {
		t.Fatalf("expected reload to idle 25:00, got %+v", snap)
	}
	if _, ok := timer.Tick(); ok {
		t.Fatalf("an idle timer must not complete again")
	}
}

func TestTimerTickBorrowsMinute(t *testing.T) {
	t.Parallel()
	timer := mustTimer(t, 2)
	timer.Start()
	timer.Tick()
	if got := timer.Snapshot().Clock(); got != "01:59" {
		t.Fatalf("expected 01:59, got %s", got)
	}
}

func TestTimerPausePreservesRemainingTime(t *testing.T) {
	t.Parallel()
	timer := mustTimer(t, 1)
	timer.Start()
	for i := 0; i < 10; i++ {
		timer.Tick()
	}
	if !timer.Pause() {
		t.Fatalf("pause of running timer must succeed")
	}
	if timer.Pause() {
		t.Fatalf("second pause must be a no-op")
	}
	timer.Tick()
	snap := timer.Snapshot()
	if snap.State != domain.StatePaused || snap.Clock() != "00:50" {
		t.Fatalf("paused timer must hold 00:50, got %+v", snap)
	}
	if !timer.Start() {
		t.Fatalf("resume must succeed")
	}
	timer.Tick()
	if got := timer.Snapshot().Clock(); got != "00:49" {
		t.Fatalf("expected countdown to resume from 00:50, got %s", got)
	}
}

func TestTimerDoubleStartIsNoop(t *testing.T) {
	t.Parallel()
	timer := mustTimer(t, 5)
	if !timer.Start() {
		t.Fatalf("first start must succeed")
	}
	if timer.Start() {
		t.Fatalf("second start must report no transition")
	}
	if timer.Snapshot().State != domain.StateRunning {
		t.Fatalf("timer must stay running")
	}
}

func TestTimerConfigure(t *testing.T) {
	t.Parallel()
	timer := mustTimer(t, 25)
	timer.Start()
	if err := timer.Configure(50); !errors.Is(err, apperrors.ErrTimerRunning) {
		t.Fatalf("expected ErrTimerRunning, got %v", err)
	}
	if timer.Snapshot().ConfiguredMinutes != 25 {
		t.Fatalf("refused configure must not change the length")
	}

	timer.Tick()
	timer.Pause()
	if err := timer.Configure(50); err != nil {
		t.Fatalf("configure while paused: %v", err)
	}
	snap := timer.Snapshot()
	if snap.State != domain.StateIdle || snap.Clock() != "50:00" || snap.ConfiguredMinutes != 50 {
		t.Fatalf("configure must reload the countdown, got %+v", snap)
	}

	for _, bad := range []int{0, -3} {
		if err := timer.Configure(bad); !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("configure(%d): expected validation error, got %v", bad, err)
		}
	}
	if _, err := domain.NewTimer(0); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("NewTimer(0): expected validation error, got %v", err)
	}
}

func TestTimerResetReturnsToIdle(t *testing.T) {
	t.Parallel()
	timer := mustTimer(t, 3)
	timer.Start()
	timer.Tick()
	timer.Reset()
	snap := timer.Snapshot()
	if snap.State != domain.StateIdle || snap.Clock() != "03:00" {
		t.Fatalf("expected idle 03:00 after reset, got %+v", snap)
	}
}
