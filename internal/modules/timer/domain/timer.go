package domain

import (
	"fmt"

	apperrors "studybuddy/internal/platform/errors"
)

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Completion is emitted once per finished countdown.
type Completion struct {
	Minutes int
}

type Snapshot struct {
	Minutes           int
	Seconds           int
	State             State
	ConfiguredMinutes int
}

func (s Snapshot) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.Minutes, s.Seconds)
}

// Timer is the countdown state machine. It has no notion of wall time; the
// caller delivers one Tick per elapsed second.
type Timer struct {
	configured int
	minutes    int
	seconds    int
	state      State
}

func NewTimer(configuredMinutes int) (*Timer, error) {
	if err := validateMinutes(configuredMinutes); err != nil {
		return nil, err
	}
	t := &Timer{configured: configuredMinutes}
	t.Reset()
	return t, nil
}

// Start reports whether the timer transitioned to running.
func (t *Timer) Start() bool {
	if t.state == StateRunning {
		return false
	}
	t.state = StateRunning
	return true
}

func (t *Timer) Pause() bool {
	if t.state != StateRunning {
		return false
	}
	t.state = StatePaused
	return true
}

func (t *Timer) Reset() {
	t.minutes = t.configured
	t.seconds = 0
	t.state = StateIdle
}

// Configure changes the session length. It is refused while running; when
// idle or paused the countdown reloads immediately.
func (t *Timer) Configure(minutes int) error {
	if t.state == StateRunning {
		return apperrors.ErrTimerRunning
	}
	if err := validateMinutes(minutes); err != nil {
		return err
	}
	t.configured = minutes
	t.Reset()
	return nil
}

// Tick advances a running countdown by one second. Reaching 0:00 completes
// the countdown on the same tick and reloads the timer in the idle state.
func (t *Timer) Tick() (Completion, bool) {
	if t.state != StateRunning {
		return Completion{}, false
	}
	switch {
	case t.seconds > 0:
		t.seconds--
	case t.minutes > 0:
		t.minutes--
		t.seconds = 59
	}
	if t.minutes > 0 || t.seconds > 0 {
		return Completion{}, false
	}
	done := Completion{Minutes: t.configured}
	t.Reset()
	return done, true
}

func (t *Timer) Snapshot() Snapshot {
	return Snapshot{
		Minutes:           t.minutes,
		Seconds:           t.seconds,
		State:             t.state,
		ConfiguredMinutes: t.configured,
	}
}

func validateMinutes(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: timer minutes must be positive", apperrors.ErrValidation)
	}
	return nil
}
