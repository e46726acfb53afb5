package timer

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timerdto "studybuddy/internal/modules/timer/dto"
	"studybuddy/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TimerPort interface {
	Start(ctx context.Context) (timerdto.TimerOutput, error)
	Pause(ctx context.Context) (timerdto.TimerOutput, error)
	Reset(ctx context.Context) (timerdto.TimerOutput, error)
	Configure(ctx context.Context, minutes int) (timerdto.TimerOutput, error)
	State(ctx context.Context) (timerdto.TimerOutput, error)
	Events() <-chan timerdto.TimerEvent
}

// ─── messages ────────────────────────────────────────────────────────────────

// EventMsg carries one runner event into the Bubble Tea loop.
type EventMsg struct {
	Event timerdto.TimerEvent
}

// StateMsg is the result of a user-initiated timer action.
type StateMsg struct {
	State timerdto.TimerOutput
	Err   error
}

// CompletedMsg bubbles up to the app model so it can refresh plans and stats.
type CompletedMsg struct {
	Minutes     int
	RecordError string
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   TimerPort
	state  timerdto.TimerOutput
	note   string
	width  int
	height int
}

func New(port TimerPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.stateCmd(), m.waitForEvent())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case StateMsg:
		if msg.Err != nil {
			m.note = msg.Err.Error()
		} else {
			m.note = ""
		}
		m.state = msg.State

	case EventMsg:
		m.state = msg.Event.Timer
		cmds := []tea.Cmd{m.waitForEvent()}
		if msg.Event.Completed {
			if msg.Event.RecordError != "" {
				m.note = "session not saved: " + msg.Event.RecordError
			} else {
				m.note = fmt.Sprintf("session complete: %d minutes recorded", msg.Event.CompletedMinutes)
			}
			done := CompletedMsg{Minutes: msg.Event.CompletedMinutes, RecordError: msg.Event.RecordError}
			cmds = append(cmds, func() tea.Msg { return done })
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			if m.state.State == "running" {
				return m, m.actionCmd(m.port.Pause)
			}
			return m, m.actionCmd(m.port.Start)
		case "r":
			return m, m.actionCmd(m.port.Reset)
		case "+":
			return m, m.ConfigureCmd(m.state.ConfiguredMinutes + 5)
		case "-":
			if m.state.ConfiguredMinutes > 5 {
				return m, m.ConfigureCmd(m.state.ConfiguredMinutes - 5)
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Focus timer") + "\n\n")
	sb.WriteString(theme.Countdown.Render(m.state.Display) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("state: %s   length: %d min", m.state.State, m.state.ConfiguredMinutes)) + "\n\n")
	if m.note != "" {
		sb.WriteString(theme.Hot.Render(m.note) + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("space: start/pause  r: reset  +/-: length"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Pane.Render(sb.String()))
}

// Running reports whether the countdown is active.
func (m Model) Running() bool { return m.state.State == "running" }

// StartCmd, PauseCmd and ResetCmd are used by the command palette.
func (m Model) StartCmd() tea.Cmd { return m.actionCmd(m.port.Start) }
func (m Model) PauseCmd() tea.Cmd { return m.actionCmd(m.port.Pause) }
func (m Model) ResetCmd() tea.Cmd { return m.actionCmd(m.port.Reset) }

func (m Model) ConfigureCmd(minutes int) tea.Cmd {
	return func() tea.Msg {
		state, err := m.port.Configure(context.Background(), minutes)
		return StateMsg{State: state, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) actionCmd(fn func(context.Context) (timerdto.TimerOutput, error)) tea.Cmd {
	return func() tea.Msg {
		state, err := fn(context.Background())
		return StateMsg{State: state, Err: err}
	}
}

func (m Model) stateCmd() tea.Cmd {
	return m.actionCmd(m.port.State)
}

func (m Model) waitForEvent() tea.Cmd {
	events := m.port.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return EventMsg{Event: ev}
	}
}
