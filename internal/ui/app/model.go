package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "studybuddy/internal/modules/analytics/dto"
	studydto "studybuddy/internal/modules/study/dto"
	timerdto "studybuddy/internal/modules/timer/dto"
	"studybuddy/internal/ui/components"
	"studybuddy/internal/ui/theme"
	plansview "studybuddy/internal/ui/views/plans"
	statsview "studybuddy/internal/ui/views/stats"
	timerview "studybuddy/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type studyPort interface {
	CreatePlan(ctx context.Context, subject string, hours float64, difficulty string) (studydto.PlanOutput, error)
	CompletePlan(ctx context.Context, id string) (studydto.CompletePlanOutput, error)
	ListPlans(ctx context.Context) ([]studydto.PlanOutput, error)
	RecordSession(ctx context.Context, minutes int) (studydto.SessionOutput, error)
	Overview(ctx context.Context) (studydto.OverviewOutput, error)
	Export(ctx context.Context, dir string) (studydto.ExportOutput, error)
	Import(ctx context.Context, path string) (studydto.ImportOutput, error)
}

type timerPort interface {
	Start(ctx context.Context) (timerdto.TimerOutput, error)
	Pause(ctx context.Context) (timerdto.TimerOutput, error)
	Reset(ctx context.Context) (timerdto.TimerOutput, error)
	Configure(ctx context.Context, minutes int) (timerdto.TimerOutput, error)
	State(ctx context.Context) (timerdto.TimerOutput, error)
	Events() <-chan timerdto.TimerEvent
}

type analyticsPort interface {
	Report(ctx context.Context) (analyticsdto.ReportOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabPlans
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{"Timer", "Plans", "Stats"}

// ─── async messages ───────────────────────────────────────────────────────────

type overviewMsg struct {
	out studydto.OverviewOutput
	err error
}

type planCreatedMsg struct {
	plan studydto.PlanOutput
	err  error
}

type sessionRecordedMsg struct {
	session studydto.SessionOutput
	err     error
}

type exportedMsg struct {
	out studydto.ExportOutput
	err error
}

type importedMsg struct {
	out studydto.ImportOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Reset   key.Binding
	Length  key.Binding
	Done    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause timer")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset timer")),
		Length:  key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "timer length")),
		Done:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "complete plan")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Toggle, k.Reset, k.Length},
		{k.Done},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the status bar,
// the help overlay and the command palette; the core is reached only through
// the port interfaces.
type Model struct {
	study studyPort
	timer timerPort

	timerView timerview.Model
	plansView plansview.Model
	statsView statsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	overview  studydto.OverviewOutput
	status    string
	width     int
	height    int
}

func NewModel(study studyPort, timer timerPort, analytics analyticsPort) Model {
	return Model{
		study:     study,
		timer:     timer,
		timerView: timerview.New(timer),
		plansView: plansview.New(study),
		statsView: statsview.New(analytics),
		activeTab: tabTimer,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.timerView.Init(),
		m.plansView.Init(),
		m.statsView.Init(),
		m.overviewCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Timer traffic always reaches the timer view, whichever tab is shown.
	case timerview.EventMsg, timerview.StateMsg:
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		if state, ok := msg.(timerview.StateMsg); ok && state.Err != nil {
			m.status = "timer: " + state.Err.Error()
		}
		return m, cmd

	case timerview.CompletedMsg:
		if msg.RecordError != "" {
			m.status = "session not saved: " + msg.RecordError
		} else {
			m.status = fmt.Sprintf("session complete (+%d min)", msg.Minutes)
		}
		return m, m.refreshCmd()

	case plansview.PlansLoadedMsg:
		var cmd tea.Cmd
		m.plansView, cmd = m.plansView.Update(msg)
		return m, cmd

	case plansview.PlanCompletedMsg:
		switch {
		case msg.Err != nil:
			m.status = "complete plan failed: " + msg.Err.Error()
		case !msg.Result.Found:
			m.status = "plan not found"
		default:
			m.status = "plan completed: " + msg.Result.Plan.Subject
		}
		return m, m.refreshCmd()

	case statsview.ReportLoadedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd

	case overviewMsg:
		if msg.err != nil {
			m.status = "overview: " + msg.err.Error()
		} else {
			m.overview = msg.out
		}
		return m, nil

	case planCreatedMsg:
		if msg.err != nil {
			m.status = "create plan failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "plan created: " + msg.plan.Subject
		return m, m.refreshCmd()

	case sessionRecordedMsg:
		if msg.err != nil {
			m.status = "record session failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("session recorded: %d min", msg.session.Duration)
		return m, m.refreshCmd()

	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = "exported: " + msg.out.Path
		}
		return m, nil

	case importedMsg:
		if msg.err != nil {
			m.status = "import failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("imported %d plans, %d sessions", msg.out.Plans, msg.out.Sessions)
		return m, m.refreshCmd()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the plans list while its filter is open.
		if m.activeTab == tabPlans && m.plansView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	// Remaining input goes to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabTimer:
		m.timerView, tabCmd = m.timerView.Update(msg)
	case tabPlans:
		m.plansView, tabCmd = m.plansView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()

	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.View()
	case tabPlans:
		return m.plansView.View()
	case tabStats:
		return m.statsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "studybuddy  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	streak := theme.Hot.Render(fmt.Sprintf("🔥 %d days", m.overview.Streak))
	hours := theme.Good.Render(fmt.Sprintf("%.2f hrs", m.overview.TotalHours))
	left := streak + "  " + hours + "  " + m.status
	if m.timerView.Running() {
		left = theme.Hot.Render("● ") + left
	}
	right := theme.Muted.Render("?:help  tab:switch  ::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "plan:new":
		if len(parts) < 4 {
			m.status = "usage: plan:new <hours> <easy|medium|hard> <subject>"
			return m, nil
		}
		hours, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			m.status = "invalid hours"
			return m, nil
		}
		subject := strings.Join(parts[3:], " ")
		return m, m.createPlanCmd(subject, hours, parts[2])

	case "plan:done":
		id, ok := m.plansView.SelectedPlanID()
		if len(parts) >= 2 {
			id, ok = parts[1], true
		}
		if !ok {
			m.status = "no plan selected"
			return m, nil
		}
		return m, m.plansView.CompleteCmd(id)

	case "session:record":
		if len(parts) < 2 {
			m.status = "usage: session:record <minutes>"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid minutes"
			return m, nil
		}
		return m, m.recordSessionCmd(minutes)

	case "timer:start":
		m.activeTab = tabTimer
		return m, m.timerView.StartCmd()

	case "timer:pause":
		return m, m.timerView.PauseCmd()

	case "timer:reset":
		return m, m.timerView.ResetCmd()

	case "timer:set":
		if len(parts) < 2 {
			m.status = "usage: timer:set <minutes>"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid minutes"
			return m, nil
		}
		return m, m.timerView.ConfigureCmd(minutes)

	case "export":
		dir := "."
		if len(parts) >= 2 {
			dir = parts[1]
		}
		return m, m.exportCmd(dir)

	case "import":
		if len(parts) < 2 {
			m.status = "usage: import <path>"
			return m, nil
		}
		return m, m.importCmd(strings.TrimSpace(strings.TrimPrefix(input, parts[0])))

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.timerView, _ = m.timerView.Update(sz)
	m.plansView, _ = m.plansView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

// refreshCmd reloads everything derived from the document after a mutation.
func (m Model) refreshCmd() tea.Cmd {
	return tea.Batch(m.overviewCmd(), m.plansView.Reload(), m.statsView.Reload())
}

func (m Model) overviewCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.study.Overview(context.Background())
		return overviewMsg{out: out, err: err}
	}
}

func (m Model) createPlanCmd(subject string, hours float64, difficulty string) tea.Cmd {
	return func() tea.Msg {
		plan, err := m.study.CreatePlan(context.Background(), subject, hours, difficulty)
		return planCreatedMsg{plan: plan, err: err}
	}
}

func (m Model) recordSessionCmd(minutes int) tea.Cmd {
	return func() tea.Msg {
		session, err := m.study.RecordSession(context.Background(), minutes)
		return sessionRecordedMsg{session: session, err: err}
	}
}

func (m Model) exportCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.study.Export(context.Background(), dir)
		return exportedMsg{out: out, err: err}
	}
}

func (m Model) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.study.Import(context.Background(), path)
		return importedMsg{out: out, err: err}
	}
}
