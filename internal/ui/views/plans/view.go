package plans

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	studydto "studybuddy/internal/modules/study/dto"
	"studybuddy/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type PlansPort interface {
	ListPlans(ctx context.Context) ([]studydto.PlanOutput, error)
	CompletePlan(ctx context.Context, id string) (studydto.CompletePlanOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type PlansLoadedMsg struct {
	Plans []studydto.PlanOutput
	Err   error
}

// PlanCompletedMsg bubbles up so the status bar and stats can refresh.
type PlanCompletedMsg struct {
	Result studydto.CompletePlanOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type planItem struct {
	plan studydto.PlanOutput
}

func (i planItem) Title() string {
	if i.plan.Completed {
		return "✓ " + i.plan.Subject
	}
	return "  " + i.plan.Subject
}

func (i planItem) Description() string {
	return fmt.Sprintf("%.2fh  %s  %s", i.plan.Duration, i.plan.Difficulty, i.plan.CreatedAt.Local().Format("2006-01-02"))
}

func (i planItem) FilterValue() string { return i.plan.Subject }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    PlansPort
	list    list.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port PlansPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Study plans"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)

	case PlansLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Study plans: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Study plans"
		items := make([]list.Item, len(msg.Plans))
		for i, p := range msg.Plans {
			items[i] = planItem{plan: p}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if msg.String() == "enter" && !m.Filtering() {
			if id, ok := m.SelectedPlanID(); ok {
				return m, m.CompleteCmd(id)
			}
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading plans…")
	}
	if len(m.list.Items()) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No plans yet. Open the palette with : and run plan:new <hours> <difficulty> <subject>"))
	}
	return m.list.View()
}

// SelectedPlanID returns the highlighted plan's id, if any.
func (m Model) SelectedPlanID() (string, bool) {
	if item, ok := m.list.SelectedItem().(planItem); ok {
		return item.plan.ID, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		plans, err := m.port.ListPlans(context.Background())
		return PlansLoadedMsg{Plans: plans, Err: err}
	}
}

func (m Model) CompleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.CompletePlan(context.Background(), id)
		return PlanCompletedMsg{Result: out, Err: err}
	}
}
