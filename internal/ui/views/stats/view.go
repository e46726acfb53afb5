package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "studybuddy/internal/modules/analytics/dto"
	"studybuddy/internal/ui/theme"
)

const chartHeight = 8

type StatsPort interface {
	Report(ctx context.Context) (analyticsdto.ReportOutput, error)
}

type ReportLoadedMsg struct {
	Report analyticsdto.ReportOutput
	Err    error
}

type Model struct {
	port     StatsPort
	report   analyticsdto.ReportOutput
	err      error
	vp       viewport.Model
	renderer *glamour.TermRenderer
	width    int
	height   int
}

func New(port StatsPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1, 2)
	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)
	return Model{port: port, vp: vp, renderer: r}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height
		if r, err := glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(msg.Width),
		); err == nil {
			m.renderer = r
		}
		m.vp.SetContent(m.render())
	case ReportLoadedMsg:
		m.report = msg.Report
		m.err = msg.Err
		m.vp.SetContent(m.render())
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.vp.View()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		report, err := m.port.Report(context.Background())
		return ReportLoadedMsg{Report: report, Err: err}
	}
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render("stats: " + m.err.Error())
	}
	var sb strings.Builder
	sb.WriteString(m.renderSummary())
	sb.WriteString(theme.Title.Render("Last 7 days") + "\n\n")
	sb.WriteString(RenderChart(m.report.Last7Days, chartHeight))
	return sb.String()
}

func (m Model) renderSummary() string {
	md := SummaryMarkdown(m.report)
	if m.renderer == nil {
		return md + "\n"
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md + "\n"
	}
	return out
}

// SummaryMarkdown lays the headline metrics out as a markdown table.
func SummaryMarkdown(r analyticsdto.ReportOutput) string {
	avg := analyticsdto.NotEnoughData
	if r.AverageSessionMinutes.HasData {
		avg = fmt.Sprintf("%d min", r.AverageSessionMinutes.Minutes)
	}
	var sb strings.Builder
	sb.WriteString("## Analytics\n\n")
	sb.WriteString("| metric | value |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| streak | %d days |\n", r.Streak))
	sb.WriteString(fmt.Sprintf("| total | %.2f hrs |\n", r.TotalHours))
	sb.WriteString(fmt.Sprintf("| completion rate | %d%% |\n", r.CompletionRate))
	sb.WriteString(fmt.Sprintf("| average session | %s |\n", avg))
	sb.WriteString(fmt.Sprintf("| most productive | %s |\n", r.MostProductiveWeekday.Weekday))
	return sb.String()
}

// RenderChart draws one column per day, scaled so Ceiling fills height rows.
func RenderChart(h analyticsdto.HistogramOutput, height int) string {
	if len(h.Bars) == 0 || h.Ceiling <= 0 || height <= 0 {
		return ""
	}
	columns := make([]string, 0, len(h.Bars))
	for _, bar := range h.Bars {
		filled := bar.Minutes * height / h.Ceiling
		if bar.Minutes > 0 && filled == 0 {
			filled = 1
		}
		var col strings.Builder
		col.WriteString(fmt.Sprintf("%4d\n", bar.Minutes))
		for row := height; row > 0; row-- {
			if row <= filled {
				col.WriteString(theme.Bar.Render(" ██ ") + "\n")
			} else {
				col.WriteString(theme.BarEmpty.Render(" ·· ") + "\n")
			}
		}
		col.WriteString(fmt.Sprintf(" %-3s", bar.Label))
		columns = append(columns, col.String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, columns...)
}
