package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vetta-dev/vetta/internal/tui"
)

// RunSimulationMsg is sent when the admin triggers a simulation run.
type RunSimulationMsg struct{}

// CloseAnalyticsMsg is sent when the admin leaves the analytics screen.
type CloseAnalyticsMsg struct{}

// AnalyticsModel is the view model for the agent analytics screen.
type AnalyticsModel struct {
	stats  tui.Stats
	width  int
	height int

	// Err is the last simulation error to display, if any.
	Err error
}

// NewAnalyticsModel creates the analytics screen from precomputed stats.
func NewAnalyticsModel(stats tui.Stats, width, height int) AnalyticsModel {
	return AnalyticsModel{
		stats:  stats,
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the analytics view.
func (m AnalyticsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the analytics view.
func (m AnalyticsModel) Update(msg tea.Msg) (AnalyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			return m, func() tea.Msg { return RunSimulationMsg{} }
		case tui.KeyEsc:
			return m, func() tea.Msg { return CloseAnalyticsMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the analytics view.
func (m AnalyticsModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Agent Analytics"))
	b.WriteString("\n\n")

	cards := []string{
		statCard("Total", fmt.Sprintf("%d", m.stats.Total), tui.TitleStyle),
		statCard("Completed", fmt.Sprintf("%d", m.stats.Completed), tui.SuccessStyle),
		statCard("Terminated", fmt.Sprintf("%d", m.stats.Terminated), tui.ErrorStyle),
		statCard("Active", fmt.Sprintf("%d", m.stats.Active), tui.WarningStyle),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(tui.ErrorStyle.Render("Simulation failed to start: " + m.Err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString("Run an agent-vs-agent simulation to exercise the interviewer")
	b.WriteString("\n")
	b.WriteString("against a synthetic candidate and review the live transcript.")
	b.WriteString("\n\n")

	b.WriteString(tui.DimStyle.Render("s: Run simulation       Esc: Back"))

	return tui.BoxStyle.
		Width(m.width - 4).
		Render(b.String())
}

func statCard(label, value string, style lipgloss.Style) string {
	card := style.Render(value) + "\n" + tui.DimStyle.Render(label)
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#374151")).
		Padding(0, 2).
		MarginRight(1).
		Render(card)
}
