package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vetta-dev/vetta/internal/session"
	"github.com/vetta-dev/vetta/internal/tui"
)

// CloseSimulationMsg is sent when the admin dismisses the simulation screen.
type CloseSimulationMsg struct{}

// SimulationModel is the view model for a live simulation transcript.
type SimulationModel struct {
	viewport viewport.Model
	live     bool
	failed   bool
	notice   string
	width    int
	height   int
}

// NewSimulationModel creates the simulation screen in its streaming state.
func NewSimulationModel(width, height int) SimulationModel {
	vp := viewport.New(width-8, height-10)
	return SimulationModel{
		viewport: vp,
		live:     true,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the simulation view.
func (m SimulationModel) Init() tea.Cmd {
	return nil
}

// Sync re-renders the view from the simulation state.
func (m *SimulationModel) Sync(sim *session.Simulation) {
	m.live = sim.Live
	m.failed = sim.Failed
	m.notice = sim.Notice

	var b strings.Builder
	for _, turn := range sim.Transcript.Turns() {
		switch {
		case turn.Highlight:
			b.WriteString(tui.SuccessStyle.Render(turn.Text))
		case turn.Role == session.RoleCandidate:
			b.WriteString(tui.CandidateStyle.Render("Candidate: "))
			b.WriteString(turn.Text)
		case turn.Role == session.RoleInterviewer:
			b.WriteString(tui.InterviewerStyle.Render("Interviewer: "))
			b.WriteString(turn.Text)
		default:
			b.WriteString(tui.SystemStyle.Render(turn.Text))
		}
		b.WriteString("\n\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// Update handles messages for the simulation view.
func (m SimulationModel) Update(msg tea.Msg) (SimulationModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == tui.KeyEsc {
			return m, func() tea.Msg { return CloseSimulationMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 8
		m.viewport.Height = msg.Height - 10
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the simulation view.
func (m SimulationModel) View() string {
	var b strings.Builder

	title := "Simulation"
	if m.live {
		title += " (live)"
	}
	b.WriteString(tui.TitleStyle.Render(title))
	b.WriteString("\n\n")

	if m.failed {
		b.WriteString(tui.ErrorStyle.Render("Simulation failed: " + m.notice))
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	b.WriteString(tui.DimStyle.Render("↑/↓: Scroll       Esc: Close"))

	return tui.BoxStyle.
		Width(m.width - 4).
		Render(b.String())
}
