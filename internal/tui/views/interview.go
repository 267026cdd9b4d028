package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vetta-dev/vetta/internal/session"
	"github.com/vetta-dev/vetta/internal/tui"
)

// SendTurnViewMsg is sent when the candidate submits a chat message.
type SendTurnViewMsg struct {
	Text string
}

// ExitInterviewMsg is sent when the user leaves the interview screen.
type ExitInterviewMsg struct{}

// InterviewModel is the view model for the live interview screen.
type InterviewModel struct {
	viewport  viewport.Model
	input     textinput.Model
	candidate string
	waiting   bool // a turn is in flight
	ended     bool
	degraded  bool // running without camera frames
	proctor   session.ProctorState
	width     int
	height    int
}

// NewInterviewModel creates the interview screen for a started session.
func NewInterviewModel(candidate string, degraded bool, width, height int) InterviewModel {
	ti := textinput.New()
	ti.Placeholder = "Type your answer..."
	ti.CharLimit = 2000
	ti.Width = width - 10
	ti.Focus()

	vp := viewport.New(width-8, height-10)

	return InterviewModel{
		viewport:  vp,
		input:     ti,
		candidate: candidate,
		degraded:  degraded,
		width:     width,
		height:    height,
	}
}

// Init returns the initial command for the interview view.
func (m InterviewModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetWaiting marks whether a turn exchange is in flight.
func (m *InterviewModel) SetWaiting(waiting bool) {
	m.waiting = waiting
}

// SetEnded marks the session over. Input is disabled from here on.
func (m *InterviewModel) SetEnded() {
	m.ended = true
	m.input.Blur()
}

// SetProctor updates the proctoring panel.
func (m *InterviewModel) SetProctor(state session.ProctorState) {
	m.proctor = state
	if state.Terminated {
		m.SetEnded()
	}
}

// SetTranscript re-renders the conversation into the viewport.
func (m *InterviewModel) SetTranscript(turns []session.Turn) {
	var b strings.Builder
	for _, turn := range turns {
		switch turn.Role {
		case session.RoleInterviewer:
			b.WriteString(tui.InterviewerStyle.Render("Interviewer: "))
			b.WriteString(turn.Text)
		case session.RoleCandidate:
			b.WriteString(tui.CandidateStyle.Render("You: "))
			b.WriteString(turn.Text)
		default:
			b.WriteString(tui.SystemStyle.Render(turn.Text))
		}
		b.WriteString("\n\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// Update handles messages for the interview view.
func (m InterviewModel) Update(msg tea.Msg) (InterviewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEnter:
			if m.ended || m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			return m, func() tea.Msg {
				return SendTurnViewMsg{Text: text}
			}

		case tui.KeyEsc:
			return m, func() tea.Msg { return ExitInterviewMsg{} }

		case tui.KeyUp, tui.KeyDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 10
		m.viewport.Width = msg.Width - 8
		m.viewport.Height = msg.Height - 10
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the interview view.
func (m InterviewModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	switch {
	case m.ended:
		b.WriteString(m.renderEnded())
	case m.waiting:
		b.WriteString(tui.DimStyle.Render("Waiting for the interviewer..."))
	default:
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Enter: Send       Esc: Leave       Ctrl+C: Exit"))

	return tui.BoxStyle.
		Width(m.width - 4).
		Render(b.String())
}

// renderStatusBar shows the session status and the warning pips.
func (m InterviewModel) renderStatusBar() string {
	status := tui.StatusLive + " live"
	if m.degraded {
		status = tui.StatusDegraded + " no camera"
	}
	if m.ended {
		status = tui.StatusEnded + " ended"
	}

	pips := make([]string, 0, session.MaxWarnings)
	for i := 0; i < session.MaxWarnings; i++ {
		if i < m.proctor.Warnings {
			pips = append(pips, tui.WarnFilled)
		} else {
			pips = append(pips, tui.WarnEmpty)
		}
	}
	warnings := fmt.Sprintf("Warnings %d/%d %s", m.proctor.Warnings, session.MaxWarnings, strings.Join(pips, " "))

	left := tui.TitleStyle.Render("Interview") + "  " + tui.DimStyle.Render(m.candidate)
	right := warnings + "   " + status
	gap := m.width - 8 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderEnded shows the blocking termination or completion notice.
func (m InterviewModel) renderEnded() string {
	if m.proctor.Terminated {
		message := m.proctor.LastMessage
		if message == "" {
			message = "The interview was terminated by the proctoring system."
		}
		return tui.TerminatedStyle.Render(message + "\n\nPress Esc to leave.")
	}
	return tui.SuccessStyle.Render("The interview has ended. Press Esc to leave.")
}
