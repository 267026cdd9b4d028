package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vetta-dev/vetta/internal/api"
	"github.com/vetta-dev/vetta/internal/session"
	"github.com/vetta-dev/vetta/internal/tui"
)

// SubmitFeedbackViewMsg is sent when the admin submits feedback text.
type SubmitFeedbackViewMsg struct {
	InterviewID api.ID
	Text        string
}

// CloseDetailMsg is sent when the admin leaves the detail screen.
type CloseDetailMsg struct{}

// DetailModel is the view model for one interview's transcript and report.
type DetailModel struct {
	interview  api.Interview
	viewport   viewport.Model
	feedback   textinput.Model
	transcript []api.TranscriptEntry
	report     *api.Report
	loadErr    error
	writing    bool // feedback input focused
	notice     string
	width      int
	height     int
}

// NewDetailModel creates the detail screen in its loading state.
func NewDetailModel(interview api.Interview, width, height int) DetailModel {
	fb := textinput.New()
	fb.Placeholder = "Feedback on this interview..."
	fb.CharLimit = 1000
	fb.Width = width - 12

	vp := viewport.New(width-8, height-12)

	return DetailModel{
		interview: interview,
		viewport:  vp,
		feedback:  fb,
		width:     width,
		height:    height,
	}
}

// Init returns the initial command for the detail view.
func (m DetailModel) Init() tea.Cmd {
	return nil
}

// SetTranscript stores the loaded transcript and re-renders.
func (m *DetailModel) SetTranscript(entries []api.TranscriptEntry, err error) {
	m.transcript = entries
	if err != nil {
		m.loadErr = err
	}
	m.render()
}

// SetReport stores the loaded report and re-renders. A missing report is
// normal for interviews still in progress.
func (m *DetailModel) SetReport(report *api.Report, err error) {
	m.report = report
	if err != nil && m.loadErr == nil {
		m.loadErr = err
	}
	m.render()
}

// SetFeedbackResult shows the outcome of a feedback submission.
func (m *DetailModel) SetFeedbackResult(err error) {
	if err != nil {
		m.notice = tui.ErrorStyle.Render("Feedback failed: " + err.Error())
		return
	}
	m.notice = tui.SuccessStyle.Render("Feedback submitted.")
	m.feedback.Reset()
	m.writing = false
	m.feedback.Blur()
}

func (m *DetailModel) render() {
	var b strings.Builder

	if m.report != nil {
		b.WriteString(tui.TitleStyle.Render(fmt.Sprintf("Score: %d/100", m.report.Score)))
		b.WriteString("\n\n")
		b.WriteString(m.report.Summary)
		b.WriteString("\n\n")
		b.WriteString(tui.SuccessStyle.Render("Strengths: "))
		b.WriteString(m.report.Strengths)
		b.WriteString("\n")
		b.WriteString(tui.WarningStyle.Render("Weaknesses: "))
		b.WriteString(m.report.Weaknesses)
		b.WriteString("\n\n")
	}

	b.WriteString(tui.TitleStyle.Render("Transcript"))
	b.WriteString("\n\n")
	if len(m.transcript) == 0 {
		b.WriteString(tui.DimStyle.Render("No transcript available."))
		b.WriteString("\n")
	}
	for _, entry := range m.transcript {
		if session.ClassifySender(entry.Sender) == session.RoleCandidate {
			b.WriteString(tui.CandidateStyle.Render(entry.Sender + ": "))
		} else {
			b.WriteString(tui.InterviewerStyle.Render(entry.Sender + ": "))
		}
		b.WriteString(entry.Text)
		b.WriteString("\n\n")
	}

	m.viewport.SetContent(b.String())
}

// Update handles messages for the detail view.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.writing {
			switch msg.String() {
			case tui.KeyEnter:
				text := strings.TrimSpace(m.feedback.Value())
				if text == "" {
					return m, nil
				}
				id := m.interview.ID
				return m, func() tea.Msg {
					return SubmitFeedbackViewMsg{InterviewID: id, Text: text}
				}
			case tui.KeyEsc:
				m.writing = false
				m.feedback.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.feedback, cmd = m.feedback.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "f":
			m.writing = true
			m.notice = ""
			return m, m.feedback.Focus()
		case tui.KeyEsc:
			return m, func() tea.Msg { return CloseDetailMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 8
		m.viewport.Height = msg.Height - 12
		m.feedback.Width = msg.Width - 12
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m DetailModel) View() string {
	var b strings.Builder

	header := fmt.Sprintf("Interview #%s - %s", m.interview.ID, m.interview.CandidateName)
	b.WriteString(tui.TitleStyle.Render(header))
	b.WriteString("\n\n")

	if m.loadErr != nil {
		b.WriteString(tui.ErrorStyle.Render(m.loadErr.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.writing {
		b.WriteString(m.feedback.View())
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("Enter: Submit       Esc: Cancel"))
	} else {
		if m.notice != "" {
			b.WriteString(m.notice)
			b.WriteString("\n")
		}
		b.WriteString(tui.DimStyle.Render("f: Write feedback       ↑/↓: Scroll       Esc: Back"))
	}

	return tui.BoxStyle.
		Width(m.width - 4).
		Render(b.String())
}
