package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vetta-dev/vetta/internal/tui"
)

// SubmitFormMsg is sent when the pre-interview form validates and submits.
type SubmitFormMsg struct {
	Name   string
	Email  string
	Mobile string
}

// CancelFormMsg is sent when the user backs out of the form.
type CancelFormMsg struct{}

const (
	fieldName = iota
	fieldEmail
	fieldMobile
	fieldCount
)

// FormModel is the view model for the pre-interview candidate form.
type FormModel struct {
	inputs  []textinput.Model
	focused int
	errMsg  string
	width   int
	height  int
}

// NewFormModel creates the pre-interview form with the name field focused.
func NewFormModel(width, height int) FormModel {
	inputs := make([]textinput.Model, fieldCount)

	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 100
	name.Width = 40
	name.Focus()
	inputs[fieldName] = name

	email := textinput.New()
	email.Placeholder = "Email address"
	email.CharLimit = 100
	email.Width = 40
	inputs[fieldEmail] = email

	mobile := textinput.New()
	mobile.Placeholder = "Mobile number (optional)"
	mobile.CharLimit = 20
	mobile.Width = 40
	inputs[fieldMobile] = mobile

	return FormModel{
		inputs: inputs,
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the form view.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form view.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEsc:
			return m, func() tea.Msg { return CancelFormMsg{} }

		case tui.KeyTab, tui.KeyDown:
			m.setFocus((m.focused + 1) % fieldCount)
			return m, nil

		case "shift+tab", tui.KeyUp:
			m.setFocus((m.focused + fieldCount - 1) % fieldCount)
			return m, nil

		case tui.KeyEnter:
			if m.focused < fieldCount-1 {
				m.setFocus(m.focused + 1)
				return m, nil
			}
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *FormModel) setFocus(idx int) {
	m.inputs[m.focused].Blur()
	m.focused = idx
	m.inputs[m.focused].Focus()
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	mobile := strings.TrimSpace(m.inputs[fieldMobile].Value())

	if name == "" {
		m.errMsg = "Name is required."
		m.setFocus(fieldName)
		return m, nil
	}
	if email != "" && !strings.Contains(email, "@") {
		m.errMsg = "Email address looks invalid."
		m.setFocus(fieldEmail)
		return m, nil
	}

	m.errMsg = ""
	return m, func() tea.Msg {
		return SubmitFormMsg{Name: name, Email: email, Mobile: mobile}
	}
}

// View renders the form view.
func (m FormModel) View() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("Before We Begin")
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString("Your camera will be used for proctoring during the interview.")
	b.WriteString("\n\n")

	labels := []string{"Name", "Email", "Mobile"}
	for i, input := range m.inputs {
		label := labels[i]
		if i == m.focused {
			label = tui.SelectedStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	if m.errMsg != "" {
		b.WriteString(tui.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n\n")
	}

	footer := tui.DimStyle.Render("Tab: Next field       Enter: Submit       Esc: Back")
	b.WriteString(footer)

	content := b.String()
	return tui.BoxStyle.
		Width(min(m.width-4, 60)).
		Render(content)
}
