// Package views provides TUI view components for the Vetta application.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vetta-dev/vetta/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// ChooseCandidateMsg is sent when the user picks the candidate flow.
type ChooseCandidateMsg struct{}

// ChooseAdminMsg is sent when the user picks the admin dashboard.
type ChooseAdminMsg struct{}

// ============================================================================
// HomeModel
// ============================================================================

// HomeModel is the view model for the role selection screen.
type HomeModel struct {
	cursor int
	width  int
	height int

	// Err is the last error to display, if any.
	Err error
}

var homeOptions = []struct {
	label string
	hint  string
}{
	{"Take an Interview", "start a proctored AI interview as a candidate"},
	{"Admin Dashboard", "review interviews, reports and simulations"},
}

// NewHomeModel creates a new HomeModel.
func NewHomeModel(width, height int) HomeModel {
	return HomeModel{
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the home view.
func (m HomeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the home view.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, tui.DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, tui.DefaultKeyMap.Down):
			if m.cursor < len(homeOptions)-1 {
				m.cursor++
			}
		case key.Matches(msg, tui.DefaultKeyMap.Enter):
			if m.cursor == 0 {
				return m, func() tea.Msg { return ChooseCandidateMsg{} }
			}
			return m, func() tea.Msg { return ChooseAdminMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the home view.
func (m HomeModel) View() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("Vetta - AI Interview Platform")
	b.WriteString(header)
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(tui.ErrorStyle.Render("Error: " + m.Err.Error()))
		b.WriteString("\n\n")
	}

	for i, opt := range homeOptions {
		line := "  " + opt.label
		if i == m.cursor {
			line = tui.SelectedStyle.Render("> " + opt.label)
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("    " + opt.hint))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := tui.DimStyle.Render("↑/↓: Move       Enter: Select       Ctrl+C: Exit")
	b.WriteString(footer)

	content := b.String()
	boxed := tui.BoxStyle.
		Width(m.width - 4).
		Render(content)

	// Center vertically if there's space
	contentHeight := lipgloss.Height(boxed)
	if m.height > contentHeight {
		padding := (m.height - contentHeight) / 3 // Slight offset toward top
		if padding > 0 {
			boxed = strings.Repeat("\n", padding) + boxed
		}
	}

	return boxed
}
