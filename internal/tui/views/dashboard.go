package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vetta-dev/vetta/internal/api"
	"github.com/vetta-dev/vetta/internal/tui"
)

// OpenDetailMsg is sent when the admin selects an interview to inspect.
type OpenDetailMsg struct {
	Interview api.Interview
}

// OpenAnalyticsMsg is sent when the admin opens the analytics screen.
type OpenAnalyticsMsg struct{}

// RefreshInterviewsMsg is sent when the admin requests a reload.
type RefreshInterviewsMsg struct{}

// ExitDashboardMsg is sent when the admin leaves the dashboard.
type ExitDashboardMsg struct{}

// interviewItem adapts an api.Interview to the bubbles list.
type interviewItem struct {
	interview api.Interview
}

func (i interviewItem) Title() string {
	return fmt.Sprintf("#%s  %s", i.interview.ID, i.interview.CandidateName)
}

func (i interviewItem) Description() string {
	status := i.interview.Status
	if status == "" {
		status = "unknown"
	}
	return fmt.Sprintf("%s, %d warnings", status, i.interview.Warnings)
}

func (i interviewItem) FilterValue() string {
	return i.interview.CandidateName
}

// DashboardModel is the view model for the admin interview listing.
type DashboardModel struct {
	list    list.Model
	loading bool
	err     error
	width   int
	height  int
}

// NewDashboardModel creates the dashboard in its loading state.
func NewDashboardModel(width, height int) DashboardModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), width-8, height-10)
	l.Title = "Interviews"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return DashboardModel{
		list:    l,
		loading: true,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command for the dashboard view.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// SetInterviews replaces the listing. The server orders newest first.
func (m *DashboardModel) SetInterviews(interviews []api.Interview, err error) {
	m.loading = false
	m.err = err
	items := make([]list.Item, len(interviews))
	for i, iv := range interviews {
		items[i] = interviewItem{interview: iv}
	}
	m.list.SetItems(items)
}

// Update handles messages for the dashboard view.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEnter:
			if item, ok := m.list.SelectedItem().(interviewItem); ok {
				return m, func() tea.Msg {
					return OpenDetailMsg{Interview: item.interview}
				}
			}
		case "a":
			return m, func() tea.Msg { return OpenAnalyticsMsg{} }
		case "r":
			m.loading = true
			return m, func() tea.Msg { return RefreshInterviewsMsg{} }
		case tui.KeyEsc:
			return m, func() tea.Msg { return ExitDashboardMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-8, msg.Height-10)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the dashboard view.
func (m DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Admin Dashboard"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(tui.ErrorStyle.Render("Failed to load interviews: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("Press 'r' to retry."))
	case m.loading:
		b.WriteString(tui.DimStyle.Render("Loading interviews..."))
	case len(m.list.Items()) == 0:
		b.WriteString(tui.DimStyle.Render("No interviews yet."))
	default:
		b.WriteString(m.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("Enter: Open       a: Analytics       r: Refresh       Esc: Back"))

	return tui.BoxStyle.
		Width(m.width - 4).
		Render(b.String())
}
