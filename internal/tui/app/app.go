// Package app provides the main TUI application that wires all views together.
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vetta-dev/vetta/internal/log"
	"github.com/vetta-dev/vetta/internal/session"
	"github.com/vetta-dev/vetta/internal/tui"
	"github.com/vetta-dev/vetta/internal/tui/commands"
	"github.com/vetta-dev/vetta/internal/tui/views"
)

// App is the main TUI application that wires all views together.
type App struct {
	model *tui.Model

	// View models
	homeView       views.HomeModel
	formView       views.FormModel
	interviewView  views.InterviewModel
	dashboardView  views.DashboardModel
	detailView     views.DetailModel
	analyticsView  views.AnalyticsModel
	simulationView views.SimulationModel
}

// New creates a new App around the given model.
func New(model *tui.Model) *App {
	return &App{
		model:    model,
		homeView: views.NewHomeModel(model.Width, model.Height),
	}
}

// Init returns the initial command for the TUI.
func (a *App) Init() tea.Cmd {
	return a.homeView.Init()
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		// Only propagate to the currently active view to avoid nil pointer on uninitialized views
		var cmd tea.Cmd
		switch a.model.State {
		case tui.StateHome:
			a.homeView, cmd = a.homeView.Update(msg)
		case tui.StateForm:
			a.formView, cmd = a.formView.Update(msg)
		case tui.StateInterview:
			a.interviewView, cmd = a.interviewView.Update(msg)
		case tui.StateDashboard:
			a.dashboardView, cmd = a.dashboardView.Update(msg)
		case tui.StateDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		case tui.StateAnalytics:
			a.analyticsView, cmd = a.analyticsView.Update(msg)
		case tui.StateSimulation:
			a.simulationView, cmd = a.simulationView.Update(msg)
		}
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			if a.model.CtrlCPending {
				// Second press within timeout - release everything and exit
				a.cleanup()
				return a, tea.Quit
			}
			// First press - set pending and start timeout
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(t time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		}

	case tui.CtrlCResetMsg:
		// Reset Ctrl+C confirmation state after timeout
		a.model.CtrlCPending = false
		return a, nil

	case tui.SessionStartedMsg:
		return a.handleSessionStarted(msg)

	case tui.SessionStartErrorMsg:
		a.model.Err = msg.Err
		a.homeView.Err = msg.Err
		a.model.State = tui.StateHome
		return a, nil

	case tui.ErrorMsg:
		a.model.Err = msg.Err
		a.homeView.Err = msg.Err
		a.model.State = tui.StateHome
		return a, nil
	}

	// Route messages based on current state
	switch a.model.State {
	case tui.StateHome:
		return a.updateHome(msg)

	case tui.StateForm:
		return a.updateForm(msg)

	case tui.StateStarting:
		return a.updateStarting(msg)

	case tui.StateInterview:
		return a.updateInterview(msg)

	case tui.StateDashboard:
		return a.updateDashboard(msg)

	case tui.StateDetail:
		return a.updateDetail(msg)

	case tui.StateAnalytics:
		return a.updateAnalytics(msg)

	case tui.StateSimulation:
		return a.updateSimulation(msg)
	}

	return a, nil
}

// View renders the current application state.
func (a *App) View() string {
	var content string
	needsCentering := true

	switch a.model.State {
	case tui.StateHome:
		content = a.homeView.View()

	case tui.StateForm:
		content = a.formView.View()

	case tui.StateStarting:
		content = a.renderStartingView()

	case tui.StateInterview:
		content = a.interviewView.View()
		needsCentering = false

	case tui.StateDashboard:
		content = a.dashboardView.View()
		needsCentering = false

	case tui.StateDetail:
		content = a.detailView.View()
		needsCentering = false

	case tui.StateAnalytics:
		content = a.analyticsView.View()

	case tui.StateSimulation:
		content = a.simulationView.View()
		needsCentering = false

	default:
		content = "Unknown state"
	}

	if a.model.CtrlCPending {
		notice := tui.WarningStyle.Render("Press Ctrl+C again to exit")
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", notice)
	}

	if needsCentering {
		content = a.centerContent(content)
	}

	return content
}

// centerContent centers the given content both horizontally and vertically.
func (a *App) centerContent(content string) string {
	return lipgloss.Place(
		a.model.Width,
		a.model.Height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// ============================================================================
// State Update Handlers
// ============================================================================

func (a *App) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.homeView, cmd = a.homeView.Update(msg)

	switch msg.(type) {
	case views.ChooseCandidateMsg:
		a.model.Err = nil
		a.homeView.Err = nil
		a.model.ActiveTab = tui.TabCandidate
		a.model.State = tui.StateForm
		a.formView = views.NewFormModel(a.model.Width, a.model.Height)
		return a, a.formView.Init()

	case views.ChooseAdminMsg:
		a.model.Err = nil
		a.homeView.Err = nil
		a.model.ActiveTab = tui.TabAdmin
		a.model.State = tui.StateDashboard
		a.dashboardView = views.NewDashboardModel(a.model.Width, a.model.Height)
		return a, tea.Batch(
			a.dashboardView.Init(),
			commands.LoadInterviewsCmd(a.model.Client),
		)
	}

	return a, cmd
}

func (a *App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.formView, cmd = a.formView.Update(msg)

	switch msg := msg.(type) {
	case views.SubmitFormMsg:
		a.model.Candidate = tui.CandidateInfo{
			Name:   msg.Name,
			Email:  msg.Email,
			Mobile: msg.Mobile,
		}
		a.model.State = tui.StateStarting
		return a, tea.Batch(
			a.model.Spinner.Tick,
			commands.StartSessionCmd(a.model.Controller, msg.Name),
		)

	case views.CancelFormMsg:
		a.model.State = tui.StateHome
		return a, a.homeView.Init()
	}

	return a, cmd
}

func (a *App) updateStarting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		a.model.Spinner, cmd = a.model.Spinner.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleSessionStarted wires the live session into the interview screen.
func (a *App) handleSessionStarted(msg tui.SessionStartedMsg) (tea.Model, tea.Cmd) {
	info := msg.Info

	a.model.Proctor = session.ProctorState{}
	a.model.Transcript = session.Transcript{}
	a.model.Transcript.Append(session.RoleInterviewer, info.Opening)

	if a.model.History != nil {
		if att, err := a.model.History.RecordAttempt(string(info.Handle.ID), info.Handle.Candidate); err == nil {
			a.model.AttemptID = att.ID
		}
	}

	a.interviewView = views.NewInterviewModel(
		info.Handle.Candidate,
		info.CameraErr != nil,
		a.model.Width,
		a.model.Height,
	)
	a.interviewView.SetTranscript(a.model.Transcript.Turns())
	a.model.State = tui.StateInterview

	return a, tea.Batch(
		a.interviewView.Init(),
		commands.ListenChannelCmd(a.model.Controller.Events()),
	)
}

func (a *App) updateInterview(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.interviewView, cmd = a.interviewView.Update(msg)

	switch msg := msg.(type) {
	case views.SendTurnViewMsg:
		a.model.Transcript.Append(session.RoleCandidate, msg.Text)
		a.interviewView.SetTranscript(a.model.Transcript.Turns())
		a.interviewView.SetWaiting(true)
		return a, commands.SendTurnCmd(a.model.Controller, msg.Text)

	case tui.TurnReplyMsg:
		a.interviewView.SetWaiting(false)
		// A reply may race a terminate push; keep it for the record but
		// never reopen an ended session.
		a.model.Transcript.Append(session.RoleInterviewer, msg.Result.Message)
		a.interviewView.SetTranscript(a.model.Transcript.Turns())
		if msg.Result.Terminated {
			a.interviewView.SetEnded()
			a.finishAttempt("completed")
		}
		return a, cmd

	case tui.TurnFailedMsg:
		a.interviewView.SetWaiting(false)
		if errors.Is(msg.Err, session.ErrSessionOver) || errors.Is(msg.Err, session.ErrTurnInFlight) {
			return a, cmd
		}
		a.model.Transcript.Append(session.RoleSystem,
			"The interviewer could not respond. Please send your message again.")
		a.interviewView.SetTranscript(a.model.Transcript.Turns())
		return a, cmd

	case tui.ProctorEventMsg:
		return a.handleProctorEvent(msg.Event)

	case tui.ChannelTickMsg:
		if events := a.model.Controller.Events(); events != nil {
			return a, commands.ListenChannelCmd(events)
		}
		return a, cmd

	case tui.ChannelDrainedMsg:
		// Push channel fully shut down; nothing left to listen for.
		a.logEvent(log.LogEvent{Event: log.EventChannelClosed})
		return a, cmd

	case views.ExitInterviewMsg:
		a.leaveSession()
		a.model.State = tui.StateHome
		return a, a.homeView.Init()
	}

	return a, cmd
}

// handleProctorEvent folds one push event into the session state.
func (a *App) handleProctorEvent(ev session.Event) (tea.Model, tea.Cmd) {
	listen := func() tea.Cmd {
		if events := a.model.Controller.Events(); events != nil {
			return commands.ListenChannelCmd(events)
		}
		return nil
	}

	switch ev := ev.(type) {
	case session.WarningEvent:
		a.model.Proctor.Apply(ev)
		a.model.Controller.NoteWarning(ev.Count, ev.Message)
		a.interviewView.SetProctor(a.model.Proctor)
		return a, listen()

	case session.TerminateEvent:
		a.model.Proctor.Apply(ev)
		a.model.Controller.NoteTerminated(ev.Message)
		a.interviewView.SetProctor(a.model.Proctor)
		a.finishAttempt("terminated")
		return a, listen()

	case session.TransportErrorEvent:
		a.logEvent(log.LogEvent{Event: log.EventChannelError, Error: ev.Err.Error()})
		if !a.model.Proctor.Terminated {
			a.model.Transcript.Append(session.RoleSystem,
				"Proctoring connection lost. The interview continues without monitoring.")
			a.interviewView.SetTranscript(a.model.Transcript.Turns())
		}
		return a, listen()

	default:
		// OpenedEvent, ClosedEvent, UnknownEvent and simulation kinds
		// carry nothing for the interview screen.
		return a, listen()
	}
}

func (a *App) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.dashboardView, cmd = a.dashboardView.Update(msg)

	switch msg := msg.(type) {
	case tui.InterviewsLoadedMsg:
		a.model.Interviews = msg.Interviews
		a.dashboardView.SetInterviews(msg.Interviews, msg.Err)
		return a, cmd

	case views.OpenDetailMsg:
		a.model.State = tui.StateDetail
		a.detailView = views.NewDetailModel(msg.Interview, a.model.Width, a.model.Height)
		return a, tea.Batch(
			a.detailView.Init(),
			commands.LoadTranscriptCmd(a.model.Client, msg.Interview.ID),
			commands.LoadReportCmd(a.model.Client, msg.Interview.ID),
		)

	case views.OpenAnalyticsMsg:
		a.model.State = tui.StateAnalytics
		a.analyticsView = views.NewAnalyticsModel(
			tui.ComputeStats(a.model.Interviews),
			a.model.Width,
			a.model.Height,
		)
		return a, a.analyticsView.Init()

	case views.RefreshInterviewsMsg:
		return a, commands.LoadInterviewsCmd(a.model.Client)

	case views.ExitDashboardMsg:
		a.model.State = tui.StateHome
		return a, a.homeView.Init()
	}

	return a, cmd
}

func (a *App) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.detailView, cmd = a.detailView.Update(msg)

	switch msg := msg.(type) {
	case tui.TranscriptLoadedMsg:
		a.detailView.SetTranscript(msg.Entries, msg.Err)
		return a, cmd

	case tui.ReportLoadedMsg:
		a.detailView.SetReport(msg.Report, msg.Err)
		return a, cmd

	case views.SubmitFeedbackViewMsg:
		return a, commands.SubmitFeedbackCmd(a.model.Client, msg.InterviewID, msg.Text)

	case tui.FeedbackSubmittedMsg:
		a.detailView.SetFeedbackResult(msg.Err)
		return a, cmd

	case views.CloseDetailMsg:
		a.model.State = tui.StateDashboard
		return a, nil
	}

	return a, cmd
}

func (a *App) updateAnalytics(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.analyticsView, cmd = a.analyticsView.Update(msg)

	switch msg := msg.(type) {
	case views.RunSimulationMsg:
		a.analyticsView.Err = nil
		return a, commands.StartSimulationCmd(a.model.Client, a.model.Logger)

	case tui.SimulationStartedMsg:
		a.model.Simulation = msg.Sim
		a.model.State = tui.StateSimulation
		a.simulationView = views.NewSimulationModel(a.model.Width, a.model.Height)
		a.simulationView.Sync(msg.Sim)
		return a, tea.Batch(
			a.simulationView.Init(),
			commands.ListenSimulationCmd(msg.Sim),
		)

	case tui.SimulationStartErrorMsg:
		a.analyticsView.Err = msg.Err
		return a, cmd

	case views.CloseAnalyticsMsg:
		a.model.State = tui.StateDashboard
		return a, nil
	}

	return a, cmd
}

func (a *App) updateSimulation(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.simulationView, cmd = a.simulationView.Update(msg)

	switch msg := msg.(type) {
	case tui.SimulationEventMsg:
		if a.model.Simulation != nil {
			a.model.Simulation.Apply(msg.Event)
			a.simulationView.Sync(a.model.Simulation)
			return a, commands.ListenSimulationCmd(a.model.Simulation)
		}
		return a, cmd

	case tui.SimulationTickMsg:
		if a.model.Simulation != nil {
			return a, commands.ListenSimulationCmd(a.model.Simulation)
		}
		return a, cmd

	case tui.SimulationDrainedMsg:
		if a.model.Simulation != nil {
			a.simulationView.Sync(a.model.Simulation)
		}
		return a, cmd

	case views.CloseSimulationMsg:
		if a.model.Simulation != nil {
			a.model.Simulation.Close()
			a.model.Simulation = nil
		}
		a.model.State = tui.StateAnalytics
		return a, nil
	}

	return a, cmd
}

// ============================================================================
// Helper Methods
// ============================================================================

// renderStartingView renders the loading state while the server creates the
// interview and the proctoring channel comes up.
func (a *App) renderStartingView() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("Starting Interview...")
	b.WriteString(header)
	b.WriteString("\n\n")

	spinnerLine := fmt.Sprintf("%s Contacting the interview server...", a.model.Spinner.View())
	b.WriteString(spinnerLine)
	b.WriteString("\n\n")

	hints := []string{
		"Creating your interview session",
		"Opening the proctoring channel",
		"Checking your camera",
	}
	for _, hint := range hints {
		b.WriteString(tui.DimStyle.Render("  - " + hint))
		b.WriteString("\n")
	}

	const maxBoxWidth = 70
	boxWidth := maxBoxWidth
	if a.model.Width-4 < boxWidth {
		boxWidth = a.model.Width - 4
	}

	return tui.BoxStyle.
		Width(boxWidth).
		Render(b.String())
}

// finishAttempt closes the local history record for the running session.
func (a *App) finishAttempt(status string) {
	if a.model.History == nil || a.model.AttemptID == "" {
		return
	}
	turns := 0
	for _, turn := range a.model.Transcript.Turns() {
		if turn.Role == session.RoleCandidate {
			turns++
		}
	}
	_ = a.model.History.FinishAttempt(a.model.AttemptID, status, a.model.Proctor.Warnings, turns)
	a.model.AttemptID = ""
}

// logEvent writes one audit line; logging never interrupts the UI.
func (a *App) logEvent(ev log.LogEvent) {
	if a.model.Logger == nil {
		return
	}
	if id, ok := a.model.Controller.Handle(); ok {
		ev.InterviewID = string(id.ID)
	}
	_ = a.model.Logger.Append(ev)
}

// leaveSession releases session resources when the candidate exits the
// interview screen.
func (a *App) leaveSession() {
	if a.model.AttemptID != "" {
		a.finishAttempt("abandoned")
	}
	a.model.Controller.Teardown()
}

// cleanup releases everything before the program exits.
func (a *App) cleanup() {
	a.leaveSession()
	if a.model.Simulation != nil {
		a.model.Simulation.Close()
		a.model.Simulation = nil
	}
}
