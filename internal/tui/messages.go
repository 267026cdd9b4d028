// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/vetta-dev/vetta/internal/api"
	"github.com/vetta-dev/vetta/internal/session"
)

// ============================================================================
// Session Messages
// ============================================================================

// SessionStartedMsg signals that the server created the interview and the
// proctoring channel is up.
type SessionStartedMsg struct {
	Info *session.StartInfo
}

// SessionStartErrorMsg signals that the session could not be started.
type SessionStartErrorMsg struct {
	Err error
}

// TurnReplyMsg carries the interviewer's reply to a submitted turn.
type TurnReplyMsg struct {
	Result *api.TurnResult
}

// TurnFailedMsg signals that a turn exchange failed. The session stays open.
type TurnFailedMsg struct {
	Err error
}

// ProctorEventMsg carries one event from the proctoring push channel.
type ProctorEventMsg struct {
	Event session.Event
}

// ChannelTickMsg re-arms the push channel listener when no event arrived
// within the polling window.
type ChannelTickMsg struct{}

// ChannelDrainedMsg signals that the push channel's event stream ended.
type ChannelDrainedMsg struct{}

// ============================================================================
// Admin Messages
// ============================================================================

// InterviewsLoadedMsg carries the interview listing for the dashboard.
type InterviewsLoadedMsg struct {
	Interviews []api.Interview
	Err        error
}

// TranscriptLoadedMsg carries one interview's stored transcript.
type TranscriptLoadedMsg struct {
	InterviewID api.ID
	Entries     []api.TranscriptEntry
	Err         error
}

// ReportLoadedMsg carries one interview's evaluation report.
type ReportLoadedMsg struct {
	InterviewID api.ID
	Report      *api.Report
	Err         error
}

// FeedbackSubmittedMsg signals the outcome of a feedback submission.
type FeedbackSubmittedMsg struct {
	Err error
}

// ============================================================================
// Simulation Messages
// ============================================================================

// SimulationStartedMsg signals that a simulation run began streaming.
type SimulationStartedMsg struct {
	Sim *session.Simulation
}

// SimulationStartErrorMsg signals that a simulation could not be started.
type SimulationStartErrorMsg struct {
	Err error
}

// SimulationEventMsg carries one event from the simulation channel.
type SimulationEventMsg struct {
	Event session.Event
}

// SimulationTickMsg re-arms the simulation listener.
type SimulationTickMsg struct{}

// SimulationDrainedMsg signals that the simulation stream ended.
type SimulationDrainedMsg struct{}

// ============================================================================
// Utility Messages
// ============================================================================

// CtrlCResetMsg clears the Ctrl+C confirmation after its timeout.
type CtrlCResetMsg struct{}

// ErrorMsg is a generic error message for unrecoverable errors.
type ErrorMsg struct {
	Err error
}
