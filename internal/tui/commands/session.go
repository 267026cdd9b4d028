// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vetta-dev/vetta/internal/session"
	"github.com/vetta-dev/vetta/internal/tui"
)

// StartSessionCmd creates the server-side interview and brings up the
// proctoring channel and camera. Returns SessionStartedMsg on success.
func StartSessionCmd(ctrl *session.Controller, candidateName string) tea.Cmd {
	return func() tea.Msg {
		info, err := ctrl.Start(context.Background(), candidateName)
		if err != nil {
			return tui.SessionStartErrorMsg{Err: err}
		}
		return tui.SessionStartedMsg{Info: info}
	}
}

// SendTurnCmd submits one candidate message and waits for the reply.
// The controller serializes turns; overlapping sends surface as TurnFailedMsg.
func SendTurnCmd(ctrl *session.Controller, text string) tea.Cmd {
	return func() tea.Msg {
		result, err := ctrl.SendTurn(context.Background(), text)
		if err != nil {
			return tui.TurnFailedMsg{Err: err}
		}
		return tui.TurnReplyMsg{Result: result}
	}
}

// ListenChannelCmd polls the push channel for proctoring events.
// Returns ProctorEventMsg for each event, ChannelDrainedMsg when the stream
// ends, or ChannelTickMsg on timeout to keep polling.
func ListenChannelCmd(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev, ok := <-events:
			if !ok {
				return tui.ChannelDrainedMsg{} // stream ended
			}
			return tui.ProctorEventMsg{Event: ev}
		case <-time.After(100 * time.Millisecond):
			return tui.ChannelTickMsg{} // keep polling
		}
	}
}

// TeardownCmd releases every session resource in the background.
func TeardownCmd(ctrl *session.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.Teardown()
		return nil
	}
}
