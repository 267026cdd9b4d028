package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vetta-dev/vetta/internal/api"
	"github.com/vetta-dev/vetta/internal/tui"
)

// LoadInterviewsCmd fetches the interview listing for the dashboard.
func LoadInterviewsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		interviews, err := client.ListInterviews(context.Background())
		return tui.InterviewsLoadedMsg{Interviews: interviews, Err: err}
	}
}

// LoadTranscriptCmd fetches one interview's stored transcript.
func LoadTranscriptCmd(client *api.Client, id api.ID) tea.Cmd {
	return func() tea.Msg {
		entries, err := client.GetTranscript(context.Background(), id)
		return tui.TranscriptLoadedMsg{InterviewID: id, Entries: entries, Err: err}
	}
}

// LoadReportCmd fetches one interview's evaluation report.
func LoadReportCmd(client *api.Client, id api.ID) tea.Cmd {
	return func() tea.Msg {
		report, err := client.GetReport(context.Background(), id)
		return tui.ReportLoadedMsg{InterviewID: id, Report: report, Err: err}
	}
}

// SubmitFeedbackCmd sends admin feedback about an interview.
func SubmitFeedbackCmd(client *api.Client, id api.ID, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := client.SubmitFeedback(context.Background(), id, text)
		return tui.FeedbackSubmittedMsg{Err: err}
	}
}
