// Package report renders interview reports and transcripts for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/vetta-dev/vetta/internal/api"
	"github.com/vetta-dev/vetta/internal/session"
)

// FormatReport produces a terminal-friendly, human-readable evaluation summary.
func FormatReport(id api.ID, r *api.Report) string {
	var b strings.Builder

	b.WriteString("========================================\n")
	fmt.Fprintf(&b, "  Interview Report #%s\n", id)
	b.WriteString("========================================\n")
	b.WriteString("\n")

	fmt.Fprintf(&b, "Score:       %d/100\n", r.Score)
	b.WriteString("\n")

	if r.Summary != "" {
		b.WriteString(wrapSection("Summary", r.Summary))
	}
	if r.Strengths != "" {
		b.WriteString(wrapSection("Strengths", r.Strengths))
	}
	if r.Weaknesses != "" {
		b.WriteString(wrapSection("Weaknesses", r.Weaknesses))
	}

	return b.String()
}

// FormatTranscript renders a stored transcript with sender roles aligned.
func FormatTranscript(id api.ID, entries []api.TranscriptEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Transcript for interview #%s\n\n", id)
	if len(entries) == 0 {
		b.WriteString("(no messages)\n")
		return b.String()
	}
	for _, entry := range entries {
		marker := ">"
		if session.ClassifySender(entry.Sender) == session.RoleCandidate {
			marker = "<"
		}
		fmt.Fprintf(&b, "%s %s: %s\n", marker, entry.Sender, entry.Text)
	}

	return b.String()
}

// FormatInterviews renders the interview listing as a table, newest first.
func FormatInterviews(interviews []api.Interview) string {
	var b strings.Builder

	if len(interviews) == 0 {
		b.WriteString("No interviews found.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  %-8s  %-24s  %-12s  %s\n", "ID", "CANDIDATE", "STATUS", "WARNINGS")
	for _, iv := range interviews {
		status := iv.Status
		if status == "" {
			status = "unknown"
		}
		fmt.Fprintf(&b, "  %-8s  %-24s  %-12s  %d\n", iv.ID, iv.CandidateName, status, iv.Warnings)
	}

	return b.String()
}

func wrapSection(title, body string) string {
	return fmt.Sprintf("%s:\n  %s\n\n", title, strings.ReplaceAll(strings.TrimSpace(body), "\n", "\n  "))
}
