package log

import (
	"testing"
	"time"

	"github.com/vetta-dev/vetta/internal/testutil"
)

func TestAppendAndReadAll(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := NewLogger(tmpDir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events := []LogEvent{
		{Event: EventSessionStarted, InterviewID: "42", Candidate: "Dana"},
		{Event: EventWarningReceived, InterviewID: "42", Warnings: 1, Message: "Face not detected"},
		{Event: EventSessionTerminated, InterviewID: "42", Warnings: 3},
	}
	for _, e := range events {
		if err := logger.Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ReadAll returned %d events, want 3", len(got))
	}
	if got[0].Event != EventSessionStarted || got[0].Candidate != "Dana" {
		t.Errorf("first event = %+v, want session_started for Dana", got[0])
	}
	if got[1].Warnings != 1 {
		t.Errorf("second event warnings = %d, want 1", got[1].Warnings)
	}
	if got[2].Event != EventSessionTerminated {
		t.Errorf("third event = %q, want %q", got[2].Event, EventSessionTerminated)
	}
}

func TestAppendSetsTime(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := NewLogger(tmpDir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	before := time.Now().UTC()
	if err := logger.Append(LogEvent{Event: EventTeardown}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ReadAll returned %d events, want 1", len(got))
	}
	if got[0].Time.Before(before.Add(-time.Second)) {
		t.Errorf("event time %v not set automatically", got[0].Time)
	}
}

func TestReadAllExistingLog(t *testing.T) {
	tmpDir := testutil.TempWorkspace(t, testutil.LoggedWorkspace())

	logger, err := NewLogger(tmpDir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadAll returned %d events, want 2", len(got))
	}
	if got[0].Event != EventSessionStarted || got[1].Warnings != 3 {
		t.Errorf("events = %+v", got)
	}

	// Appending must not truncate what was already there.
	if err := logger.Append(LogEvent{Event: EventTeardown}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	got, err = logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("ReadAll returned %d events after append, want 3", len(got))
	}
}

func TestReadAllMissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := NewLogger(tmpDir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll on missing file should not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadAll on missing file returned %d events, want 0", len(got))
	}
}
