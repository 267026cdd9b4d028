package session

import "testing"

func TestWarningsNeverDecrease(t *testing.T) {
	var state ProctorState

	state.Apply(WarningEvent{Count: 2, Message: "Multiple faces detected."})
	if state.Warnings != 2 {
		t.Fatalf("warnings = %d, want 2", state.Warnings)
	}

	// A stale or duplicate warning must not roll the count back.
	state.Apply(WarningEvent{Count: 1, Message: "stale"})
	if state.Warnings != 2 {
		t.Errorf("warnings = %d after stale event, want 2", state.Warnings)
	}
}

func TestWarningSequence(t *testing.T) {
	var state ProctorState

	if changed := state.Apply(WarningEvent{Count: 1, Message: "Warning 1/3"}); !changed {
		t.Error("first warning should report a change")
	}
	state.Apply(WarningEvent{Count: 2, Message: "Warning 2/3"})
	state.Apply(TerminateEvent{Message: "Interview terminated due to repeated violations."})

	if state.Warnings != 3 {
		t.Errorf("warnings = %d after terminate, want 3", state.Warnings)
	}
	if !state.Terminated {
		t.Error("state should be terminated")
	}
	if state.LastMessage != "Interview terminated due to repeated violations." {
		t.Errorf("LastMessage = %q", state.LastMessage)
	}
}

func TestTerminateClampsWarnings(t *testing.T) {
	var state ProctorState

	// Terminate can arrive without the warnings ever having been pushed.
	state.Apply(TerminateEvent{Message: "over"})
	if state.Warnings != MaxWarnings {
		t.Errorf("warnings = %d, want %d", state.Warnings, MaxWarnings)
	}
	if !state.Terminated {
		t.Error("state should be terminated")
	}

	// Nothing clears a termination.
	state.Apply(WarningEvent{Count: 1})
	if !state.Terminated {
		t.Error("termination must be permanent")
	}
}

func TestNonProctoringEventsIgnored(t *testing.T) {
	var state ProctorState

	for _, ev := range []Event{OpenedEvent{}, ClosedEvent{}, UnknownEvent{Kind: "ping"}, SimTurnEvent{}} {
		if state.Apply(ev) {
			t.Errorf("Apply(%T) reported a change", ev)
		}
	}
	if state.Warnings != 0 || state.Terminated {
		t.Errorf("state mutated by non-proctoring events: %+v", state)
	}
}
