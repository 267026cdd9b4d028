package session

import "testing"

func TestTranscriptAppend(t *testing.T) {
	var tr Transcript
	tr.Append(RoleInterviewer, "Hello, tell me about yourself.")
	tr.Append(RoleCandidate, "My name is Dana")

	turns := tr.Turns()
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Role != RoleInterviewer || turns[1].Role != RoleCandidate {
		t.Errorf("roles = %q, %q", turns[0].Role, turns[1].Role)
	}
}

func TestPlaceholderReplaced(t *testing.T) {
	var tr Transcript
	tr.SeedPlaceholder(SimulationPlaceholder)
	if tr.Len() != 1 {
		t.Fatalf("got %d turns after seed, want 1", tr.Len())
	}

	tr.ReplacePlaceholder(RoleInterviewer, "Welcome to the simulation.")

	turns := tr.Turns()
	if len(turns) != 1 {
		t.Fatalf("got %d turns after replace, want 1", len(turns))
	}
	if turns[0].Text != "Welcome to the simulation." {
		t.Errorf("placeholder not replaced: %q", turns[0].Text)
	}

	// Only the first real turn replaces; later ones append.
	tr.ReplacePlaceholder(RoleCandidate, "Thanks.")
	if tr.Len() != 2 {
		t.Errorf("got %d turns, want 2", tr.Len())
	}
}

func TestReplaceWithoutPlaceholderAppends(t *testing.T) {
	var tr Transcript
	tr.Append(RoleInterviewer, "first")
	tr.ReplacePlaceholder(RoleCandidate, "second")
	if tr.Len() != 2 {
		t.Errorf("got %d turns, want 2", tr.Len())
	}
}

func TestClassifySender(t *testing.T) {
	cases := []struct {
		sender string
		want   Role
	}{
		{"Candidate Agent", RoleCandidate},
		{"AI Candidate", RoleCandidate},
		{"Interviewer Agent", RoleInterviewer},
		{"AI Interviewer", RoleInterviewer},
		{"", RoleInterviewer},
	}
	for _, tc := range cases {
		if got := ClassifySender(tc.sender); got != tc.want {
			t.Errorf("ClassifySender(%q) = %q, want %q", tc.sender, got, tc.want)
		}
	}
}
