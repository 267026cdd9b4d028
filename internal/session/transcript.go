package session

import "strings"

// Role identifies who produced a transcript turn.
type Role string

const (
	RoleInterviewer Role = "interviewer"
	RoleCandidate   Role = "candidate"
	RoleSystem      Role = "system"
)

// Turn is one utterance in a transcript. Highlight marks turns the UI should
// render prominently, such as a simulation completion notice.
type Turn struct {
	Role      Role
	Text      string
	Highlight bool
}

// Transcript is an append-only conversation log. The placeholder mechanism
// lets a view seed a provisional line and swap it for real content once the
// first event arrives; the placeholder is removed, not hidden.
type Transcript struct {
	turns       []Turn
	placeholder bool
}

// Append adds one turn to the end of the transcript.
func (t *Transcript) Append(role Role, text string) {
	t.turns = append(t.turns, Turn{Role: role, Text: text})
}

// AppendHighlighted adds one highlighted turn.
func (t *Transcript) AppendHighlighted(role Role, text string) {
	t.turns = append(t.turns, Turn{Role: role, Text: text, Highlight: true})
}

// SeedPlaceholder starts the transcript with a provisional system line. The
// next ReplacePlaceholder call removes it.
func (t *Transcript) SeedPlaceholder(text string) {
	t.turns = append(t.turns, Turn{Role: RoleSystem, Text: text})
	t.placeholder = true
}

// ReplacePlaceholder removes the seeded placeholder, if any, and appends the
// turn in its place. Without a pending placeholder it behaves like Append.
func (t *Transcript) ReplacePlaceholder(role Role, text string) {
	if t.placeholder && len(t.turns) > 0 {
		t.turns = t.turns[:len(t.turns)-1]
		t.placeholder = false
	}
	t.turns = append(t.turns, Turn{Role: role, Text: text})
}

// Clear discards every turn.
func (t *Transcript) Clear() {
	t.turns = nil
	t.placeholder = false
}

// Turns returns the transcript in order. The returned slice is shared; do
// not mutate it.
func (t *Transcript) Turns() []Turn {
	return t.turns
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	return len(t.turns)
}

// ClassifySender maps a free-form sender label from the server to a role.
// Simulation agents self-identify with names like "Candidate Agent".
func ClassifySender(sender string) Role {
	if strings.Contains(sender, "Candidate") {
		return RoleCandidate
	}
	return RoleInterviewer
}
