package session

// MaxWarnings is the server's termination threshold. The client displays it
// but never enforces it; only a terminate event ends the session.
const MaxWarnings = 3

// ProctorState mirrors the server's view of proctoring for one session.
// Warnings never decreases and Terminated never clears.
type ProctorState struct {
	Warnings   int
	Terminated bool
	// LastMessage is the text of the most recent warning or the terminate
	// notice, for display.
	LastMessage string
}

// Apply folds one push event into the state and reports whether anything
// changed. Events that do not concern proctoring are ignored.
func (s *ProctorState) Apply(ev Event) bool {
	switch ev := ev.(type) {
	case WarningEvent:
		changed := false
		if ev.Count > s.Warnings {
			s.Warnings = ev.Count
			changed = true
		}
		if ev.Message != "" && ev.Message != s.LastMessage {
			s.LastMessage = ev.Message
			changed = true
		}
		return changed
	case TerminateEvent:
		if s.Warnings < MaxWarnings {
			s.Warnings = MaxWarnings
		}
		s.Terminated = true
		if ev.Message != "" {
			s.LastMessage = ev.Message
		}
		return true
	default:
		return false
	}
}
