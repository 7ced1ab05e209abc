package session

// Diff splits the content for rendering: the typed prefix, the expected
// character, and the text after it.
type Diff struct {
	Finished   string
	Current    rune
	HasCurrent bool
	Remaining  string
	Outcome    Outcome
}

// Diff returns the three-part split of the session content.
func (s *Session) Diff() Diff {
	return Diff{
		Finished:   string(s.finished),
		Current:    s.current,
		HasCurrent: s.hasCurrent,
		Remaining:  string(s.remaining),
		Outcome:    s.outcome,
	}
}
