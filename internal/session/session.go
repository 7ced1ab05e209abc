// Package session implements the keystroke-by-keystroke training engine.
package session

import (
	"errors"
	"time"

	"github.com/verte-zerg/keydrill/internal/clock"
)

// ErrSessionFinished is returned by HandleKey once every character is typed.
var ErrSessionFinished = errors.New("training session is finished")

// State is the lifecycle stage of a session.
type State int

const (
	// NotStarted means no key was pressed yet.
	NotStarted State = iota
	// InProgress means typing started and characters remain.
	InProgress
	// Finished means every character was typed correctly.
	Finished
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome is the result of the most recent keystroke.
type Outcome int

const (
	// OutcomeNone means no keystroke was handled yet.
	OutcomeNone Outcome = iota
	// OutcomeWrong means the last key did not match.
	OutcomeWrong
	// OutcomeCorrect means the last key matched and the cursor advanced.
	OutcomeCorrect
)

// Session tracks typing progress through one generated text.
// len(finished) + current + len(remaining) always equals len(content).
type Session struct {
	clock clock.Clock

	content    []rune
	finished   []rune
	remaining  []rune
	current    rune
	hasCurrent bool
	outcome    Outcome

	startedAt time.Time
	endedAt   time.Time
	started   bool
	ended     bool

	errors int
}

// New starts a session over content. Empty content yields a session that is
// already finished.
func New(content string, c clock.Clock) *Session {
	if c == nil {
		c = clock.System{}
	}
	runes := []rune(content)
	s := &Session{
		clock:    c,
		content:  runes,
		finished: make([]rune, 0, len(runes)),
	}
	if len(runes) > 0 {
		s.current = runes[0]
		s.hasCurrent = true
		s.remaining = runes[1:]
	}
	return s
}

// HandleKey feeds one typed character. A wrong key counts an error and leaves
// the cursor in place; the same character must be retried.
func (s *Session) HandleKey(input rune) error {
	if !s.hasCurrent {
		return ErrSessionFinished
	}
	if !s.started {
		s.startedAt = s.clock.Now()
		s.started = true
	}
	if input == s.current {
		s.finished = append(s.finished, input)
		if len(s.remaining) > 0 {
			s.current = s.remaining[0]
			s.remaining = s.remaining[1:]
		} else {
			s.current = 0
			s.hasCurrent = false
		}
		s.outcome = OutcomeCorrect
	} else {
		s.errors++
		s.outcome = OutcomeWrong
	}
	if !s.hasCurrent {
		s.endedAt = s.clock.Now()
		s.ended = true
	}
	return nil
}

// Content returns the full target text.
func (s *Session) Content() string {
	return string(s.content)
}

// State reports the lifecycle stage.
func (s *Session) State() State {
	switch {
	case !s.hasCurrent:
		return Finished
	case !s.started:
		return NotStarted
	default:
		return InProgress
	}
}

// IsFinished reports whether the current character is absent.
func (s *Session) IsFinished() bool {
	return !s.hasCurrent
}

// Current returns the character expected next.
func (s *Session) Current() (rune, bool) {
	return s.current, s.hasCurrent
}

// LastOutcome returns the result of the latest keystroke.
func (s *Session) LastOutcome() Outcome {
	return s.outcome
}

// Progress is the fraction of content typed correctly.
func (s *Session) Progress() float64 {
	if len(s.content) == 0 {
		return 1
	}
	return float64(len(s.finished)) / float64(len(s.content))
}

// Errors returns the number of wrong keystrokes so far.
func (s *Session) Errors() int {
	return s.errors
}

// StartedAt returns the time of the first keystroke, if any.
func (s *Session) StartedAt() (time.Time, bool) {
	return s.startedAt, s.started
}

// EndedAt returns the time the last character was typed, if finished.
func (s *Session) EndedAt() (time.Time, bool) {
	return s.endedAt, s.ended
}

// TypingSpeed measures correctly typed characters per minute, spaces
// included. Sessions shorter than a second report zero.
func (s *Session) TypingSpeed() TypingSpeed {
	if !s.started {
		return CharactersPerMinute(0)
	}
	end := s.endedAt
	if !s.ended {
		end = s.clock.Now()
	}
	duration := end.Sub(s.startedAt)
	if duration < time.Second {
		return CharactersPerMinute(0)
	}
	seconds := int(duration / time.Second)
	return CharactersPerMinute(60 * len(s.finished) / seconds)
}

// Stats returns the current statistics.
func (s *Session) Stats() Statistics {
	return Statistics{Errors: s.errors, Speed: s.TypingSpeed()}
}

// TrainingRecord snapshots the session. The timestamp is the start time, or
// now if no key was pressed.
func (s *Session) TrainingRecord() Record {
	ts := s.startedAt
	if !s.started {
		ts = s.clock.Now()
	}
	return Record{Timestamp: ts.UTC(), Stats: s.Stats()}
}
