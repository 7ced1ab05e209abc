// Package trainer drives lesson selection and training from discrete input.
package trainer

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/keydrill/internal/clock"
	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/lesson"
	"github.com/verte-zerg/keydrill/internal/lessonlist"
	"github.com/verte-zerg/keydrill/internal/session"
)

// State is the screen the app is on.
type State int

const (
	// LessonSelection is the initial state.
	LessonSelection State = iota
	// Training means a session is active.
	Training
	// Terminated is final; no input is processed.
	Terminated
)

func (s State) String() string {
	switch s {
	case LessonSelection:
		return "lesson selection"
	case Training:
		return "training"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// FinishPolicy decides what happens after a session completes.
type FinishPolicy string

const (
	// RepeatLesson starts a fresh session on the same lesson.
	RepeatLesson FinishPolicy = "repeat"
	// ReturnToSelection goes back to the lesson list.
	ReturnToSelection FinishPolicy = "select"
)

// ParseFinishPolicy validates a policy name.
func ParseFinishPolicy(value string) (FinishPolicy, error) {
	switch FinishPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case RepeatLesson:
		return RepeatLesson, nil
	case ReturnToSelection:
		return ReturnToSelection, nil
	default:
		return "", fmt.Errorf("unknown finish policy %q (want %q or %q)", value, RepeatLesson, ReturnToSelection)
	}
}

// ContentGenerator produces practice text for a lesson.
type ContentGenerator interface {
	LessonContent(l lesson.Lesson) (string, error)
}

// Options configures an App. Zero values select the system clock, a
// time-seeded generator and the repeat policy.
type Options struct {
	Clock     clock.Clock
	Generator ContentGenerator
	OnFinish  FinishPolicy
	// OnRecord, when set, receives every record appended to the history.
	OnRecord func(lessonName string, record session.Record)
}

// App is the application state machine.
type App struct {
	list     *lessonlist.List
	clock    clock.Clock
	gen      ContentGenerator
	policy   FinishPolicy
	onRecord func(string, session.Record)

	state      State
	session    *session.Session
	lastRecord *session.Record
}

// New returns an App in the LessonSelection state.
func New(list *lessonlist.List, opts Options) *App {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Generator == nil {
		opts.Generator = generator.New()
	}
	if opts.OnFinish == "" {
		opts.OnFinish = RepeatLesson
	}
	return &App{
		list:     list,
		clock:    opts.Clock,
		gen:      opts.Generator,
		policy:   opts.OnFinish,
		onRecord: opts.OnRecord,
		state:    LessonSelection,
	}
}

// State returns the current state.
func (a *App) State() State {
	return a.state
}

// List returns the lesson list for rendering and persistence.
func (a *App) List() *lessonlist.List {
	return a.list
}

// Session returns the active session, or nil outside training.
func (a *App) Session() *session.Session {
	return a.session
}

// LastRecord returns the most recently completed record.
func (a *App) LastRecord() (session.Record, bool) {
	if a.lastRecord == nil {
		return session.Record{}, false
	}
	return *a.lastRecord, true
}

// Tick processes one input. Errors leave the state unchanged.
func (a *App) Tick(in Input) error {
	if in.Kind == InputNone {
		return nil
	}
	switch a.state {
	case LessonSelection:
		return a.handleSelection(in)
	case Training:
		return a.handleTraining(in)
	default:
		return nil
	}
}

func (a *App) handleSelection(in Input) error {
	switch in.Kind {
	case InputDown:
		a.list.SelectNext()
	case InputUp:
		a.list.SelectPrev()
	case InputEnter:
		return a.startSession()
	case InputEscape:
		a.state = Terminated
	case InputChar:
		switch in.Char {
		case 'j':
			a.list.SelectNext()
		case 'k':
			a.list.SelectPrev()
		}
	}
	return nil
}

func (a *App) handleTraining(in Input) error {
	switch in.Kind {
	case InputEscape:
		a.session = nil
		a.state = LessonSelection
		return nil
	case InputChar:
	default:
		return nil
	}
	if err := a.session.HandleKey(in.Char); err != nil {
		return err
	}
	if !a.session.IsFinished() {
		return nil
	}
	record := a.session.TrainingRecord()
	if err := a.list.AddRecord(record); err != nil {
		return fmt.Errorf("failed to save training record: %w", err)
	}
	a.lastRecord = &record
	if a.onRecord != nil {
		current, _ := a.list.CurrentLesson()
		a.onRecord(current.Name, record)
	}
	if a.policy == ReturnToSelection {
		a.session = nil
		a.state = LessonSelection
		return nil
	}
	return a.startSession()
}

func (a *App) startSession() error {
	current, ok := a.list.CurrentLesson()
	if !ok {
		return nil
	}
	content, err := a.gen.LessonContent(current)
	if err != nil {
		return fmt.Errorf("failed to generate content for %s: %w", current.Name, err)
	}
	a.session = session.New(content, a.clock)
	a.state = Training
	return nil
}
