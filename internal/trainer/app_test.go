package trainer

import (
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/keydrill/internal/clock"
	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/lesson"
	"github.com/verte-zerg/keydrill/internal/lessonlist"
	"github.com/verte-zerg/keydrill/internal/session"
)

type fixedContent string

func (f fixedContent) LessonContent(lesson.Lesson) (string, error) {
	return string(f), nil
}

func testLessons() []lesson.Lesson {
	first := lesson.FromChars("Lesson 1", []rune("ab"), 4, 2, lesson.Equal())
	return []lesson.Lesson{first, first.AddChars("Lesson 2", []rune("c"), lesson.Equal())}
}

func newTestApp(policy FinishPolicy) (*App, *clock.Fake) {
	c := clock.NewFake(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	app := New(lessonlist.New(testLessons()), Options{
		Clock:     c,
		Generator: fixedContent("ab"),
		OnFinish:  policy,
	})
	return app, c
}

func mustTick(t *testing.T, app *App, inputs ...Input) {
	t.Helper()
	for _, in := range inputs {
		if err := app.Tick(in); err != nil {
			t.Fatalf("tick %+v failed: %v", in, err)
		}
	}
}

func TestInitialState(t *testing.T) {
	app, _ := newTestApp(RepeatLesson)
	if app.State() != LessonSelection {
		t.Fatalf("expected lesson selection, got %v", app.State())
	}
	if app.Session() != nil {
		t.Fatalf("expected no session before training")
	}
}

func TestNoInputIsNoop(t *testing.T) {
	app, _ := newTestApp(RepeatLesson)
	mustTick(t, app, NoInput(), NoInput())
	if _, ok := app.List().Selected(); ok {
		t.Fatalf("expected no selection after empty ticks")
	}
}

func TestSelectionNavigation(t *testing.T) {
	app, _ := newTestApp(RepeatLesson)
	mustTick(t, app, Key(InputDown), Key(InputDown))
	if idx, _ := app.List().Selected(); idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	mustTick(t, app, Key(InputUp))
	if idx, _ := app.List().Selected(); idx != 0 {
		t.Fatalf("expected index 0, got %d", idx)
	}
	mustTick(t, app, Char('j'))
	if idx, _ := app.List().Selected(); idx != 1 {
		t.Fatalf("expected j to move down, got %d", idx)
	}
	mustTick(t, app, Char('k'))
	if idx, _ := app.List().Selected(); idx != 0 {
		t.Fatalf("expected k to move up, got %d", idx)
	}
}

func TestEnterWithoutSelectionStaysInSelection(t *testing.T) {
	app, _ := newTestApp(RepeatLesson)
	mustTick(t, app, Key(InputEnter))
	if app.State() != LessonSelection {
		t.Fatalf("expected to stay in selection, got %v", app.State())
	}
}

func TestEnterStartsTraining(t *testing.T) {
	app, _ := newTestApp(RepeatLesson)
	mustTick(t, app, Key(InputDown), Key(InputEnter))
	if app.State() != Training {
		t.Fatalf("expected training, got %v", app.State())
	}
	if app.Session() == nil || app.Session().Content() != "ab" {
		t.Fatalf("expected session over generated content")
	}
}

func TestFinishingRepeatsLessonAndStoresRecord(t *testing.T) {
	app, c := newTestApp(RepeatLesson)
	var published []string
	app.onRecord = func(name string, _ session.Record) {
		published = append(published, name)
	}
	mustTick(t, app, Key(InputDown), Key(InputEnter))
	first := app.Session()

	mustTick(t, app, Char('a'), Char('x'))
	c.Advance(2 * time.Second)
	mustTick(t, app, Char('b'))

	if app.State() != Training {
		t.Fatalf("expected to keep training, got %v", app.State())
	}
	if app.Session() == first {
		t.Fatalf("expected a fresh session after finishing")
	}
	records := app.List().CurrentRecords()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Stats.Errors != 1 {
		t.Fatalf("expected 1 error, got %d", records[0].Stats.Errors)
	}
	if records[0].Stats.Speed != session.CharactersPerMinute(60) {
		t.Fatalf("unexpected speed %v", records[0].Stats.Speed)
	}
	last, ok := app.LastRecord()
	if !ok || last != records[0] {
		t.Fatalf("expected last record to match history")
	}
	if len(published) != 1 || published[0] != "Lesson 1" {
		t.Fatalf("expected record published for Lesson 1, got %v", published)
	}
}

func TestFinishingReturnsToSelection(t *testing.T) {
	app, _ := newTestApp(ReturnToSelection)
	mustTick(t, app, Key(InputUp), Key(InputEnter), Char('a'), Char('b'))
	if app.State() != LessonSelection {
		t.Fatalf("expected selection, got %v", app.State())
	}
	if app.Session() != nil {
		t.Fatalf("expected session cleared")
	}
	if got := len(app.List().RecordsFor(1)); got != 1 {
		t.Fatalf("expected record on lesson 2, got %d", got)
	}
}

func TestEscapeAbandonsWithoutRecord(t *testing.T) {
	app, _ := newTestApp(RepeatLesson)
	mustTick(t, app, Key(InputDown), Key(InputEnter), Char('a'), Key(InputEscape))
	if app.State() != LessonSelection {
		t.Fatalf("expected selection after escape, got %v", app.State())
	}
	if len(app.List().CurrentRecords()) != 0 {
		t.Fatalf("expected no record saved on abort")
	}
	if _, ok := app.LastRecord(); ok {
		t.Fatalf("expected no last record")
	}
}

func TestNonCharactersIgnoredWhileTraining(t *testing.T) {
	app, _ := newTestApp(RepeatLesson)
	mustTick(t, app, Key(InputDown), Key(InputEnter), Key(InputUp), Key(InputBackspace), Key(InputEnter))
	if app.Session().Errors() != 0 {
		t.Fatalf("expected navigation keys to be ignored")
	}
	if _, started := app.Session().StartedAt(); started {
		t.Fatalf("expected session not started by ignored keys")
	}
}

func TestEscapeTerminatesFromSelection(t *testing.T) {
	app, _ := newTestApp(RepeatLesson)
	mustTick(t, app, Key(InputEscape))
	if app.State() != Terminated {
		t.Fatalf("expected terminated, got %v", app.State())
	}
	mustTick(t, app, Key(InputDown), Key(InputEnter))
	if app.State() != Terminated {
		t.Fatalf("terminated must be absorbing")
	}
	if _, ok := app.List().Selected(); ok {
		t.Fatalf("expected input ignored after termination")
	}
}

func TestGenerationErrorKeepsState(t *testing.T) {
	empty := lesson.Lesson{Name: "Empty", ContentLength: 4, WordLength: 2}
	app := New(lessonlist.New([]lesson.Lesson{empty}), Options{Generator: generator.NewWithSeed(1)})
	mustTick(t, app, Key(InputDown))
	err := app.Tick(Key(InputEnter))
	if !errors.Is(err, generator.ErrEmptyCharacterSet) {
		t.Fatalf("expected ErrEmptyCharacterSet, got %v", err)
	}
	if app.State() != LessonSelection {
		t.Fatalf("expected selection after failed start, got %v", app.State())
	}
}

func TestParseFinishPolicy(t *testing.T) {
	for input, want := range map[string]FinishPolicy{"repeat": RepeatLesson, " Select ": ReturnToSelection} {
		got, err := ParseFinishPolicy(input)
		if err != nil || got != want {
			t.Fatalf("ParseFinishPolicy(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParseFinishPolicy("loop"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
