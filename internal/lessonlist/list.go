// Package lessonlist keeps the ordered lessons, the selection cursor and the
// per-lesson training history.
package lessonlist

import (
	"errors"

	"github.com/verte-zerg/keydrill/internal/lesson"
	"github.com/verte-zerg/keydrill/internal/session"
)

// ErrNoSelection is returned when an operation needs a selected lesson.
var ErrNoSelection = errors.New("no lesson selected")

// List is a selectable list of lessons. The lessons are fixed after
// construction; the selected index, when set, is always in range.
type List struct {
	lessons     []lesson.Lesson
	selected    int
	hasSelected bool
	history     map[int][]session.Record
}

// New returns a list with nothing selected and no history.
func New(lessons []lesson.Lesson) *List {
	return &List{
		lessons: append([]lesson.Lesson(nil), lessons...),
		history: map[int][]session.Record{},
	}
}

// Lessons returns the lessons in order.
func (l *List) Lessons() []lesson.Lesson {
	return l.lessons
}

// Selected returns the selected index.
func (l *List) Selected() (int, bool) {
	return l.selected, l.hasSelected
}

// SelectNext moves the cursor down. From no selection it selects the first
// lesson; at the last lesson it stays put.
func (l *List) SelectNext() {
	if !l.hasSelected {
		if len(l.lessons) > 0 {
			l.selected = 0
			l.hasSelected = true
		}
		return
	}
	if l.selected+1 < len(l.lessons) {
		l.selected++
	}
}

// SelectPrev moves the cursor up. From no selection it jumps to the last
// lesson; at the first lesson it stays put.
func (l *List) SelectPrev() {
	if !l.hasSelected {
		if len(l.lessons) > 0 {
			l.selected = len(l.lessons) - 1
			l.hasSelected = true
		}
		return
	}
	if l.selected > 0 {
		l.selected--
	}
}

// CurrentLesson returns the selected lesson.
func (l *List) CurrentLesson() (lesson.Lesson, bool) {
	if !l.hasSelected || l.selected >= len(l.lessons) {
		return lesson.Lesson{}, false
	}
	return l.lessons[l.selected], true
}

// CurrentRecords returns the history of the selected lesson, oldest first.
func (l *List) CurrentRecords() []session.Record {
	if !l.hasSelected {
		return []session.Record{}
	}
	return l.RecordsFor(l.selected)
}

// RecordsFor returns a copy of the history for lesson index i.
func (l *List) RecordsFor(i int) []session.Record {
	return append([]session.Record{}, l.history[i]...)
}

// AddRecord appends a record to the selected lesson's history.
func (l *List) AddRecord(record session.Record) error {
	if !l.hasSelected {
		return ErrNoSelection
	}
	l.history[l.selected] = append(l.history[l.selected], record)
	return nil
}
