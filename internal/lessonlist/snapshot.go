package lessonlist

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/keydrill/internal/lesson"
	"github.com/verte-zerg/keydrill/internal/session"
)

// ErrInvalidSnapshot is returned when a snapshot violates list invariants.
var ErrInvalidSnapshot = errors.New("invalid lesson list snapshot")

// Snapshot is the plain serializable state of a List.
type Snapshot struct {
	Lessons  []lesson.Lesson          `json:"lessons"`
	Selected *int                     `json:"selected_index"`
	History  map[int][]session.Record `json:"history"`
}

// Snapshot captures the full list state. The result shares no storage with l.
func (l *List) Snapshot() Snapshot {
	snap := Snapshot{
		Lessons: make([]lesson.Lesson, len(l.lessons)),
		History: make(map[int][]session.Record, len(l.history)),
	}
	for i, ls := range l.lessons {
		snap.Lessons[i] = ls.WithDimensions(ls.ContentLength, ls.WordLength)
	}
	if l.hasSelected {
		idx := l.selected
		snap.Selected = &idx
	}
	for i, records := range l.history {
		if len(records) == 0 {
			continue
		}
		snap.History[i] = append([]session.Record(nil), records...)
	}
	return snap
}

// FromSnapshot rebuilds a List, validating the selection and history keys.
func FromSnapshot(snap Snapshot) (*List, error) {
	l := New(snap.Lessons)
	if snap.Selected != nil {
		idx := *snap.Selected
		if idx < 0 || idx >= len(snap.Lessons) {
			return nil, fmt.Errorf("%w: selected index %d out of range [0, %d)", ErrInvalidSnapshot, idx, len(snap.Lessons))
		}
		l.selected = idx
		l.hasSelected = true
	}
	for i, records := range snap.History {
		if i < 0 || i >= len(snap.Lessons) {
			return nil, fmt.Errorf("%w: history for lesson %d out of range [0, %d)", ErrInvalidSnapshot, i, len(snap.Lessons))
		}
		if len(records) == 0 {
			continue
		}
		l.history[i] = append([]session.Record(nil), records...)
	}
	return l, nil
}

// Rebind builds a List over lessons, carrying over history and selection from
// snap. A saved lesson matches only a lesson with the same name and the same
// characters; history for lessons without a match is dropped.
func Rebind(lessons []lesson.Lesson, snap Snapshot) *List {
	l := New(lessons)
	byKey := make(map[string]int, len(lessons))
	for i, ls := range lessons {
		if _, dup := byKey[rebindKey(ls)]; !dup {
			byKey[rebindKey(ls)] = i
		}
	}
	for i, records := range snap.History {
		if i < 0 || i >= len(snap.Lessons) || len(records) == 0 {
			continue
		}
		target, ok := byKey[rebindKey(snap.Lessons[i])]
		if !ok {
			continue
		}
		l.history[target] = append(l.history[target], records...)
	}
	if snap.Selected != nil {
		idx := *snap.Selected
		if idx >= 0 && idx < len(snap.Lessons) {
			if target, ok := byKey[rebindKey(snap.Lessons[idx])]; ok {
				l.selected = target
				l.hasSelected = true
			}
		}
	}
	return l
}

func rebindKey(l lesson.Lesson) string {
	return l.Name + "\x00" + string(l.Runes())
}
