package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keydrill/internal/clock"
)

func newFakeClock() *clock.Fake {
	return clock.NewFake(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
}

func typeAll(t *testing.T, s *Session, text string) {
	t.Helper()
	for _, r := range text {
		require.NoError(t, s.HandleKey(r))
	}
}

func TestNewSessionIsNotStarted(t *testing.T) {
	s := New("ab cd", newFakeClock())
	assert.Equal(t, NotStarted, s.State())
	assert.False(t, s.IsFinished())
	cur, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, 'a', cur)
	_, started := s.StartedAt()
	assert.False(t, started)
	assert.Equal(t, OutcomeNone, s.LastOutcome())
}

func TestEmptyContentStartsFinished(t *testing.T) {
	s := New("", newFakeClock())
	assert.True(t, s.IsFinished())
	assert.Equal(t, Finished, s.State())
	assert.Equal(t, 1.0, s.Progress())
	assert.True(t, errors.Is(s.HandleKey('a'), ErrSessionFinished))
}

func TestTypingContentExactlyFinishes(t *testing.T) {
	content := "ienr tsie"
	s := New(content, newFakeClock())
	for i, r := range content {
		require.False(t, s.IsFinished(), "finished early at %d", i)
		require.NoError(t, s.HandleKey(r))
	}
	assert.True(t, s.IsFinished())
	assert.Equal(t, 0, s.Errors())
	assert.Equal(t, 1.0, s.Progress())
	_, ended := s.EndedAt()
	assert.True(t, ended)
}

func TestWrongKeyDoesNotAdvance(t *testing.T) {
	s := New("ab", newFakeClock())
	require.NoError(t, s.HandleKey('x'))
	assert.Equal(t, 1, s.Errors())
	assert.Equal(t, OutcomeWrong, s.LastOutcome())
	cur, _ := s.Current()
	assert.Equal(t, 'a', cur)
	assert.Equal(t, 0.0, s.Progress())
	assert.Equal(t, InProgress, s.State())

	require.NoError(t, s.HandleKey('a'))
	assert.Equal(t, 1, s.Errors())
	assert.Equal(t, OutcomeCorrect, s.LastOutcome())
	cur, _ = s.Current()
	assert.Equal(t, 'b', cur)
	assert.Equal(t, 0.5, s.Progress())
}

func TestHandleKeyAfterFinishReturnsError(t *testing.T) {
	s := New("a", newFakeClock())
	require.NoError(t, s.HandleKey('a'))
	err := s.HandleKey('a')
	assert.ErrorIs(t, err, ErrSessionFinished)
	assert.Equal(t, 0, s.Errors())
}

func TestStartTimeIsFirstKeystroke(t *testing.T) {
	c := newFakeClock()
	s := New("ab", c)
	c.Advance(10 * time.Second)
	first := c.Now()
	require.NoError(t, s.HandleKey('a'))
	c.Advance(time.Second)
	require.NoError(t, s.HandleKey('b'))

	started, _ := s.StartedAt()
	assert.Equal(t, first, started)
	ended, _ := s.EndedAt()
	assert.Equal(t, first.Add(time.Second), ended)
}

func TestEndTimeSetOnlyOnFinishingKeystroke(t *testing.T) {
	c := newFakeClock()
	s := New("ab", c)
	require.NoError(t, s.HandleKey('a'))
	require.NoError(t, s.HandleKey('x'))
	_, ended := s.EndedAt()
	assert.False(t, ended)
}

func TestTypingSpeedBeforeAnyKeystroke(t *testing.T) {
	c := newFakeClock()
	s := New("abcde fghijklmn", c)
	c.Advance(time.Hour)
	assert.Equal(t, CharactersPerMinute(0), s.TypingSpeed())
}

func TestCharactersPerMinuteAlsoCountsSpaces(t *testing.T) {
	c := newFakeClock()
	content := "abcde fghijklmn"
	s := New(content, c)
	typeAll(t, s, content[:14])
	c.Advance(time.Minute)
	require.NoError(t, s.HandleKey('n'))
	c.Advance(time.Hour)
	assert.Equal(t, CharactersPerMinute(15), s.TypingSpeed())
}

func TestCharactersPerMinuteDuringSession(t *testing.T) {
	c := newFakeClock()
	content := "abcde fghijklmnopq"
	s := New(content, c)
	typeAll(t, s, content[:15])
	c.Advance(60 * time.Second)
	assert.False(t, s.IsFinished())
	assert.Equal(t, CharactersPerMinute(15), s.TypingSpeed())
}

func TestTypingSpeedUnderOneSecondIsZero(t *testing.T) {
	c := newFakeClock()
	s := New("abc", c)
	require.NoError(t, s.HandleKey('a'))
	c.Advance(999 * time.Millisecond)
	require.NoError(t, s.HandleKey('b'))
	assert.Equal(t, CharactersPerMinute(0), s.TypingSpeed())
}

func TestTypingSpeedUsesWholeSeconds(t *testing.T) {
	c := newFakeClock()
	s := New("abcdefghij", c)
	typeAll(t, s, "abcdefghij")
	// the last keystroke ends the session at the same instant as the first
	assert.Equal(t, CharactersPerMinute(0), s.TypingSpeed())

	c2 := newFakeClock()
	s2 := New("abcdefghij", c2)
	require.NoError(t, s2.HandleKey('a'))
	c2.Advance(2500 * time.Millisecond)
	typeAll(t, s2, "bcdefghij")
	assert.Equal(t, CharactersPerMinute(300), s2.TypingSpeed())
}

func TestWordsPerMinuteIdentity(t *testing.T) {
	c := newFakeClock()
	content := "abcde abcd abcd abcd abcd"
	s := New(content, c)
	require.NoError(t, s.HandleKey('a'))
	c.Advance(30 * time.Second)
	typeAll(t, s, content[1:])
	speed := s.TypingSpeed()
	assert.Equal(t, CharactersPerMinute(50), speed)
	assert.Equal(t, 10, speed.WPM())
	assert.Equal(t, speed.CPM(), speed.WPM()*CharsPerWord)
}

func TestSpeedConversions(t *testing.T) {
	assert.Equal(t, 3, CharactersPerMinute(15).WPM())
	assert.Equal(t, 3, CharactersPerMinute(19).WPM())
	assert.Equal(t, 40, WordsPerMinute(8).CPM())
	assert.Equal(t, 8, WordsPerMinute(8).WPM())
	assert.Equal(t, "12 CPM", CharactersPerMinute(12).String())
	assert.Equal(t, "3 WPM", WordsPerMinute(3).String())
}

func TestTrainingRecord(t *testing.T) {
	c := newFakeClock()
	s := New("ab", c)
	unstarted := s.TrainingRecord()
	assert.True(t, unstarted.Timestamp.Equal(c.Now()))
	assert.Equal(t, Statistics{Errors: 0, Speed: CharactersPerMinute(0)}, unstarted.Stats)

	c.Advance(time.Minute)
	start := c.Now()
	require.NoError(t, s.HandleKey('a'))
	require.NoError(t, s.HandleKey('q'))
	c.Advance(30 * time.Second)
	require.NoError(t, s.HandleKey('b'))

	rec := s.TrainingRecord()
	assert.True(t, rec.Timestamp.Equal(start))
	assert.Equal(t, 1, rec.Stats.Errors)
	assert.Equal(t, CharactersPerMinute(4), rec.Stats.Speed)
}

func TestDiffSplitsContent(t *testing.T) {
	s := New("abc", newFakeClock())
	d := s.Diff()
	assert.Equal(t, Diff{Finished: "", Current: 'a', HasCurrent: true, Remaining: "bc", Outcome: OutcomeNone}, d)

	require.NoError(t, s.HandleKey('a'))
	require.NoError(t, s.HandleKey('z'))
	d = s.Diff()
	assert.Equal(t, Diff{Finished: "a", Current: 'b', HasCurrent: true, Remaining: "c", Outcome: OutcomeWrong}, d)

	typeAll(t, s, "bc")
	d = s.Diff()
	assert.Equal(t, "abc", d.Finished)
	assert.False(t, d.HasCurrent)
	assert.Equal(t, "", d.Remaining)
}

func TestLengthInvariantHolds(t *testing.T) {
	content := "añb c"
	s := New(content, newFakeClock())
	check := func() {
		d := s.Diff()
		n := len([]rune(d.Finished)) + len([]rune(d.Remaining))
		if d.HasCurrent {
			n++
		}
		require.Equal(t, len([]rune(content)), n)
	}
	check()
	for _, r := range "xañxb c" {
		require.NoError(t, s.HandleKey(r))
		check()
	}
	assert.True(t, s.IsFinished())
	assert.Equal(t, 2, s.Errors())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "not started", NotStarted.String())
	assert.Equal(t, "in progress", InProgress.String())
	assert.Equal(t, "finished", Finished.String())
}
