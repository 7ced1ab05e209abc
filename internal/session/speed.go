package session

import "fmt"

// CharsPerWord is the fixed conversion between characters and words.
const CharsPerWord = 5

// SpeedUnit tags the unit a TypingSpeed was measured in.
type SpeedUnit string

const (
	// UnitCPM is characters per minute.
	UnitCPM SpeedUnit = "cpm"
	// UnitWPM is words per minute.
	UnitWPM SpeedUnit = "wpm"
)

// TypingSpeed is a speed in either characters or words per minute.
type TypingSpeed struct {
	Unit  SpeedUnit `json:"unit"`
	Value int       `json:"value"`
}

// CharactersPerMinute returns a speed measured in characters per minute.
func CharactersPerMinute(n int) TypingSpeed {
	return TypingSpeed{Unit: UnitCPM, Value: n}
}

// WordsPerMinute returns a speed measured in words per minute.
func WordsPerMinute(n int) TypingSpeed {
	return TypingSpeed{Unit: UnitWPM, Value: n}
}

// WPM converts to words per minute, truncating.
func (s TypingSpeed) WPM() int {
	if s.Unit == UnitWPM {
		return s.Value
	}
	return s.Value / CharsPerWord
}

// CPM converts to characters per minute.
func (s TypingSpeed) CPM() int {
	if s.Unit == UnitWPM {
		return s.Value * CharsPerWord
	}
	return s.Value
}

func (s TypingSpeed) String() string {
	if s.Unit == UnitWPM {
		return fmt.Sprintf("%d WPM", s.Value)
	}
	return fmt.Sprintf("%d CPM", s.Value)
}
