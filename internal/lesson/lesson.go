// Package lesson defines immutable practice lessons and their weighting.
package lesson

import "strconv"

// Lesson is a named character set with content dimensions. Lessons are values:
// deriving a lesson copies the character slice, so parent and child never
// share storage.
type Lesson struct {
	Name          string            `json:"name"`
	Characters    []Character       `json:"characters"`
	Strategy      WeightingStrategy `json:"strategy"`
	ContentLength int               `json:"content_length"`
	WordLength    int               `json:"word_length"`
}

// FromChars builds a lesson whose characters all carry the default weight.
func FromChars(name string, chars []rune, contentLength, wordLength int, strategy WeightingStrategy) Lesson {
	characters := make([]Character, 0, len(chars))
	for _, ch := range chars {
		characters = append(characters, NewCharacter(ch))
	}
	return Lesson{
		Name:          name,
		Characters:    characters,
		Strategy:      strategy,
		ContentLength: contentLength,
		WordLength:    wordLength,
	}
}

// AddChars derives a new lesson with chars appended under a new strategy.
// Content dimensions are inherited.
func (l Lesson) AddChars(name string, chars []rune, strategy WeightingStrategy) Lesson {
	characters := make([]Character, len(l.Characters), len(l.Characters)+len(chars))
	copy(characters, l.Characters)
	for _, ch := range chars {
		characters = append(characters, NewCharacter(ch))
	}
	return Lesson{
		Name:          name,
		Characters:    characters,
		Strategy:      strategy,
		ContentLength: l.ContentLength,
		WordLength:    l.WordLength,
	}
}

// WithDimensions returns a copy of l using the given content and word lengths.
func (l Lesson) WithDimensions(contentLength, wordLength int) Lesson {
	out := l
	out.Characters = append([]Character(nil), l.Characters...)
	out.ContentLength = contentLength
	out.WordLength = wordLength
	return out
}

// Runes returns the lesson characters in order.
func (l Lesson) Runes() []rune {
	out := make([]rune, len(l.Characters))
	for i, c := range l.Characters {
		out[i] = c.Value
	}
	return out
}

// Weights returns the effective sampling weight of each character, in order.
func (l Lesson) Weights() []float64 {
	out := make([]float64, len(l.Characters))
	for i, c := range l.Characters {
		base := c.Weight
		if base <= 0 {
			base = 1.0
		}
		out[i] = base * l.Strategy.Weight(c.Value)
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
