// Package generator builds practice text from lesson character sets.
package generator

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/keydrill/internal/lesson"
)

// ErrEmptyCharacterSet is returned when a lesson has no characters to sample.
var ErrEmptyCharacterSet = errors.New("lesson has no characters")

// Generator produces randomized lesson content.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick returns an index into weights chosen with probability proportional to
// its weight. Non-positive weights are never picked unless every weight is
// non-positive, in which case the choice is uniform.
func (g *Generator) Pick(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return g.rnd.Intn(len(weights))
	}
	r := g.rnd.Float64() * total
	acc := 0.0
	last := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		last = i
		if r < acc {
			return i
		}
	}
	return last
}

// Word draws wordLength characters independently from the lesson. Runs of the
// same character are not limited.
func (g *Generator) Word(l lesson.Lesson) (string, error) {
	if len(l.Characters) == 0 {
		return "", ErrEmptyCharacterSet
	}
	size := l.WordLength
	if size < 1 {
		size = 1
	}
	weights := l.Weights()
	var b strings.Builder
	for i := 0; i < size; i++ {
		b.WriteRune(l.Characters[g.Pick(weights)].Value)
	}
	return b.String(), nil
}

// LessonContent joins words with single spaces until the text holds at least
// ContentLength runes. At least one word is always produced, so the result
// never starts or ends with a space.
func (g *Generator) LessonContent(l lesson.Lesson) (string, error) {
	word, err := g.Word(l)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(word)
	length := len([]rune(word))
	for length < l.ContentLength {
		word, err = g.Word(l)
		if err != nil {
			return "", err
		}
		b.WriteByte(' ')
		b.WriteString(word)
		length += 1 + len([]rune(word))
	}
	return b.String(), nil
}
