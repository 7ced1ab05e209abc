// Package curriculum defines the built-in lesson progressions.
package curriculum

import (
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/keydrill/internal/lesson"
)

// Options sizes generated content and controls focus weighting. With a
// FocusWeight above 1, each derived lesson weights its newly added
// characters by that factor.
type Options struct {
	ContentLength int
	WordLength    int
	FocusWeight   float64
}

type step struct {
	chars string
}

type definition struct {
	description string
	steps       []step
}

// home row "ctie ob nrsg q"
var definitions = map[string]definition{
	"bone": {
		description: "Bone layout home row",
		steps:       []step{{"ienr"}, {"ts"}, {"cg"}, {"ob"}, {"q"}},
	},
	"qwerty": {
		description: "QWERTY home row",
		steps:       []step{{"fjdk"}, {"sl"}, {"a;"}, {"gh"}, {"ei"}, {"ru"}},
	},
}

// Names lists the available curricula in sorted order.
func Names() []string {
	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line description of the named curriculum.
func Describe(name string) string {
	return definitions[name].description
}

// Build returns the lesson chain for the named curriculum. Each lesson
// extends the previous one.
func Build(name string, opts Options) ([]lesson.Lesson, error) {
	def, ok := definitions[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown curriculum %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	if opts.ContentLength < 0 {
		return nil, fmt.Errorf("content length must be >= 0")
	}
	if opts.WordLength < 1 {
		return nil, fmt.Errorf("word length must be >= 1")
	}

	lessons := make([]lesson.Lesson, 0, len(def.steps))
	for i, st := range def.steps {
		lessonName := fmt.Sprintf("Lesson %d", i+1)
		if i == 0 {
			lessons = append(lessons, lesson.FromChars(lessonName, []rune(st.chars), opts.ContentLength, opts.WordLength, lesson.Equal()))
			continue
		}
		strategy := lesson.Equal()
		if opts.FocusWeight > 1 {
			strategy = lesson.Focus(st.chars, opts.FocusWeight)
		}
		lessons = append(lessons, lessons[i-1].AddChars(lessonName, []rune(st.chars), strategy))
	}
	return lessons, nil
}
