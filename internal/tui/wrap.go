package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keydrill/internal/session"
)

type styledRune struct {
	s        string
	width    int
	isSpace  bool
	isCursor bool
}

// buildStyledRunes renders the typed prefix, the expected character and the
// rest of the content with their own styles.
func buildStyledRunes(d session.Diff) []styledRune {
	finished := []rune(d.Finished)
	remaining := []rune(d.Remaining)
	out := make([]styledRune, 0, len(finished)+len(remaining)+1)

	for _, r := range finished {
		out = append(out, newStyledRune(r, r, correctStyle.Render))
	}
	if d.HasCurrent {
		displayed := d.Current
		render := cursorStyle.Render
		if d.Outcome == session.OutcomeWrong {
			render = wrongCursorStyle.Render
			if d.Current == ' ' {
				displayed = '•'
			}
		}
		cursor := newStyledRune(d.Current, displayed, render)
		cursor.isCursor = true
		out = append(out, cursor)
	}
	for _, r := range remaining {
		out = append(out, newStyledRune(r, r, pendingStyle.Render))
	}
	return out
}

func newStyledRune(target, displayed rune, render func(...string) string) styledRune {
	return styledRune{
		s:       render(string(displayed)),
		width:   runewidth.RuneWidth(displayed),
		isSpace: target == ' ',
	}
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines at the last space that fits, or mid-word when
// a single word is wider than the line. Spaces at a break are dropped, except
// the cursor, which is never a break point and is always drawn.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, width)
	lineWidth := 0
	lastSpace := -1

	flush := func(upTo, resumeAt int) {
		out.WriteString(renderStyledRunes(line[:upTo]))
		out.WriteByte('\n')
		line = append(line[:0:0], line[resumeAt:]...)
		lineWidth = 0
		lastSpace = -1
		for i, item := range line {
			lineWidth += item.width
			if item.breaks() {
				lastSpace = i
			}
		}
	}

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if item.breaks() {
				flush(len(line), len(line))
				i++
				continue
			}
			if lastSpace >= 0 {
				flush(lastSpace, lastSpace+1)
			} else {
				flush(len(line), len(line))
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.breaks() {
			lastSpace = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func (r styledRune) breaks() bool {
	return r.isSpace && !r.isCursor
}
