package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultChartHeight  = 8
	minChartWidth       = 10
	axisSeparator       = " │ "
	terminalWidthBackup = 80
	colorCyan           = "\x1b[36m"
	colorReset          = "\x1b[0m"
)

var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Chart renders values as vertical bars, one column per resampled value.
// Rows are returned top first, each prefixed with a right-aligned axis label.
func Chart(values []float64, width, height int) []string {
	if len(values) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultChartHeight
	}
	width = max(width, minChartWidth)
	if len(values) < width {
		width = len(values)
	}
	cols := resample(values, width)

	lo, hi := bounds(cols)
	lo = math.Min(lo, 0)
	if hi-lo < 1e-9 {
		hi = lo + 1
	}
	topLabel := formatAxis(hi)
	bottomLabel := formatAxis(lo)
	labelWidth := max(runewidth.StringWidth(topLabel), runewidth.StringWidth(bottomLabel))

	steps := len(blocks) - 1
	lines := make([]string, 0, height)
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = topLabel
		case height - 1:
			label = bottomLabel
		}
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", labelWidth, label, axisSeparator))
		rowBase := float64(height-1-y) * float64(steps)
		for _, v := range cols {
			filled := (v - lo) / (hi - lo) * float64(height*steps)
			level := int(math.Round(filled - rowBase))
			row.WriteRune(blocks[max(0, min(level, steps))])
		}
		lines = append(lines, strings.TrimRight(row.String(), " "))
	}
	return lines
}

// ChartWidthFor computes a chart width that fits within the total available width.
func ChartWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minChartWidth
	}
	axisWidth := len(formatAxis(999)) + utf8.RuneCountInString(axisSeparator)
	return max(totalWidth-axisWidth, minChartWidth)
}

// TerminalWidth reports the width of the terminal behind f or a fallback.
func TerminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func writeChart(w io.Writer, lines []string, useColor bool) error {
	for _, line := range lines {
		if useColor {
			line = colorCyan + line + colorReset
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func formatAxis(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

// resample averages values into buckets when there are more values than columns.
func resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := max((i+1)*len(values)/width, start+1)
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}
