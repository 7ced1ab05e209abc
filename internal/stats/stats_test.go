package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/keydrill/internal/lesson"
	"github.com/verte-zerg/keydrill/internal/lessonlist"
	"github.com/verte-zerg/keydrill/internal/session"
)

func record(minute, errs, cpm int) session.Record {
	return session.Record{
		Timestamp: time.Date(2024, 3, 1, 10, minute, 0, 0, time.UTC),
		Stats: session.Statistics{
			Errors: errs,
			Speed:  session.CharactersPerMinute(cpm),
		},
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize([]session.Record{record(0, 2, 100), record(1, 3, 150)})
	if sum.Sessions != 2 || sum.BestWPM != 30 || sum.LastWPM != 30 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if sum.AvgWPM != 25 || sum.AvgCPM != 125 {
		t.Fatalf("unexpected averages: %+v", sum)
	}
	if sum.TotalErrors != 5 || sum.AvgErrors != 2.5 {
		t.Fatalf("unexpected errors: %+v", sum)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if sum := Summarize(nil); sum != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", sum)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4}, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 2, 3}); got != " +@" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{2, 2}); got != "++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
}

func TestTail(t *testing.T) {
	records := []session.Record{record(0, 0, 1), record(1, 0, 2), record(2, 0, 3)}
	if got := Tail(records, 2); len(got) != 2 || got[0].Stats.Speed.Value != 2 {
		t.Fatalf("unexpected tail: %+v", got)
	}
	if got := Tail(records, 0); len(got) != 3 {
		t.Fatalf("expected all records, got %d", len(got))
	}
}

func TestChart(t *testing.T) {
	lines := Chart([]float64{0, 4, 8}, 10, 2)
	want := []string{
		"8 │   █",
		"0 │  ██",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestChartResamplesToWidth(t *testing.T) {
	values := make([]float64, 40)
	for i := range values {
		values[i] = float64(i)
	}
	lines := Chart(values, 10, 4)
	for _, line := range lines {
		_, bars, ok := strings.Cut(line, axisSeparator)
		if !ok {
			bars = ""
		}
		if n := len([]rune(bars)); n > 10 {
			t.Fatalf("expected at most 10 columns, got %d in %q", n, line)
		}
	}
}

func TestChartWidthFor(t *testing.T) {
	if got := ChartWidthFor(80); got != 80-3-3 {
		t.Fatalf("unexpected width %d", got)
	}
	if got := ChartWidthFor(0); got != minChartWidth {
		t.Fatalf("expected min width %d, got %d", minChartWidth, got)
	}
}

func TestOverviewLines(t *testing.T) {
	base := lesson.FromChars("Lesson 1", []rune("ab"), 10, 3, lesson.Equal())
	list := lessonlist.New([]lesson.Lesson{base, base.AddChars("Lesson 2", []rune("c"), lesson.Equal())})
	list.SelectNext()
	if err := list.AddRecord(record(0, 1, 200)); err != nil {
		t.Fatalf("add record: %v", err)
	}

	lines := OverviewLines(list)
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(lines))
	}
	fields := strings.Fields(lines[1])
	if fields[2] != "ab" || fields[3] != "1" || fields[4] != "40" {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if !strings.Contains(lines[2], "abc") || !strings.Contains(lines[2], "-") {
		t.Fatalf("unexpected second row %q", lines[2])
	}
}

func TestRenderLesson(t *testing.T) {
	var buf bytes.Buffer
	records := []session.Record{record(0, 2, 100), record(1, 3, 150)}
	if err := RenderLesson(&buf, "Lesson 1", records, RenderOptions{Window: 2, Height: 3}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Lesson 1", "Best: 30 WPM", "moving average over 2", "When"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, colorReset) {
		t.Fatalf("expected no color codes for a buffer")
	}
}

func TestRenderLessonWithoutHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderLesson(&buf, "Lesson 4", nil, RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions yet.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
