// Package stats summarizes training history and renders text charts.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/keydrill/internal/session"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates a lesson history.
type Summary struct {
	Sessions    int
	BestWPM     int
	LastWPM     int
	AvgWPM      float64
	AvgCPM      float64
	TotalErrors int
	AvgErrors   float64
}

// Summarize computes a Summary over records.
func Summarize(records []session.Record) Summary {
	var s Summary
	if len(records) == 0 {
		return s
	}
	var totalWPM, totalCPM int
	for _, rec := range records {
		wpm := rec.Stats.Speed.WPM()
		totalWPM += wpm
		totalCPM += rec.Stats.Speed.CPM()
		s.TotalErrors += rec.Stats.Errors
		if wpm > s.BestWPM {
			s.BestWPM = wpm
		}
	}
	n := float64(len(records))
	s.Sessions = len(records)
	s.LastWPM = records[len(records)-1].Stats.Speed.WPM()
	s.AvgWPM = float64(totalWPM) / n
	s.AvgCPM = float64(totalCPM) / n
	s.AvgErrors = float64(s.TotalErrors) / n
	return s
}

// WPMSeries extracts words per minute from records, oldest first.
func WPMSeries(records []session.Record) []float64 {
	out := make([]float64, len(records))
	for i, rec := range records {
		out[i] = float64(rec.Stats.Speed.WPM())
	}
	return out
}

// ErrorSeries extracts error counts from records, oldest first.
func ErrorSeries(records []session.Record) []float64 {
	out := make([]float64, len(records))
	for i, rec := range records {
		out[i] = float64(rec.Stats.Errors)
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := bounds(values)
	if math.Abs(hi-lo) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	last := len(sparkChars) - 1
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(last)))
		b.WriteByte(sparkChars[max(0, min(idx, last))])
	}
	return b.String()
}

// Tail returns at most the last n records.
func Tail(records []session.Record, n int) []session.Record {
	if n <= 0 || len(records) <= n {
		return records
	}
	return records[len(records)-n:]
}

func bounds(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
