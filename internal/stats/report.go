package stats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/keydrill/internal/lessonlist"
	"github.com/verte-zerg/keydrill/internal/session"
)

// RenderOptions controls lesson report rendering.
type RenderOptions struct {
	// Window is the moving-average window applied to the plotted WPM.
	Window int
	// Width is the total output width; zero uses the minimum chart width.
	Width  int
	Height int
}

// OverviewLines formats one summary row per lesson in the list.
func OverviewLines(list *lessonlist.List) []string {
	headers := []string{"Lesson", "Characters", "Sessions", "Best", "Avg", "Last", "Errors", "Trend"}
	rows := make([][]string, 0, len(list.Lessons()))
	for i, l := range list.Lessons() {
		records := list.RecordsFor(i)
		sum := Summarize(records)
		row := []string{l.Name, string(l.Runes()), strconv.Itoa(sum.Sessions)}
		if sum.Sessions == 0 {
			row = append(row, "-", "-", "-", "-", "")
		} else {
			row = append(row,
				strconv.Itoa(sum.BestWPM),
				fmt.Sprintf("%.1f", sum.AvgWPM),
				strconv.Itoa(sum.LastWPM),
				strconv.Itoa(sum.TotalErrors),
				Sparkline(WPMSeries(Tail(records, 20))),
			)
		}
		rows = append(rows, row)
	}
	return formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true})
}

// RenderOverview writes the per-lesson summary table.
func RenderOverview(w io.Writer, list *lessonlist.List) error {
	for _, line := range OverviewLines(list) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderLesson writes a summary, a record table and a WPM chart for one lesson.
func RenderLesson(w io.Writer, name string, records []session.Record, opts RenderOptions) error {
	if _, err := fmt.Fprintln(w, name); err != nil {
		return err
	}
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sessions yet.")
		return err
	}

	sum := Summarize(records)
	if _, err := fmt.Fprintf(w, "Sessions: %d  Best: %d WPM  Average: %.1f WPM (%.0f CPM)  Errors: %d (%.1f per session)\n",
		sum.Sessions, sum.BestWPM, sum.AvgWPM, sum.AvgCPM, sum.TotalErrors, sum.AvgErrors); err != nil {
		return err
	}

	wpm := WPMSeries(records)
	if opts.Window > 1 {
		wpm = MovingAverage(wpm, opts.Window)
		if _, err := fmt.Fprintf(w, "WPM, moving average over %d sessions:\n", opts.Window); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintln(w, "WPM:"); err != nil {
		return err
	}
	if err := writeChart(w, Chart(wpm, ChartWidthFor(opts.Width), opts.Height), shouldUseColor(w)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	for _, line := range RecordLines(Tail(records, 10)) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RecordLines formats records as a table, oldest first.
func RecordLines(records []session.Record) []string {
	headers := []string{"When", "WPM", "CPM", "Errors"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Timestamp.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(rec.Stats.Speed.WPM()),
			strconv.Itoa(rec.Stats.Speed.CPM()),
			strconv.Itoa(rec.Stats.Errors),
		})
	}
	return formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true})
}
