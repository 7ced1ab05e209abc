package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keydrill/internal/session"
	"github.com/verte-zerg/keydrill/internal/stats"
)

const (
	historyChartHeight = 5
	historyRows        = 5
	minPanelWidth      = 24
)

func (m *Model) selectionView() string {
	list := m.app.List()
	selected, hasSelected := list.Selected()

	var b strings.Builder
	b.WriteString(titleStyle.Render("keydrill"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Select a lesson"))
	b.WriteString("\n\n")
	for i, l := range list.Lessons() {
		line := fmt.Sprintf("%-10s %-14s %s", l.Name, string(l.Runes()), l.Strategy)
		if hasSelected && i == selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(pendingStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	menu := strings.TrimRight(b.String(), "\n")

	if !hasSelected {
		return menu
	}
	current, _ := list.CurrentLesson()
	history := m.renderHistory(current.Name, list.CurrentRecords())
	if m.width > 0 && lipgloss.Width(menu)+lipgloss.Width(history)+2 > m.width {
		return lipgloss.JoinVertical(lipgloss.Left, menu, "", history)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, menu, "  ", history)
}

func (m *Model) renderHistory(name string, records []session.Record) string {
	if len(records) == 0 {
		return panelStyle.Render(name + "\n" + mutedStyle.Render("No sessions yet."))
	}
	sum := stats.Summarize(records)
	lines := []string{
		name,
		fmt.Sprintf("Sessions %d · Best %d WPM · Avg %.1f WPM · Errors %d", sum.Sessions, sum.BestWPM, sum.AvgWPM, sum.TotalErrors),
		"",
	}
	width := max(minPanelWidth, m.width/3)
	lines = append(lines, stats.Chart(stats.WPMSeries(records), stats.ChartWidthFor(width), historyChartHeight)...)
	lines = append(lines, "", buildRecordTable(stats.Tail(records, historyRows)).View())
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func buildRecordTable(records []session.Record) table.Model {
	columns := []table.Column{
		{Title: "When", Width: 16},
		{Title: "WPM", Width: 4},
		{Title: "CPM", Width: 5},
		{Title: "Errors", Width: 6},
	}
	rows := make([]table.Row, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		rows = append(rows, table.Row{
			rec.Timestamp.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(rec.Stats.Speed.WPM()),
			strconv.Itoa(rec.Stats.Speed.CPM()),
			strconv.Itoa(rec.Stats.Errors),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
		table.WithFocused(false),
	)
	t.SetStyles(recordTableStyles())
	return t
}

func recordTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		PaddingLeft(0)
	styles.Cell = styles.Cell.PaddingLeft(0)
	styles.Selected = styles.Cell
	return styles
}

func (m *Model) trainingView() string {
	sess := m.app.Session()
	if sess == nil {
		return ""
	}
	name := ""
	if current, ok := m.app.List().CurrentLesson(); ok {
		name = current.Name
	}
	styled := buildStyledRunes(sess.Diff())
	var content string
	if m.width == 0 {
		content = renderStyledRunes(styled)
	} else {
		width := contentWidth(m.width)
		content = lipgloss.NewStyle().Width(width).Render(wrapStyledRunes(styled, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(name),
		"",
		content,
		"",
		m.progress.ViewAs(sess.Progress()),
		m.renderFooter(),
	)
}

func (m *Model) renderFooter() string {
	sess := m.app.Session()
	if sess == nil {
		return ""
	}
	speed := sess.TypingSpeed()
	segments := []string{
		fmt.Sprintf("Progress %d%%", int(sess.Progress()*100)),
		fmt.Sprintf("%d CPM · %d WPM", speed.CPM(), speed.WPM()),
		fmt.Sprintf("Errors %d", sess.Errors()),
	}
	if last, ok := m.app.LastRecord(); ok {
		segments = append(segments, fmt.Sprintf("Last %d WPM · %d errors", last.Stats.Speed.WPM(), last.Stats.Errors))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
