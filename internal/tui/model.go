// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keydrill/internal/trainer"
)

// TickInterval is how often an empty input is delivered so the live speed
// keeps updating between keystrokes.
const TickInterval = 500 * time.Millisecond

type tickMsg time.Time

// Model implements the Bubble Tea trainer UI.
type Model struct {
	app      *trainer.App
	keys     keyMap
	help     help.Model
	progress progress.Model

	width  int
	height int

	err error
}

var (
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle      = pendingStyle.Underline(true)
	wrongCursorStyle = incorrectStyle.Underline(true)
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	panelStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#4A4A4A")).
				Padding(0, 1)
)

// NewModel wraps a trainer app.
func NewModel(app *trainer.App) *Model {
	return &Model{
		app:      app,
		keys:     newKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Err returns the last error reported by the trainer, if any.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = max(10, contentWidth(msg.Width))
		return m, nil
	case tickMsg:
		m.apply(trainer.NoInput())
		return m, tick()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		for _, in := range m.keys.inputs(msg) {
			m.apply(in)
			if m.app.State() == trainer.Terminated {
				return m, tea.Quit
			}
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) apply(in trainer.Input) {
	if err := m.app.Tick(in); err != nil {
		m.err = err
		return
	}
	if in.Kind != trainer.InputNone {
		m.err = nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.app.State() {
	case trainer.Training:
		body = m.trainingView()
	case trainer.LessonSelection:
		body = m.selectionView()
	default:
		return ""
	}
	footer := m.help.View(m.keys.forState(m.app.State()))
	if m.err != nil {
		footer = incorrectStyle.Render(m.err.Error()) + "\n" + footer
	}
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	footerHeight := lipgloss.Height(footer)
	if m.height <= footerHeight+1 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	bodyView := lipgloss.Place(m.width, m.height-footerHeight, lipgloss.Center, lipgloss.Center, body)
	footerView := lipgloss.Place(m.width, footerHeight, lipgloss.Center, lipgloss.Bottom, footer)
	return bodyView + "\n" + footerView
}

func contentWidth(total int) int {
	return max(1, int(float64(total)*0.70))
}
