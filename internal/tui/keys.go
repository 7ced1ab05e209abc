package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keydrill/internal/trainer"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Start     key.Binding
	Back      key.Binding
	Backspace key.Binding
	Quit      key.Binding

	training bool
}

func newKeyMap() keyMap {
	// k and j reach the trainer as characters; it treats them as up and
	// down only on the selection screen, so training help omits both.
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓/j", "down")),
		Start:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "delete")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),
	}
}

func (k keyMap) forState(s trainer.State) keyMap {
	k.training = s == trainer.Training
	if k.training {
		k.Back.SetHelp("esc", "abandon")
	} else {
		k.Back.SetHelp("esc", "quit")
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	if k.training {
		return []key.Binding{k.Back, k.Quit}
	}
	return []key.Binding{k.Up, k.Down, k.Start, k.Back}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// inputs translates a key press into trainer inputs. Pasted text yields
// one input per rune.
func (k keyMap) inputs(msg tea.KeyMsg) []trainer.Input {
	switch {
	case key.Matches(msg, k.Up):
		return []trainer.Input{trainer.Key(trainer.InputUp)}
	case key.Matches(msg, k.Down):
		return []trainer.Input{trainer.Key(trainer.InputDown)}
	case key.Matches(msg, k.Start):
		return []trainer.Input{trainer.Key(trainer.InputEnter)}
	case key.Matches(msg, k.Back):
		return []trainer.Input{trainer.Key(trainer.InputEscape)}
	case key.Matches(msg, k.Backspace):
		return []trainer.Input{trainer.Key(trainer.InputBackspace)}
	}
	switch msg.Type {
	case tea.KeySpace:
		return []trainer.Input{trainer.Char(' ')}
	case tea.KeyRunes:
		out := make([]trainer.Input, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, trainer.Char(r))
		}
		return out
	default:
		return nil
	}
}
