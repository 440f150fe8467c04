package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"envboot/internal/selection"
)

// KeyMap binds terminal keys to menu inputs. The pad labels from the
// device (A, X/-, Y/+) are kept as aliases.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Confirm      key.Binding
	ClearDefault key.Binding
	SetDefault   key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓", "navigate"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", "a"),
			key.WithHelp("enter", "start"),
		),
		ClearDefault: key.NewBinding(
			key.WithKeys("x", "-"),
			key.WithHelp("x/-", "clear default"),
		),
		SetDefault: key.NewBinding(
			key.WithKeys("y", "+"),
			key.WithHelp("y/+", "select default"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "system menu"),
		),
	}
}

// Input translates a key press into a menu input.
func (k KeyMap) Input(kmsg tea.KeyMsg) selection.Input {
	switch {
	case key.Matches(kmsg, k.Up):
		return selection.InputUp
	case key.Matches(kmsg, k.Down):
		return selection.InputDown
	case key.Matches(kmsg, k.Confirm):
		return selection.InputConfirm
	case key.Matches(kmsg, k.ClearDefault):
		return selection.InputClearDefault
	case key.Matches(kmsg, k.SetDefault):
		return selection.InputSetDefault
	}
	return selection.InputNone
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.ClearDefault, k.SetDefault, k.Confirm}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Quit}}
}
