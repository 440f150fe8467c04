package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"envboot/internal/selection"
)

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.Done {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.Help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.Keys.Quit) {
			m.Done = true
			return m, tea.Quit
		}

		in := m.Keys.Input(msg)
		if in == selection.InputNone {
			return m, nil
		}
		m.State = m.State.Apply(in, m.Environments.Len())
		if m.State.Confirmed {
			m.Done = true
			return m, tea.Quit
		}
	}

	return m, nil
}
