package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"envboot/internal/model"
	"envboot/internal/selection"
)

// AppModel holds the menu state for one selection session.
type AppModel struct {
	// Data
	Environments model.EnvironmentSet

	// UI State
	State      selection.State
	Done       bool // Loop exited; the next frame is blank
	WindowSize tea.WindowSizeMsg

	// Components
	Keys KeyMap
	Help help.Model
}

// InitialModel returns a model positioned at the given state.
func InitialModel(set model.EnvironmentSet, state selection.State) AppModel {
	return AppModel{
		Environments: set,
		State:        state,
		Keys:         DefaultKeyMap(),
		Help:         help.New(),
	}
}
