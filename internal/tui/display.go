package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"envboot/internal/model"
	"envboot/internal/selection"
)

// Display is the terminal rendering surface for the menu.
type Display struct {
	In  io.Reader // nil means the controlling terminal
	Out io.Writer // nil means stdout
}

// Acquire implements selection.Display.
func (d *Display) Acquire() (selection.Session, error) {
	return &session{in: d.In, out: d.Out}, nil
}

type session struct {
	in       io.Reader
	out      io.Writer
	released bool
}

// Run drives the bubbletea program until confirm or quit.
// A cancelled context ends the loop the same way a quit key does.
func (s *session) Run(ctx context.Context, set model.EnvironmentSet, initial selection.State) (selection.State, error) {
	if s.released {
		return initial, errors.New("display session already released")
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if s.in != nil {
		opts = append(opts, tea.WithInput(s.in))
	}
	if s.out != nil {
		opts = append(opts, tea.WithOutput(s.out))
	}

	m := InitialModel(set, initial)
	p := tea.NewProgram(m, opts...)
	final, err := p.Run()

	state := initial
	if fm, ok := final.(AppModel); ok {
		state = fm.State
	}
	if err != nil {
		if ctx.Err() != nil {
			state.Confirmed = false
			return state, nil
		}
		return initial, fmt.Errorf("starting terminal ui: %w", err)
	}
	return state, nil
}

func (s *session) Release() {
	s.released = true
}
