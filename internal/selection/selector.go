package selection

import (
	"context"
	"fmt"
	"log/slog"

	"envboot/internal/model"
	"envboot/internal/platform"
)

// Display hands out the rendering surface for one menu session.
type Display interface {
	Acquire() (Session, error)
}

// Session drives the interactive loop until the operator confirms or quits.
// Release renders a final blank frame and frees the surface; it is called
// exactly once on every exit path.
type Session interface {
	Run(ctx context.Context, set model.EnvironmentSet, initial State) (State, error)
	Release()
}

// Selector runs the environment menu and records autoboot changes.
type Selector struct {
	display  Display
	defaults platform.DefaultStore
	logger   *slog.Logger
}

func NewSelector(display Display, defaults platform.DefaultStore, logger *slog.Logger) *Selector {
	return &Selector{display: display, defaults: defaults, logger: logger}
}

// Select shows the menu for set with autoboot marked as the initial default.
// An error means the display could not be brought up or failed mid-loop;
// callers treat it as fatal.
func (s *Selector) Select(ctx context.Context, set model.EnvironmentSet, autoboot int) (model.Choice, error) {
	initial := NewState(set.Len(), autoboot)

	final, err := s.run(ctx, set, initial)
	if err != nil {
		return model.Choice{}, err
	}

	if final.Autoboot != initial.Autoboot {
		s.persist(set, final.Autoboot)
	}

	if set.Empty() {
		return model.NoChoice(model.ReasonNoEnvironments), nil
	}
	if !final.Confirmed {
		return model.NoChoice(model.ReasonCancelled), nil
	}
	env := set.At(final.Cursor)
	s.logger.Debug("selected environment", "environment", env.Name, "path", env.Path)
	return model.Chose(model.SourceMenu, env), nil
}

func (s *Selector) run(ctx context.Context, set model.EnvironmentSet, initial State) (State, error) {
	session, err := s.display.Acquire()
	if err != nil {
		return State{}, fmt.Errorf("acquiring display: %w", err)
	}
	defer session.Release()

	final, err := session.Run(ctx, set, initial)
	if err != nil {
		return State{}, fmt.Errorf("running menu: %w", err)
	}
	return final, nil
}

// persist is fire-and-forget: failures are logged only.
func (s *Selector) persist(set model.EnvironmentSet, autoboot int) {
	if autoboot == NoAutoboot || autoboot >= set.Len() {
		s.logger.Info("clearing autoboot default")
		if err := s.defaults.ClearDefault(); err != nil {
			s.logger.Warn("clearing autoboot default failed", "error", err)
		}
		return
	}
	env := set.At(autoboot)
	s.logger.Info("saving autoboot default", "environment", env.Name)
	if err := s.defaults.SaveDefault(env); err != nil {
		s.logger.Warn("saving autoboot default failed", "environment", env.Name, "error", err)
	}
}
