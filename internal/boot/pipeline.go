// Package boot wires discovery, selection and dispatch into the boot sequence.
package boot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"envboot/internal/fallback"
	"envboot/internal/guard"
	"envboot/internal/model"
	"envboot/internal/platform"
	"envboot/internal/repo"
	"envboot/internal/resolver"
	"envboot/internal/selection"
	"envboot/internal/setup"

	"github.com/spf13/afero"
)

// IdleInterval is how often the idle loop polls the lifecycle service.
const IdleInterval = 100 * time.Millisecond

// Services are the platform collaborators the pipeline needs.
type Services interface {
	platform.Prober
	platform.BootTargetSource
	platform.DefaultStore
	platform.ModuleLoader
	platform.MenuLauncher
	platform.Lifecycle
}

// Options configures a Pipeline.
type Options struct {
	FS          afero.Fs
	StorageRoot string
	ModuleExt   string
	GuardMarker string
	// ForceMenu shows the menu even when a saved default could be booted.
	ForceMenu bool
	// MenuRequested is the operator asking for the menu at startup.
	MenuRequested bool
	Args          []string
	Hooks         fallback.Hooks
}

// Pipeline is one run of the boot sequence.
type Pipeline struct {
	opts     Options
	services Services
	display  selection.Display
	logger   *slog.Logger
	idle     time.Duration
}

func New(opts Options, services Services, display selection.Display, logger *slog.Logger) *Pipeline {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	return &Pipeline{opts: opts, services: services, display: display, logger: logger, idle: IdleInterval}
}

// Run executes the whole sequence. Errors returned are fatal; every
// recoverable condition is handled inside.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := guard.Check(p.services, p.opts.FS, p.opts.GuardMarker, p.logger); err != nil {
		return err
	}

	choice, err := p.Choose(ctx)
	if err != nil {
		return err
	}

	switch {
	case choice.Chosen():
		p.logger.Info("booting environment",
			"environment", choice.Environment.Name,
			"source", choice.Source.String())
		d := setup.NewDispatcher(p.opts.FS, p.opts.ModuleExt, p.services, p.logger)
		report, err := d.Dispatch(ctx, choice.Environment.Path)
		if err != nil {
			p.logger.Error("setup sequence stopped", "error", err)
		}
		p.logger.Info("setup sequence done",
			"executed", len(report.Executed),
			"skipped", len(report.Skipped),
			"failed", len(report.Failed))
	case choice.Reason == model.ReasonNoEnvironments:
		l := fallback.NewLauncher(p.services, p.services, p.opts.Hooks, p.logger)
		if err := l.Launch(ctx, p.opts.Args); err != nil {
			p.logger.Error("fallback launch failed", "error", err)
		}
	default:
		p.logger.Info("selection cancelled", "reason", choice.Reason.String())
	}

	p.idleLoop(ctx)
	return nil
}

// Choose decides which environment to boot without running it.
func (p *Pipeline) Choose(ctx context.Context) (model.Choice, error) {
	envRoot := repo.New(p.opts.FS, p.opts.StorageRoot).Root()

	if choice, ok := resolver.New(p.services, envRoot, p.logger).Resolve(); ok {
		return choice, nil
	}

	set := repo.Scan(p.opts.FS, envRoot)
	p.logger.Debug("scanned environments", "root", envRoot, "count", set.Len())

	autoboot := p.savedDefaultIndex(set)
	if !p.opts.ForceMenu && !p.opts.MenuRequested && autoboot >= 0 {
		env := set.At(autoboot)
		p.logger.Info("autobooting saved default", "environment", env.Name)
		return model.Chose(model.SourceDefault, env), nil
	}

	choice, err := selection.NewSelector(p.display, p.services, p.logger).Select(ctx, set, autoboot)
	if err != nil {
		return model.Choice{}, fmt.Errorf("environment selection: %w", err)
	}
	return choice, nil
}

func (p *Pipeline) savedDefaultIndex(set model.EnvironmentSet) int {
	saved, err := p.services.SavedDefault()
	if err != nil {
		p.logger.Warn("reading saved default failed", "error", err)
		return selection.NoAutoboot
	}
	if saved == "" {
		return selection.NoAutoboot
	}
	i := set.IndexOfPath(saved)
	if i < 0 {
		p.logger.Debug("saved default not installed", "path", saved)
	}
	return i
}

// idleLoop waits for the platform to ask the process to exit.
func (p *Pipeline) idleLoop(ctx context.Context) {
	p.services.Init()
	defer p.services.Shutdown()

	for p.services.Running() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.idle):
		}
	}
}
