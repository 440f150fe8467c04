package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"envboot/internal/model"
	"envboot/internal/platform"
)

// Report summarises one dispatch run.
type Report struct {
	Executed []string
	Skipped  []string
	Failed   []string
}

// Dispatcher runs an environment's setup modules one after another.
type Dispatcher struct {
	fs     afero.Fs
	ext    string
	loader platform.ModuleLoader
	logger *slog.Logger
}

func NewDispatcher(fs afero.Fs, ext string, loader platform.ModuleLoader, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{fs: fs, ext: ext, loader: loader, logger: logger}
}

// Dispatch executes the setup modules of envPath in name order.
// Whether a failing module stops the sequence is up to the loader: only
// errors wrapping platform.ErrHalt do. There is no rollback.
func (d *Dispatcher) Dispatch(ctx context.Context, envPath string) (Report, error) {
	var report Report

	modules, err := List(d.fs, envPath, d.ext)
	if err != nil {
		return report, err
	}
	if len(modules) == 0 {
		d.logger.Warn("no setup modules found", "environment", envPath)
	}

	for _, m := range modules {
		if m.Skip {
			d.logger.Warn("skip file", "module", m.Path)
			report.Skipped = append(report.Skipped, m.Name)
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		d.logger.Info("running setup module", "module", m.Name)
		if err := d.loader.Load(ctx, m); err != nil {
			report.Failed = append(report.Failed, m.Name)
			if errors.Is(err, platform.ErrHalt) {
				return report, fmt.Errorf("setup module %s: %w", m.Name, err)
			}
			d.logger.Error("setup module failed", "module", m.Name, "error", err)
			continue
		}
		report.Executed = append(report.Executed, m.Name)
	}
	return report, nil
}

// Modules lists without executing, for diagnostics.
func (d *Dispatcher) Modules(envPath string) ([]model.SetupModule, error) {
	return List(d.fs, envPath, d.ext)
}
