package resolver

import (
	"log/slog"
	"path"
	"strings"

	"envboot/internal/model"
	"envboot/internal/platform"
)

// Resolver implements the silent autoboot fast path.
type Resolver struct {
	source platform.BootTargetSource
	prefix string // environments root, with trailing slash
	logger *slog.Logger
}

// New returns a Resolver accepting targets below environmentsRoot.
func New(source platform.BootTargetSource, environmentsRoot string, logger *slog.Logger) *Resolver {
	prefix := strings.TrimSuffix(environmentsRoot, "/") + "/"
	return &Resolver{source: source, prefix: prefix, logger: logger}
}

// Resolve returns the environment the platform asked to boot into, if any.
// The second result is false when interactive selection should run.
func (r *Resolver) Resolve() (model.Choice, bool) {
	raw, err := r.source.BootTarget()
	if err != nil {
		r.logger.Debug("boot target query failed", "error", err)
		return model.Choice{}, false
	}
	target := platform.FixedString(raw, platform.BootTargetSize)
	if target == "" {
		return model.Choice{}, false
	}

	env, ok := r.match(target)
	if !ok {
		r.logger.Debug("boot target ignored", "target", target)
		return model.Choice{}, false
	}
	r.logger.Info("boot into persisted target", "environment", env.Name, "path", env.Path)
	return model.Chose(model.SourceBootTarget, env), true
}

func (r *Resolver) match(target string) (model.Environment, bool) {
	if !strings.HasPrefix(target, r.prefix) {
		return model.Environment{}, false
	}
	rest := strings.TrimPrefix(target, r.prefix)
	name, _, _ := strings.Cut(rest, "/")
	if name == "" || name == "." || name == ".." {
		return model.Environment{}, false
	}
	return model.Environment{Name: name, Path: path.Join(r.prefix, name)}, true
}
