package fallback

import (
	"context"
	"fmt"
	"log/slog"

	"envboot/internal/platform"
)

// HookSentinel in the process arguments announces a restoration hook;
// the following argument names the hook to run.
const HookSentinel = "force-default-menu"

// Hook is a restoration-tooling callback run before the stock menu starts.
type Hook func(ctx context.Context) error

// Hooks maps hook names to callbacks.
type Hooks map[string]Hook

// Launcher returns control to the stock menu when nothing can be booted.
type Launcher struct {
	lifecycle platform.Lifecycle
	menu      platform.MenuLauncher
	hooks     Hooks
	logger    *slog.Logger
}

func NewLauncher(lifecycle platform.Lifecycle, menu platform.MenuLauncher, hooks Hooks, logger *slog.Logger) *Launcher {
	return &Launcher{lifecycle: lifecycle, menu: menu, hooks: hooks, logger: logger}
}

// Launch runs any hook requested in args, then requests the stock menu.
// Rendering resources must already be released.
func (l *Launcher) Launch(ctx context.Context, args []string) error {
	l.lifecycle.Init()

	for _, name := range RequestedHooks(args) {
		hook, ok := l.hooks[name]
		if !ok {
			l.logger.Warn("unknown restoration hook", "hook", name)
			continue
		}
		l.logger.Debug("calling restoration hook", "hook", name)
		if err := hook(ctx); err != nil {
			l.logger.Error("restoration hook failed", "hook", name, "error", err)
		}
	}

	l.logger.Info("launching system menu")
	if err := l.menu.LaunchMenu(ctx); err != nil {
		return fmt.Errorf("launching system menu: %w", err)
	}
	return nil
}

// RequestedHooks scans args for the sentinel and returns the names that
// follow each occurrence. A trailing sentinel with no name is ignored.
func RequestedHooks(args []string) []string {
	var names []string
	for i := 0; i < len(args); i++ {
		if args[i] != HookSentinel {
			continue
		}
		if i+1 < len(args) {
			i++
			names = append(names, args[i])
		}
	}
	return names
}
