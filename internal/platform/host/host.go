// Package host implements the platform services on a regular Unix host:
// the SD card is a directory, the persisted platform state is a TOML file
// and setup modules are executed as processes.
package host

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"envboot/internal/model"
	"envboot/internal/platform"
)

const lockFileName = "envboot.lock"

// Options configures a Host.
type Options struct {
	StateDir     string // Holds the state and lock files
	ModuleRunner string // Command prefix for setup modules; empty runs them directly
	MenuCommand  string // Stock menu command; empty only logs the request
	Linger       bool   // Keep the idle loop alive until a signal arrives
	Output       io.Writer
	Logger       *slog.Logger
}

// Host provides every platform service the boot pipeline needs.
type Host struct {
	opts Options
	lock *os.File

	signals chan os.Signal
	exiting bool
}

var (
	_ platform.Prober           = (*Host)(nil)
	_ platform.BootTargetSource = (*Host)(nil)
	_ platform.DefaultStore     = (*Host)(nil)
	_ platform.ModuleLoader     = (*Host)(nil)
	_ platform.MenuLauncher     = (*Host)(nil)
	_ platform.Lifecycle        = (*Host)(nil)
)

func New(opts Options) *Host {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Host{opts: opts}
}

// PrivilegedResident takes the instance lock. It reports true when another
// envboot already holds it; otherwise the lock is kept until Shutdown.
func (h *Host) PrivilegedResident() (bool, error) {
	if h.lock != nil {
		return false, nil
	}
	if err := os.MkdirAll(h.opts.StateDir, 0o755); err != nil {
		return false, fmt.Errorf("creating state dir: %w", err)
	}
	f, held, err := tryLock(filepath.Join(h.opts.StateDir, lockFileName))
	if err != nil {
		return false, err
	}
	if held {
		return true, nil
	}
	h.lock = f
	return false, nil
}

// BootTarget returns the boot_target recorded in the state file.
func (h *Host) BootTarget() (string, error) {
	state, err := LoadState(h.opts.StateDir)
	if err != nil {
		return "", err
	}
	return platform.FixedString(state.BootTarget, platform.BootTargetSize), nil
}

func (h *Host) SavedDefault() (string, error) {
	state, err := LoadState(h.opts.StateDir)
	if err != nil {
		return "", err
	}
	return state.DefaultEnvironment, nil
}

func (h *Host) SaveDefault(env model.Environment) error {
	return h.updateState(func(s *State) { s.DefaultEnvironment = env.Path })
}

func (h *Host) ClearDefault() error {
	return h.updateState(func(s *State) { s.DefaultEnvironment = "" })
}

func (h *Host) updateState(mutate func(*State)) error {
	state, err := LoadState(h.opts.StateDir)
	if err != nil {
		return err
	}
	mutate(state)
	return SaveState(h.opts.StateDir, state)
}

// Load runs one setup module and waits for it to exit.
// The environment directory is exported as ENVBOOT_ENVIRONMENT.
func (h *Host) Load(ctx context.Context, m model.SetupModule) error {
	args := append(strings.Fields(h.opts.ModuleRunner), m.Path)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = append(os.Environ(), "ENVBOOT_ENVIRONMENT="+environmentOf(m.Path))
	cmd.Stdout = h.opts.Output
	cmd.Stderr = h.opts.Output

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", m.Name, err)
	}
	h.opts.Logger.Debug("setup module finished", "module", m.Name, "elapsed", time.Since(start))
	return nil
}

// environmentOf maps <env>/modules/setup/<file> back to <env>.
func environmentOf(modulePath string) string {
	return filepath.Dir(filepath.Dir(filepath.Dir(modulePath)))
}

// LaunchMenu starts the configured stock menu command and returns without
// waiting for it.
func (h *Host) LaunchMenu(ctx context.Context) error {
	fields := strings.Fields(h.opts.MenuCommand)
	if len(fields) == 0 {
		h.opts.Logger.Info("no menu command configured, nothing to launch")
		return nil
	}
	cmd := exec.Command(fields[0], fields[1:]...)
	cmd.Stdout = h.opts.Output
	cmd.Stderr = h.opts.Output
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Init subscribes to the process exit signals.
func (h *Host) Init() {
	if h.signals != nil {
		return
	}
	h.signals = make(chan os.Signal, 1)
	signal.Notify(h.signals, os.Interrupt, syscall.SIGTERM)
}

// Running polls for exit signals without blocking.
func (h *Host) Running() bool {
	if h.exiting {
		return false
	}
	if !h.opts.Linger {
		h.exiting = true
		return false
	}
	select {
	case <-h.signals:
		h.exiting = true
		return false
	default:
		return true
	}
}

// Shutdown stops signal delivery and releases the instance lock.
func (h *Host) Shutdown() {
	if h.signals != nil {
		signal.Stop(h.signals)
		h.signals = nil
	}
	if h.lock != nil {
		unlock(h.lock)
		h.lock = nil
	}
}
