// Package platform declares the device services the boot pipeline talks to.
// The pipeline only sees these interfaces; internal/platform/host provides
// an implementation backed by a directory tree and a state file.
package platform

import (
	"context"
	"errors"

	"envboot/internal/model"
)

// BootTargetSize is the size of the buffer the boot target is read into,
// including the terminating NUL.
const BootTargetSize = 0x100

// ErrHalt, when wrapped by a ModuleLoader error, stops the setup sequence.
var ErrHalt = errors.New("halt setup sequence")

// Prober reports whether a privileged prior instance is already resident.
type Prober interface {
	PrivilegedResident() (bool, error)
}

// BootTargetSource returns the environment path the platform wants to boot next.
type BootTargetSource interface {
	BootTarget() (string, error)
}

// DefaultStore persists the operator's autoboot default.
type DefaultStore interface {
	SavedDefault() (string, error)
	SaveDefault(env model.Environment) error
	ClearDefault() error
}

// ModuleLoader runs one setup module to completion.
type ModuleLoader interface {
	Load(ctx context.Context, m model.SetupModule) error
}

// MenuLauncher hands control back to the device's stock menu.
type MenuLauncher interface {
	LaunchMenu(ctx context.Context) error
}

// Lifecycle is the process foreground/exit notification service.
type Lifecycle interface {
	Init()
	// Running polls pending notifications and reports false once the
	// platform asked the process to exit.
	Running() bool
	Shutdown()
}
