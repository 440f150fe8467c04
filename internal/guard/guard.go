package guard

import (
	"errors"
	"log/slog"

	"github.com/spf13/afero"

	"envboot/internal/platform"
)

// ErrDuplicateInstance is wrapped by every error Check returns for a resident instance.
var ErrDuplicateInstance = errors.New("duplicate instance")

// DuplicateError carries the diagnostic shown before halting.
type DuplicateError struct {
	Message   string
	MarkerHit bool // The marker file existed when the duplicate was detected
}

func (e *DuplicateError) Error() string { return e.Message }

func (e *DuplicateError) Unwrap() error { return ErrDuplicateInstance }

const (
	messageWithMarker    = "Don't run the environment loader twice."
	messageWithoutMarker = "Don't run the environment loader twice."
)

// Check returns a *DuplicateError when a privileged instance is already
// resident. The marker file only selects the diagnostic variant.
// A failing probe is logged and treated as "not resident".
func Check(prober platform.Prober, fs afero.Fs, marker string, logger *slog.Logger) error {
	resident, err := prober.PrivilegedResident()
	if err != nil {
		logger.Warn("instance probe failed", "error", err)
		return nil
	}
	if !resident {
		return nil
	}

	hit := false
	if marker != "" {
		hit, _ = afero.Exists(fs, marker)
	}
	if hit {
		return &DuplicateError{Message: messageWithMarker, MarkerHit: true}
	}
	return &DuplicateError{Message: messageWithoutMarker}
}
