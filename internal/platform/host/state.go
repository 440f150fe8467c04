package host

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const stateFileName = "envboot.state.toml"

// State is the persisted platform state shared with other tooling.
type State struct {
	// BootTarget is written by whoever wants the next boot to go straight
	// into an environment. envboot only reads it.
	BootTarget string `toml:"boot_target,omitempty"`
	// DefaultEnvironment is the autoboot default chosen in the menu.
	DefaultEnvironment string `toml:"default_environment,omitempty"`
}

// LoadState reads the state file from dir.
// Returns an empty state if the file does not exist.
func LoadState(dir string) (*State, error) {
	path := filepath.Join(dir, stateFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("reading state file: %w", err)
	}

	var state State
	if err := toml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing state file: %w", err)
	}
	return &state, nil
}

// SaveState writes the state file atomically (write temp + rename).
func SaveState(dir string, state *State) error {
	data, err := toml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	path := filepath.Join(dir, stateFileName)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp state file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming state file: %w", err)
	}

	return nil
}
