package selection

// Input is one edge-triggered operator action per frame.
type Input int

const (
	InputNone Input = iota
	InputUp
	InputDown
	InputConfirm
	InputClearDefault
	InputSetDefault
)

func (i Input) String() string {
	switch i {
	case InputUp:
		return "up"
	case InputDown:
		return "down"
	case InputConfirm:
		return "confirm"
	case InputClearDefault:
		return "clear-default"
	case InputSetDefault:
		return "set-default"
	default:
		return "none"
	}
}

// NoAutoboot is the Autoboot value when no default is marked.
const NoAutoboot = -1

// State is the menu cursor plus the autoboot mark.
type State struct {
	Cursor    int
	Autoboot  int
	Confirmed bool
}

// NewState starts the cursor on the autoboot row when that row exists.
func NewState(n, autoboot int) State {
	if autoboot < 0 || autoboot >= n {
		autoboot = NoAutoboot
	}
	s := State{Autoboot: autoboot}
	if autoboot > 0 {
		s.Cursor = autoboot
	}
	return s
}

// Apply returns the state after input on a set of n entries.
// A confirmed state is terminal and ignores further input.
func (s State) Apply(in Input, n int) State {
	if s.Confirmed {
		return s
	}
	switch in {
	case InputUp:
		if s.Cursor > 0 {
			s.Cursor--
		}
	case InputDown:
		if s.Cursor < n-1 {
			s.Cursor++
		}
	case InputConfirm:
		if n > 0 {
			s.Confirmed = true
		}
	case InputClearDefault:
		s.Autoboot = NoAutoboot
	case InputSetDefault:
		if n > 0 {
			s.Autoboot = s.Cursor
		}
	}
	return s
}

// Replay applies inputs in order, stopping at the first confirm.
func Replay(s State, n int, inputs ...Input) State {
	for _, in := range inputs {
		s = s.Apply(in, n)
		if s.Confirmed {
			break
		}
	}
	return s
}
