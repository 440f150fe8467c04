package model

// Source says how the environment to boot was decided.
type Source int

const (
	SourceNone       Source = iota // Nothing to boot, see Reason
	SourceMenu                     // Operator confirmed a row in the menu
	SourceBootTarget               // Platform-persisted boot target, menu skipped
	SourceDefault                  // Saved autoboot default, menu skipped
)

func (s Source) String() string {
	switch s {
	case SourceMenu:
		return "menu"
	case SourceBootTarget:
		return "boot-target"
	case SourceDefault:
		return "default"
	default:
		return "none"
	}
}

// NoneReason explains a Choice without an environment.
type NoneReason int

const (
	ReasonUnset NoneReason = iota
	ReasonNoEnvironments
	ReasonCancelled
)

func (r NoneReason) String() string {
	switch r {
	case ReasonNoEnvironments:
		return "no environments"
	case ReasonCancelled:
		return "cancelled"
	default:
		return "unset"
	}
}

// Choice is the outcome of the pre-boot phase.
type Choice struct {
	Source      Source
	Environment Environment
	Reason      NoneReason
}

// Chosen reports whether an environment should be booted.
func (c Choice) Chosen() bool { return c.Source != SourceNone }

func Chose(src Source, env Environment) Choice {
	return Choice{Source: src, Environment: env}
}

func NoChoice(reason NoneReason) Choice {
	return Choice{Source: SourceNone, Reason: reason}
}
