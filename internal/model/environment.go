package model

import "sort"

// Environment is one installed payload set found under the environments root.
type Environment struct {
	Name string // Directory name, unique within a scan
	Path string // Full path to the environment directory
}

// EnvironmentSet is the ordered result of a single repository scan.
// Entries are sorted by name and the order never changes after
// construction, so index i always refers to the same environment.
type EnvironmentSet struct {
	entries []Environment
}

// NewEnvironmentSet sorts envs by name and drops later duplicates of a name.
func NewEnvironmentSet(envs []Environment) EnvironmentSet {
	sorted := make([]Environment, 0, len(envs))
	seen := make(map[string]bool, len(envs))
	for _, e := range envs {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		sorted = append(sorted, e)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return EnvironmentSet{entries: sorted}
}

func (s EnvironmentSet) Len() int { return len(s.entries) }

func (s EnvironmentSet) Empty() bool { return len(s.entries) == 0 }

// At returns the i-th environment. Callers must keep 0 <= i < Len().
func (s EnvironmentSet) At(i int) Environment { return s.entries[i] }

// Index returns the position of name, or -1.
func (s EnvironmentSet) Index(name string) int {
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Name >= name
	})
	if i < len(s.entries) && s.entries[i].Name == name {
		return i
	}
	return -1
}

// IndexOfPath returns the position of the environment at path, or -1.
func (s EnvironmentSet) IndexOfPath(path string) int {
	for i, e := range s.entries {
		if e.Path == path {
			return i
		}
	}
	return -1
}

func (s EnvironmentSet) Lookup(name string) (Environment, bool) {
	i := s.Index(name)
	if i < 0 {
		return Environment{}, false
	}
	return s.entries[i], true
}

func (s EnvironmentSet) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// All returns a copy of the entries in set order.
func (s EnvironmentSet) All() []Environment {
	out := make([]Environment, len(s.entries))
	copy(out, s.entries)
	return out
}
