package model

import (
	"reflect"
	"testing"
)

func TestNewEnvironmentSet_SortsByName(t *testing.T) {
	set := NewEnvironmentSet([]Environment{
		{Name: "gamma", Path: "/env/gamma"},
		{Name: "alpha", Path: "/env/alpha"},
		{Name: "beta", Path: "/env/beta"},
	})

	want := []string{"alpha", "beta", "gamma"}
	if got := set.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i, name := range want {
		if got := set.At(i).Name; got != name {
			t.Errorf("At(%d).Name = %q, want %q", i, got, name)
		}
	}
}

func TestNewEnvironmentSet_DropsDuplicateNames(t *testing.T) {
	set := NewEnvironmentSet([]Environment{
		{Name: "a", Path: "/first"},
		{Name: "a", Path: "/second"},
	})
	if set.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", set.Len())
	}
	if set.At(0).Path != "/first" {
		t.Errorf("kept %q, want /first", set.At(0).Path)
	}
}

func TestEnvironmentSet_Lookup(t *testing.T) {
	set := NewEnvironmentSet([]Environment{
		{Name: "tiramisu", Path: "/env/tiramisu"},
		{Name: "aroma", Path: "/env/aroma"},
	})

	tests := []struct {
		name      string
		wantIndex int
	}{
		{"aroma", 0},
		{"tiramisu", 1},
		{"missing", -1},
		{"", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := set.Index(tt.name); got != tt.wantIndex {
				t.Errorf("Index(%q) = %d, want %d", tt.name, got, tt.wantIndex)
			}
			_, ok := set.Lookup(tt.name)
			if ok != (tt.wantIndex >= 0) {
				t.Errorf("Lookup(%q) ok = %v", tt.name, ok)
			}
		})
	}

	if got := set.IndexOfPath("/env/tiramisu"); got != 1 {
		t.Errorf("IndexOfPath = %d, want 1", got)
	}
}

func TestEmptySet(t *testing.T) {
	var set EnvironmentSet
	if !set.Empty() || set.Len() != 0 {
		t.Fatalf("zero value should be empty")
	}
	if len(set.Names()) != 0 {
		t.Errorf("Names() of empty set = %v", set.Names())
	}
}

func TestSkippedName(t *testing.T) {
	tests := map[string]bool{
		".hidden.rpx": true,
		"_skip.rpx":   true,
		"10_a.rpx":    false,
		"a_b.rpx":     false,
		"":            false,
	}
	for name, want := range tests {
		if got := SkippedName(name); got != want {
			t.Errorf("SkippedName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestChoice(t *testing.T) {
	c := NoChoice(ReasonNoEnvironments)
	if c.Chosen() {
		t.Error("NoChoice should not be chosen")
	}
	c = Chose(SourceMenu, Environment{Name: "x", Path: "/x"})
	if !c.Chosen() || c.Environment.Name != "x" {
		t.Errorf("Chose = %+v", c)
	}
}
