package selection

import "testing"

func TestApply_CursorBounds(t *testing.T) {
	for n := 1; n <= 6; n++ {
		s := NewState(n, NoAutoboot)
		for i := 0; i < n+3; i++ {
			s = s.Apply(InputDown, n)
			if s.Cursor < 0 || s.Cursor > n-1 {
				t.Fatalf("n=%d: cursor %d out of range after down", n, s.Cursor)
			}
		}
		if s.Cursor != n-1 {
			t.Errorf("n=%d: cursor = %d after repeated down, want %d", n, s.Cursor, n-1)
		}
		for i := 0; i < n+3; i++ {
			s = s.Apply(InputUp, n)
			if s.Cursor < 0 {
				t.Fatalf("n=%d: cursor %d below zero after up", n, s.Cursor)
			}
		}
		if s.Cursor != 0 {
			t.Errorf("n=%d: cursor = %d after repeated up, want 0", n, s.Cursor)
		}
	}
}

func TestApply_ConfirmOnEmptySetIsNoop(t *testing.T) {
	s := NewState(0, NoAutoboot)
	for _, in := range []Input{InputConfirm, InputDown, InputUp, InputConfirm} {
		s = s.Apply(in, 0)
		if s.Confirmed {
			t.Fatalf("confirmed on empty set after %v", in)
		}
		if s.Cursor != 0 {
			t.Fatalf("cursor moved on empty set: %d", s.Cursor)
		}
	}
}

func TestApply_ConfirmKeepsCursor(t *testing.T) {
	s := Replay(NewState(3, NoAutoboot), 3, InputDown, InputDown, InputConfirm, InputUp)
	if !s.Confirmed {
		t.Fatal("expected confirmed state")
	}
	if s.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", s.Cursor)
	}

	// Terminal: later input is ignored.
	if after := s.Apply(InputUp, 3); after != s {
		t.Errorf("confirmed state changed: %+v", after)
	}
}

func TestApply_SetThenClearDefault(t *testing.T) {
	starts := []State{
		NewState(4, NoAutoboot),
		NewState(4, 2),
		{Cursor: 3, Autoboot: 1},
	}
	for _, start := range starts {
		s := start.Apply(InputSetDefault, 4).Apply(InputClearDefault, 4)
		if s.Autoboot != NoAutoboot {
			t.Errorf("from %+v: Autoboot = %d, want -1", start, s.Autoboot)
		}
	}
}

func TestApply_SetDefaultMarksCursor(t *testing.T) {
	s := Replay(NewState(3, NoAutoboot), 3, InputDown, InputSetDefault, InputUp)
	if s.Autoboot != 1 {
		t.Errorf("Autoboot = %d, want 1", s.Autoboot)
	}
	if s.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", s.Cursor)
	}
}

func TestNewState(t *testing.T) {
	tests := []struct {
		name         string
		n, autoboot  int
		wantCursor   int
		wantAutoboot int
	}{
		{"no default", 3, NoAutoboot, 0, NoAutoboot},
		{"default first", 3, 0, 0, 0},
		{"default last", 3, 2, 2, 2},
		{"stale default", 2, 5, 0, NoAutoboot},
		{"empty set", 0, 0, 0, NoAutoboot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(tt.n, tt.autoboot)
			if s.Cursor != tt.wantCursor || s.Autoboot != tt.wantAutoboot {
				t.Errorf("NewState(%d, %d) = %+v", tt.n, tt.autoboot, s)
			}
		})
	}
}
