package core

import "testing"

func TestInputFrameKeepsOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRight)
	f.Set(ActionNone)
	f.Set(ActionRight)
	f.Set(ActionUndo)

	expected := []Action{ActionRight, ActionRight, ActionUndo}
	if len(f.Actions) != len(expected) {
		t.Fatalf("Actions = %v, expected %v", f.Actions, expected)
	}
	for i, a := range expected {
		if f.Actions[i] != a {
			t.Errorf("Actions[%d] = %v, expected %v", i, f.Actions[i], a)
		}
	}

	if !f.Has(ActionUndo) || f.Has(ActionLeft) {
		t.Error("Has() mismatch")
	}
}

func TestInputFrameBounded(t *testing.T) {
	f := NewInputFrame()
	for i := 0; i < MaxFrameActions*2; i++ {
		f.Set(ActionUp)
	}
	if len(f.Actions) != MaxFrameActions {
		t.Errorf("len(Actions) = %d, expected %d", len(f.Actions), MaxFrameActions)
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)

	clone := f.Clone()
	f.Clear()

	if !f.Empty() {
		t.Error("Clear() should empty the frame")
	}
	if !clone.Has(ActionLeft) {
		t.Error("Clone() should be independent of the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionUndo.String() != "Undo" {
		t.Errorf("ActionUndo.String() = %q", ActionUndo.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in       string
		expected Color
		ok       bool
	}{
		{"red", ColorRed, true},
		{" Orange ", ColorOrange, true},
		{"grey", ColorGray, true},
		{"chartreuse", ColorDefault, false},
	}

	for _, tc := range tests {
		got, ok := ParseColor(tc.in)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParseColor(%q) = %v, %v, expected %v, %v", tc.in, got, ok, tc.expected, tc.ok)
		}
	}
	if ColorMagenta.String() != "magenta" {
		t.Errorf("ColorMagenta.String() = %q", ColorMagenta.String())
	}
}
