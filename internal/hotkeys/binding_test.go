package hotkeys

import (
	"testing"

	"github.com/1broseidon/winsnap/internal/placement"
)

func TestDefaultTable(t *testing.T) {
	tests := []struct {
		mods Modifiers
		key  Key
		want placement.Action
	}{
		{Cmd | Opt, KeyLeft, placement.Left},
		{Cmd | Opt, KeyRight, placement.Right},
		{Cmd | Opt, KeyL, placement.Maximize},
		{Cmd | Opt, KeyR, placement.Reset},
		{Ctrl | Opt | Cmd, KeyRight, placement.NextDisplay},
	}

	table := DefaultTable()
	if got := len(table.Bindings()); got != len(tests) {
		t.Fatalf("expected %d bindings, got %d", len(tests), got)
	}
	for _, tt := range tests {
		got, ok := table.Match(Event{Type: KeyDown, Mods: tt.mods, Key: tt.key})
		if !ok {
			t.Fatalf("expected %s+%s to match", tt.mods, tt.key)
		}
		if got != tt.want {
			t.Fatalf("%s+%s: expected %s, got %s", tt.mods, tt.key, tt.want, got)
		}
	}
}

func TestMatchRequiresExactModifiers(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name string
		ev   Event
	}{
		{"extra shift", Event{Type: KeyDown, Mods: Cmd | Opt | Shift, Key: KeyL}},
		{"missing opt", Event{Type: KeyDown, Mods: Cmd, Key: KeyL}},
		{"ctrl instead of cmd", Event{Type: KeyDown, Mods: Ctrl | Opt, Key: KeyLeft}},
		{"ctrl on left arrow", Event{Type: KeyDown, Mods: Ctrl | Opt | Cmd, Key: KeyLeft}},
		{"no modifiers", Event{Type: KeyDown, Key: KeyR}},
		{"unbound key", Event{Type: KeyDown, Mods: Cmd | Opt, Key: KeyNone}},
		{"key up", Event{Type: KeyUp, Mods: Cmd | Opt, Key: KeyL}},
		{"flags changed", Event{Type: FlagsChanged, Mods: Cmd | Opt, Key: KeyL}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if action, ok := table.Match(tt.ev); ok {
				t.Fatalf("expected no match, got %s", action)
			}
		})
	}
}

func TestNextDisplayDoesNotShadowRight(t *testing.T) {
	table := DefaultTable()
	got, _ := table.Match(Event{Type: KeyDown, Mods: Cmd | Opt, Key: KeyRight})
	if got != placement.Right {
		t.Fatalf("expected right, got %s", got)
	}
	got, _ = table.Match(Event{Type: KeyDown, Mods: Ctrl | Opt | Cmd, Key: KeyRight})
	if got != placement.NextDisplay {
		t.Fatalf("expected next-display, got %s", got)
	}
}

func TestBindingString(t *testing.T) {
	b := Binding{Mods: Ctrl | Opt | Cmd, Key: KeyRight}
	if got := b.String(); got != "Ctrl+Opt+Cmd+Right" {
		t.Fatalf("unexpected binding string %q", got)
	}
}
