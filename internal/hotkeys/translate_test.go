package hotkeys

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestModifiersFromMacFlagsMasksArrowBits(t *testing.T) {
	const (
		numericPad = 0x200000
		fn         = 0x800000
		capsLock   = 0x10000
	)
	flags := uint64(macFlagCommand | macFlagAlternate | numericPad | fn | capsLock)
	if got := ModifiersFromMacFlags(flags); got != Cmd|Opt {
		t.Fatalf("expected Cmd+Opt, got %s", got)
	}

	flags = macFlagControl | macFlagAlternate | macFlagCommand | macFlagShift
	if got := ModifiersFromMacFlags(flags); got != Ctrl|Opt|Cmd|Shift {
		t.Fatalf("expected all four modifiers, got %s", got)
	}
}

func TestKeyFromMacKeyCode(t *testing.T) {
	tests := map[uint16]Key{
		0x25: KeyL,
		0x0F: KeyR,
		0x7B: KeyLeft,
		0x7C: KeyRight,
		0x00: KeyNone,
	}
	for code, want := range tests {
		if got := KeyFromMacKeyCode(code); got != want {
			t.Fatalf("code 0x%02x: expected %s, got %s", code, want, got)
		}
	}
}

func TestModifiersFromX11State(t *testing.T) {
	numLock := uint16(xproto.ModMask2)
	state := uint16(xproto.ModMask4|xproto.ModMask1|xproto.ModMaskLock) | numLock
	if got := ModifiersFromX11State(state); got != Cmd|Opt {
		t.Fatalf("expected Cmd+Opt, got %s", got)
	}
}

func TestKeyFromKeysym(t *testing.T) {
	tests := map[string]Key{
		"Left":  KeyLeft,
		"Right": KeyRight,
		"l":     KeyL,
		"L":     KeyL,
		"r":     KeyR,
		"Up":    KeyNone,
	}
	for sym, want := range tests {
		if got := KeyFromKeysym(sym); got != want {
			t.Fatalf("keysym %q: expected %s, got %s", sym, want, got)
		}
	}
}

func TestX11Sequence(t *testing.T) {
	want := []string{
		"Mod4-Mod1-Left",
		"Mod4-Mod1-Right",
		"Mod4-Mod1-l",
		"Mod4-Mod1-r",
		"Control-Mod4-Mod1-Right",
	}
	for i, b := range DefaultTable().Bindings() {
		if got := X11Sequence(b); got != want[i] {
			t.Fatalf("binding %s: expected %q, got %q", b, want[i], got)
		}
	}
}
