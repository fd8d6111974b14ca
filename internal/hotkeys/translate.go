package hotkeys

import (
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// macOS virtual key codes (Carbon kVK_*).
const (
	macKeyR     = 0x0F
	macKeyL     = 0x25
	macKeyLeft  = 0x7B
	macKeyRight = 0x7C
)

// CGEventFlags masks.
const (
	macFlagShift     = 0x20000
	macFlagControl   = 0x40000
	macFlagAlternate = 0x80000
	macFlagCommand   = 0x100000
)

// KeyFromMacKeyCode maps a virtual key code to a Key.
func KeyFromMacKeyCode(code uint16) Key {
	switch code {
	case macKeyLeft:
		return KeyLeft
	case macKeyRight:
		return KeyRight
	case macKeyL:
		return KeyL
	case macKeyR:
		return KeyR
	default:
		return KeyNone
	}
}

// ModifiersFromMacFlags extracts the significant modifiers from CGEventFlags.
// Arrow keys carry the numeric pad and fn bits, which are dropped here.
func ModifiersFromMacFlags(flags uint64) Modifiers {
	var m Modifiers
	if flags&macFlagCommand != 0 {
		m |= Cmd
	}
	if flags&macFlagAlternate != 0 {
		m |= Opt
	}
	if flags&macFlagControl != 0 {
		m |= Ctrl
	}
	if flags&macFlagShift != 0 {
		m |= Shift
	}
	return m
}

// KeyFromKeysym maps an X11 keysym name to a Key.
func KeyFromKeysym(sym string) Key {
	switch strings.ToLower(sym) {
	case "left":
		return KeyLeft
	case "right":
		return KeyRight
	case "l":
		return KeyL
	case "r":
		return KeyR
	default:
		return KeyNone
	}
}

// ModifiersFromX11State extracts the significant modifiers from a key event
// state. Cmd is Super (Mod4) and Opt is Alt (Mod1); lock modifiers are dropped.
func ModifiersFromX11State(state uint16) Modifiers {
	var m Modifiers
	if state&xproto.ModMask4 != 0 {
		m |= Cmd
	}
	if state&xproto.ModMask1 != 0 {
		m |= Opt
	}
	if state&xproto.ModMaskControl != 0 {
		m |= Ctrl
	}
	if state&xproto.ModMaskShift != 0 {
		m |= Shift
	}
	return m
}

// X11Sequence renders a binding as an xgbutil keybind string, for example
// "Control-Mod4-Mod1-Right".
func X11Sequence(b Binding) string {
	var parts []string
	if b.Mods&Ctrl != 0 {
		parts = append(parts, "Control")
	}
	if b.Mods&Shift != 0 {
		parts = append(parts, "Shift")
	}
	if b.Mods&Cmd != 0 {
		parts = append(parts, "Mod4")
	}
	if b.Mods&Opt != 0 {
		parts = append(parts, "Mod1")
	}
	switch b.Key {
	case KeyLeft:
		parts = append(parts, "Left")
	case KeyRight:
		parts = append(parts, "Right")
	case KeyL:
		parts = append(parts, "l")
	case KeyR:
		parts = append(parts, "r")
	}
	return strings.Join(parts, "-")
}
