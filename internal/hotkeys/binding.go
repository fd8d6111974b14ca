// Package hotkeys recognises the global snapping chords and dispatches them.
package hotkeys

import (
	"strings"

	"github.com/1broseidon/winsnap/internal/placement"
)

// Modifiers is a set of the modifier keys that take part in matching.
type Modifiers uint8

const (
	Cmd Modifiers = 1 << iota
	Opt
	Ctrl
	Shift
)

// Significant is the mask applied to event modifiers before comparison.
// Caps lock, num lock, numeric pad and fn state never take part.
const Significant = Cmd | Opt | Ctrl | Shift

func (m Modifiers) String() string {
	var parts []string
	if m&Ctrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if m&Opt != 0 {
		parts = append(parts, "Opt")
	}
	if m&Shift != 0 {
		parts = append(parts, "Shift")
	}
	if m&Cmd != 0 {
		parts = append(parts, "Cmd")
	}
	return strings.Join(parts, "+")
}

// Key is a physical key that can appear in a binding.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyL
	KeyR
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyL:
		return "L"
	case KeyR:
		return "R"
	default:
		return "None"
	}
}

// EventType distinguishes key transitions.
type EventType int

const (
	KeyDown EventType = iota
	KeyUp
	FlagsChanged
)

// Event is a keyboard event translated from the platform's representation.
type Event struct {
	Type EventType
	Mods Modifiers
	Key  Key
}

// Binding maps one exact chord to an action.
type Binding struct {
	Mods   Modifiers
	Key    Key
	Action placement.Action
}

func (b Binding) String() string {
	if b.Mods == 0 {
		return b.Key.String()
	}
	return b.Mods.String() + "+" + b.Key.String()
}

// Table is an immutable set of bindings.
type Table struct {
	bindings []Binding
}

// NewTable copies bindings into a table.
func NewTable(bindings []Binding) Table {
	out := make([]Binding, len(bindings))
	copy(out, bindings)
	return Table{bindings: out}
}

// DefaultTable returns the fixed snapping chords.
func DefaultTable() Table {
	return NewTable([]Binding{
		{Mods: Cmd | Opt, Key: KeyLeft, Action: placement.Left},
		{Mods: Cmd | Opt, Key: KeyRight, Action: placement.Right},
		{Mods: Cmd | Opt, Key: KeyL, Action: placement.Maximize},
		{Mods: Cmd | Opt, Key: KeyR, Action: placement.Reset},
		{Mods: Ctrl | Opt | Cmd, Key: KeyRight, Action: placement.NextDisplay},
	})
}

// Bindings returns a copy of the table's bindings.
func (t Table) Bindings() []Binding {
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Match returns the action bound to ev. Only key-down events match, and the
// significant modifiers must equal the binding's exactly: Cmd+Opt+Shift+L
// does not trigger Cmd+Opt+L.
func (t Table) Match(ev Event) (placement.Action, bool) {
	if ev.Type != KeyDown || ev.Key == KeyNone {
		return 0, false
	}
	mods := ev.Mods & Significant
	for _, b := range t.bindings {
		if b.Key == ev.Key && b.Mods == mods {
			return b.Action, true
		}
	}
	return 0, false
}
