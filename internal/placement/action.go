package placement

import (
	"fmt"
	"strings"
)

// Action is a snap operation applied to the focused window.
type Action int

const (
	Left Action = iota + 1
	Right
	Maximize
	Reset
	NextDisplay
)

var actionNames = map[Action]string{
	Left:        "left",
	Right:       "right",
	Maximize:    "maximize",
	Reset:       "reset",
	NextDisplay: "next-display",
}

// Actions lists every action in a stable order.
func Actions() []Action {
	return []Action{Left, Right, Maximize, Reset, NextDisplay}
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	_, ok := actionNames[a]
	return ok
}

// ParseAction resolves an action name. Underscores are accepted in place of
// dashes so "next_display" works in tool calls.
func ParseAction(s string) (Action, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q (expected one of: %s)", s, strings.Join(ActionNames(), ", "))
}

// ActionNames returns the names of all actions.
func ActionNames() []string {
	names := make([]string, 0, len(actionNames))
	for _, a := range Actions() {
		names = append(names, a.String())
	}
	return names
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid action %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
