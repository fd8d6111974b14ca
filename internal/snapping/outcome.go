package snapping

import (
	"fmt"
	"time"

	"github.com/1broseidon/winsnap/internal/geometry"
	"github.com/1broseidon/winsnap/internal/placement"
)

// Status is the result class of an action.
type Status int

const (
	// StatusApplied means the frame was written to the window.
	StatusApplied Status = iota
	// StatusSkipped means there was nothing to do. Skips are not errors.
	StatusSkipped
	// StatusFailed means the action ran but the window system rejected it,
	// or the action could not run at all.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Skip and failure reasons.
const (
	ReasonNoTarget      = "no focused window"
	ReasonSingleDisplay = "only one display"
	ReasonEmptyUsable   = "display has no usable area"
	ReasonRejected      = "window geometry rejected"
	ReasonInvalidAction = "invalid action"
	ReasonPanic         = "internal error"
)

// Outcome describes one executed action.
type Outcome struct {
	Action   placement.Action
	Status   Status
	Reason   string
	Display  string
	Frame    geometry.Frame
	Err      error
	At       time.Time
	Duration time.Duration
}

func (o Outcome) String() string {
	s := fmt.Sprintf("%s %s", o.Action, o.Status)
	if o.Reason != "" {
		s += ": " + o.Reason
	}
	if o.Err != nil {
		s += fmt.Sprintf(" (%v)", o.Err)
	}
	return s
}

// Observer is told about every completed action. It is called synchronously
// while the action lock is held, so implementations should hand off slow work.
type Observer interface {
	ActionCompleted(Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Outcome)

// ActionCompleted calls f.
func (f ObserverFunc) ActionCompleted(o Outcome) { f(o) }

// Stats counts outcomes since start.
type Stats struct {
	Applied int
	Skipped int
	Failed  int
}
