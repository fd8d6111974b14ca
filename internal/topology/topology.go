// Package topology resolves the set of connected displays for a single
// snapping action.
package topology

import (
	"log/slog"

	"github.com/1broseidon/winsnap/internal/geometry"
	"github.com/1broseidon/winsnap/internal/platform"
)

// DisplaySource is the part of a platform backend the resolver needs.
type DisplaySource interface {
	Displays() ([]platform.Display, error)
}

// Topology is an ordered snapshot of displays. It always holds at least one
// display.
type Topology struct {
	displays []platform.Display
}

// Resolver enumerates displays on demand. Results are never cached because
// displays can be attached, detached or rearranged at any time.
type Resolver struct {
	source DisplaySource
	logger *slog.Logger
}

// NewResolver creates a resolver reading from source.
func NewResolver(source DisplaySource, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{source: source, logger: logger}
}

// Enumerate returns the displays in the order the window system reports them.
// When the backend fails or reports nothing, a single zero-sized primary
// display stands in so callers never have to handle an empty topology.
func (r *Resolver) Enumerate() Topology {
	displays, err := r.source.Displays()
	if err != nil {
		r.logger.Warn("display enumeration failed, using fallback display", "error", err)
		return Fallback()
	}
	if len(displays) == 0 {
		r.logger.Warn("no displays reported, using fallback display")
		return Fallback()
	}
	return New(displays)
}

// New builds a topology from displays. An empty slice yields Fallback.
func New(displays []platform.Display) Topology {
	if len(displays) == 0 {
		return Fallback()
	}
	out := make([]platform.Display, len(displays))
	copy(out, displays)
	return Topology{displays: out}
}

// Fallback is the single synthetic display used when none can be enumerated.
func Fallback() Topology {
	zero := geometry.NewFrame(0, 0, 0, 0, geometry.Native)
	return Topology{displays: []platform.Display{{
		Name:    "fallback",
		Primary: true,
		Bounds:  zero,
		Usable:  zero,
	}}}
}

// Displays returns a copy of the ordered display list.
func (t Topology) Displays() []platform.Display {
	out := make([]platform.Display, len(t.displays))
	copy(out, t.displays)
	return out
}

// Len returns the number of displays.
func (t Topology) Len() int {
	return len(t.displays)
}

// Primary returns the display flagged primary, or the first display when
// none is flagged.
func (t Topology) Primary() platform.Display {
	if len(t.displays) == 0 {
		return Fallback().displays[0]
	}
	for _, d := range t.displays {
		if d.Primary {
			return d
		}
	}
	return t.displays[0]
}

// PrimaryHeight is the height that anchors conversions between conventions.
func (t Topology) PrimaryHeight() float64 {
	return t.Primary().Bounds.Height
}

// IndexOf returns the position of the display with d's ID, or -1.
func (t Topology) IndexOf(d platform.Display) int {
	for i, candidate := range t.displays {
		if candidate.ID == d.ID && candidate.Name == d.Name {
			return i
		}
	}
	return -1
}

// Next returns the display after current, wrapping from last to first. It
// reports false when there is only one display, in which case there is
// nowhere to go. A current display that is no longer connected cycles to the
// first display.
func (t Topology) Next(current platform.Display) (platform.Display, bool) {
	n := len(t.displays)
	if n <= 1 {
		return platform.Display{}, false
	}
	i := t.IndexOf(current)
	if i < 0 {
		return t.displays[0], true
	}
	return t.displays[(i+1)%n], true
}
