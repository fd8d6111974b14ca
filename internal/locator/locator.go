// Package locator finds the focused window and the display it lives on.
package locator

import (
	"errors"
	"log/slog"

	"github.com/1broseidon/winsnap/internal/geometry"
	"github.com/1broseidon/winsnap/internal/platform"
	"github.com/1broseidon/winsnap/internal/topology"
)

// FallbackPolicy selects the display used when no display contains the window.
type FallbackPolicy int

const (
	// FallbackPrimary resolves uncontained windows to the primary display.
	FallbackPrimary FallbackPolicy = iota
)

// ContainmentFallback is the policy applied by Locate.
const ContainmentFallback = FallbackPrimary

// WindowSource is the part of a platform backend the locator needs.
type WindowSource interface {
	FocusedWindow() (platform.WindowHandle, error)
	WindowFrame(h platform.WindowHandle) (geometry.Frame, error)
}

// Target is the focused window together with the display it was resolved to.
// Frame is in the automation convention.
type Target struct {
	Window   platform.WindowHandle
	Frame    geometry.Frame
	Display  platform.Display
	Topology topology.Topology
	// Contained is false when the display came from ContainmentFallback.
	Contained bool
}

// Locator resolves the current focus target.
type Locator struct {
	windows  WindowSource
	resolver *topology.Resolver
	logger   *slog.Logger
}

// New creates a locator.
func New(windows WindowSource, resolver *topology.Resolver, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{windows: windows, resolver: resolver, logger: logger}
}

// Locate returns the focused window and its display. It reports false, never
// an error, when there is nothing to act on: no frontmost application, no
// focused window, missing permission, or a handle that cannot be read.
func (l *Locator) Locate() (Target, bool) {
	h, err := l.windows.FocusedWindow()
	if err != nil {
		if !errors.Is(err, platform.ErrNoFocusedWindow) {
			l.logger.Debug("focused window lookup failed", "error", err)
		}
		return Target{}, false
	}
	if !h.Valid() {
		return Target{}, false
	}

	topo := l.resolver.Enumerate()
	primaryHeight := topo.PrimaryHeight()

	frame, err := l.windows.WindowFrame(h)
	if err != nil {
		l.logger.Debug("window frame unreadable", "window", h, "error", err)
		return Target{}, false
	}
	frame = frame.Convert(geometry.Automation, primaryHeight)

	display, contained := Resolve(topo, frame.Origin())
	return Target{
		Window:    h,
		Frame:     frame,
		Display:   display,
		Topology:  topo,
		Contained: contained,
	}, true
}

// Resolve returns the first display, in enumeration order, whose full region
// contains origin. Regions are compared in the origin's convention. When none
// contains it, ContainmentFallback decides and contained is false.
func Resolve(topo topology.Topology, origin geometry.Point) (display platform.Display, contained bool) {
	primaryHeight := topo.PrimaryHeight()
	for _, d := range topo.Displays() {
		if d.Bounds.Convert(origin.Convention, primaryHeight).Contains(origin) {
			return d, true
		}
	}

	// ContainmentFallback is FallbackPrimary; no other policy exists yet.
	return topo.Primary(), false
}
