package platform

import (
	"errors"
	"fmt"

	"github.com/1broseidon/winsnap/internal/geometry"
)

var (
	// ErrNoFocusedWindow is returned when no application or no window holds focus.
	ErrNoFocusedWindow = errors.New("no focused window")
	// ErrPermissionDenied is returned when the process may not observe or
	// control other applications' windows.
	ErrPermissionDenied = errors.New("window control permission denied")
	// ErrInvalidHandle is returned when a window handle does not refer to a window.
	ErrInvalidHandle = errors.New("invalid window handle")
)

// WindowHandle is an opaque reference to a top-level window. It is only
// meaningful to the backend that produced it and only for the duration of a
// single action.
type WindowHandle struct {
	id uint64
}

// NewWindowHandle wraps a backend-specific window reference.
func NewWindowHandle(id uint64) WindowHandle {
	return WindowHandle{id: id}
}

// ID returns the backend-specific window reference.
func (h WindowHandle) ID() uint64 {
	return h.id
}

// Valid reports whether the handle refers to a window at all.
func (h WindowHandle) Valid() bool {
	return h.id != 0
}

func (h WindowHandle) String() string {
	return fmt.Sprintf("0x%x", h.id)
}

// Display describes a physical display. Bounds is the full region and Usable
// excludes reserved chrome (menu bars, docks, panels). Both are in the native
// convention, and Usable is always contained in Bounds.
type Display struct {
	ID      int
	Name    string
	Index   int
	Primary bool
	Bounds  geometry.Frame
	Usable  geometry.Frame
}

// Options configures how a backend reaches the window system. Display and
// XAuthority only apply to X11.
type Options struct {
	Display    string
	XAuthority string
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	// Displays lists displays in the order the window system reports them.
	Displays() ([]Display, error)
	// FocusedWindow returns the window that currently holds keyboard focus.
	FocusedWindow() (WindowHandle, error)
	// WindowFrame reads a window's outer frame. Backends may report either
	// convention; the frame is tagged accordingly.
	WindowFrame(h WindowHandle) (geometry.Frame, error)
	// SetPosition moves a window's origin (automation convention).
	SetPosition(h WindowHandle, p geometry.Point) error
	// SetSize resizes a window without moving its origin.
	SetSize(h WindowHandle, s geometry.Size) error
	// Trusted reports whether the process may control other windows. When
	// prompt is set the backend may ask the user to grant access.
	Trusted(prompt bool) bool
	// Close releases the backend's connection to the window system.
	Close()
}

// ClipUsable intersects a usable region with its display bounds so the result
// never extends past the display. Both frames must share a convention.
func ClipUsable(bounds, usable geometry.Frame) geometry.Frame {
	if usable.Convention != bounds.Convention {
		return bounds
	}
	x1 := maxf(bounds.X, usable.X)
	y1 := maxf(bounds.Y, usable.Y)
	x2 := minf(bounds.X+bounds.Width, usable.X+usable.Width)
	y2 := minf(bounds.Y+bounds.Height, usable.Y+usable.Height)
	if x2 <= x1 || y2 <= y1 {
		return geometry.NewFrame(bounds.X, bounds.Y, 0, 0, bounds.Convention)
	}
	return geometry.NewFrame(x1, y1, x2-x1, y2-y1, bounds.Convention)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
