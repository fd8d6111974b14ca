// Package geometry holds the rectangle types shared by the window snapping
// pipeline and the conversion between the two vertical-axis conventions
// reported by window systems.
package geometry

import (
	"fmt"
	"math"
)

// Convention identifies which corner of the desktop a coordinate is measured from.
type Convention int

const (
	// Native measures Y upward from the bottom-left corner of the primary display.
	Native Convention = iota
	// Automation measures Y downward from the top-left corner of the primary display.
	Automation
)

func (c Convention) String() string {
	switch c {
	case Native:
		return "native"
	case Automation:
		return "automation"
	default:
		return fmt.Sprintf("convention(%d)", int(c))
	}
}

// Tolerance is the slack used when comparing frames built from float arithmetic.
const Tolerance = 1e-6

// Point is a position tagged with its convention.
type Point struct {
	X          float64
	Y          float64
	Convention Convention
}

// Size is a non-negative width and height. Sizes do not depend on convention.
type Size struct {
	Width  float64
	Height float64
}

// Frame is an axis-aligned rectangle tagged with the convention its origin is
// expressed in.
type Frame struct {
	X          float64
	Y          float64
	Width      float64
	Height     float64
	Convention Convention
}

// NewFrame builds a frame, clamping negative sizes to zero.
func NewFrame(x, y, width, height float64, c Convention) Frame {
	return Frame{
		X:          x,
		Y:          y,
		Width:      math.Max(width, 0),
		Height:     math.Max(height, 0),
		Convention: c,
	}
}

// Origin returns the frame's origin corner.
func (f Frame) Origin() Point {
	return Point{X: f.X, Y: f.Y, Convention: f.Convention}
}

// Size returns the frame's size.
func (f Frame) Size() Size {
	return Size{Width: f.Width, Height: f.Height}
}

// IsEmpty reports whether the frame has no area.
func (f Frame) IsEmpty() bool {
	return f.Width <= 0 || f.Height <= 0
}

// Convert re-expresses f in the target convention. The flip is anchored to
// the full height of the primary display:
//
//	flipped_y = primaryHeight - (y + height)
//
// The flip is its own inverse, so converting twice returns the original frame.
func (f Frame) Convert(to Convention, primaryHeight float64) Frame {
	if f.Convention == to {
		return f
	}
	f.Y = primaryHeight - (f.Y + f.Height)
	f.Convention = to
	return f
}

// Contains reports whether p lies inside f using half-open bounds
// [x, x+w) × [y, y+h). A point in a different convention is never contained.
func (f Frame) Contains(p Point) bool {
	if p.Convention != f.Convention {
		return false
	}
	return p.X >= f.X && p.X < f.X+f.Width &&
		p.Y >= f.Y && p.Y < f.Y+f.Height
}

// Equal reports whether two frames share a convention and agree within tol.
func (f Frame) Equal(other Frame, tol float64) bool {
	if f.Convention != other.Convention {
		return false
	}
	return math.Abs(f.X-other.X) <= tol &&
		math.Abs(f.Y-other.Y) <= tol &&
		math.Abs(f.Width-other.Width) <= tol &&
		math.Abs(f.Height-other.Height) <= tol
}

func (f Frame) String() string {
	return fmt.Sprintf("{x=%.2f y=%.2f w=%.2f h=%.2f %s}", f.X, f.Y, f.Width, f.Height, f.Convention)
}
