// Package placement computes target window frames for snap actions.
package placement

import (
	"errors"
	"fmt"
	"math"

	"github.com/1broseidon/winsnap/internal/geometry"
	"github.com/1broseidon/winsnap/internal/platform"
)

// DefaultResetScale divides the usable region to size a reset window.
const DefaultResetScale = 1.75

// ErrNotPlacement is returned by ComputeTargetFrame for actions that do not
// derive a frame from the usable region.
var ErrNotPlacement = errors.New("action does not compute a placement frame")

// Engine computes target frames. The zero value uses DefaultResetScale.
type Engine struct {
	ResetScale float64
}

// NewEngine creates an engine with the given reset scale; values at or below
// 1 fall back to DefaultResetScale.
func NewEngine(resetScale float64) Engine {
	return Engine{ResetScale: resetScale}
}

func (e Engine) resetScale() float64 {
	if e.ResetScale <= 1 {
		return DefaultResetScale
	}
	return e.ResetScale
}

// ComputeTargetFrame returns the automation-convention frame a window should
// occupy for action within usable. A native usable region is flipped first
// using primaryHeight. Left and right always meet and together cover the usable
// width exactly; for a whole-pixel width the split lands on a whole pixel with
// the odd pixel going to the right half. An empty usable region yields an empty
// frame at its origin.
func (e Engine) ComputeTargetFrame(action Action, usable geometry.Frame, primaryHeight float64) (geometry.Frame, error) {
	u := usable.Convert(geometry.Automation, primaryHeight)

	switch action {
	case Maximize:
		return geometry.NewFrame(u.X, u.Y, u.Width, u.Height, geometry.Automation), nil
	case Left:
		return geometry.NewFrame(u.X, u.Y, leftWidth(u.Width), u.Height, geometry.Automation), nil
	case Right:
		lw := leftWidth(u.Width)
		return geometry.NewFrame(u.X+lw, u.Y, u.Width-lw, u.Height, geometry.Automation), nil
	case Reset:
		s := e.resetScale()
		w := u.Width / s
		h := u.Height / s
		return geometry.NewFrame(u.X+(u.Width-w)/2, u.Y+(u.Height-h)/2, w, h, geometry.Automation), nil
	default:
		return geometry.Frame{}, fmt.Errorf("%s: %w", action, ErrNotPlacement)
	}
}

// leftWidth is the width of the left half of a region w wide.
func leftWidth(w float64) float64 {
	if w == math.Trunc(w) {
		return math.Floor(w / 2)
	}
	return w / 2
}

// ComputeNextDisplayFrame places a window of currentSize at the top-left
// corner of target's usable region, in the automation convention. The size is
// carried over unchanged.
func (e Engine) ComputeNextDisplayFrame(currentSize geometry.Size, target platform.Display, primaryHeight float64) geometry.Frame {
	u := target.Usable.Convert(geometry.Automation, primaryHeight)
	return geometry.NewFrame(u.X, u.Y, currentSize.Width, currentSize.Height, geometry.Automation)
}
