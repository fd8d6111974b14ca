package placement

import (
	"errors"
	"math"
	"testing"

	"github.com/1broseidon/winsnap/internal/geometry"
	"github.com/1broseidon/winsnap/internal/platform"
)

const primaryHeight = 1080

func fullHD() geometry.Frame {
	return geometry.NewFrame(0, 0, 1920, 1080, geometry.Native)
}

func mustFrame(t *testing.T, e Engine, a Action, usable geometry.Frame) geometry.Frame {
	t.Helper()
	f, err := e.ComputeTargetFrame(a, usable, primaryHeight)
	if err != nil {
		t.Fatalf("ComputeTargetFrame(%s) failed: %v", a, err)
	}
	if f.Convention != geometry.Automation {
		t.Fatalf("expected automation frame, got %s", f.Convention)
	}
	return f
}

func TestComputeTargetFrameFullHD(t *testing.T) {
	e := Engine{}
	tests := []struct {
		action Action
		want   geometry.Frame
	}{
		{Maximize, geometry.NewFrame(0, 0, 1920, 1080, geometry.Automation)},
		{Left, geometry.NewFrame(0, 0, 960, 1080, geometry.Automation)},
		{Right, geometry.NewFrame(960, 0, 960, 1080, geometry.Automation)},
		{Reset, geometry.NewFrame(411.428571, 231.428571, 1097.142857, 617.142857, geometry.Automation)},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			got := mustFrame(t, e, tt.action, fullHD())
			if !got.Equal(tt.want, 1e-5) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestComputeTargetFrameFlipsMenuBarOffset(t *testing.T) {
	// 25pt menu bar at the top: native usable starts at y=0 with height 1055.
	usable := geometry.NewFrame(0, 0, 1920, 1055, geometry.Native)
	got := mustFrame(t, Engine{}, Maximize, usable)
	want := geometry.NewFrame(0, 25, 1920, 1055, geometry.Automation)
	if !got.Equal(want, geometry.Tolerance) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestMaximizeEqualsUsableRegion(t *testing.T) {
	usable := geometry.NewFrame(1920, -360, 2560, 1400, geometry.Native)
	got := mustFrame(t, Engine{}, Maximize, usable)
	want := usable.Convert(geometry.Automation, primaryHeight)
	if !got.Equal(want, geometry.Tolerance) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestHalvesCoverOddWidthExactly(t *testing.T) {
	usable := geometry.NewFrame(100, 0, 1367, 700, geometry.Native)
	left := mustFrame(t, Engine{}, Left, usable)
	right := mustFrame(t, Engine{}, Right, usable)

	if left.X != usable.X {
		t.Fatalf("expected left to start at %v, got %v", usable.X, left.X)
	}
	if left.X+left.Width != right.X {
		t.Fatalf("expected halves to meet, left ends %v right starts %v", left.X+left.Width, right.X)
	}
	if right.X+right.Width != usable.X+usable.Width {
		t.Fatalf("expected right to end at %v, got %v", usable.X+usable.Width, right.X+right.Width)
	}
	if left.Height != usable.Height || right.Height != usable.Height {
		t.Fatalf("expected full height, got %v and %v", left.Height, right.Height)
	}
	for _, v := range []float64{left.X, left.Width, right.X, right.Width} {
		if v != math.Trunc(v) {
			t.Fatalf("expected whole pixels, got left %s right %s", left, right)
		}
	}
	if left.Width != 683 || right.Width != 684 {
		t.Fatalf("expected 683/684 split, got %v/%v", left.Width, right.Width)
	}

	// What an integer-pixel backend writes: rounding each value must not
	// overlap the halves or spill past the usable region.
	lEnd := math.Round(left.X) + math.Round(left.Width)
	rStart := math.Round(right.X)
	rEnd := rStart + math.Round(right.Width)
	if lEnd != rStart || rEnd != usable.X+usable.Width {
		t.Fatalf("expected pixel halves [%v,%v) [%v,%v) to tile [%v,%v)",
			usable.X, lEnd, rStart, rEnd, usable.X, usable.X+usable.Width)
	}
}

func TestHalvesSplitFractionalWidthEvenly(t *testing.T) {
	usable := geometry.NewFrame(0, 0, 1366.5, 768, geometry.Native)
	left := mustFrame(t, Engine{}, Left, usable)
	right := mustFrame(t, Engine{}, Right, usable)

	if left.Width != right.Width {
		t.Fatalf("expected equal halves, got %v and %v", left.Width, right.Width)
	}
	if right.X+right.Width != usable.Width {
		t.Fatalf("expected right to end at %v, got %v", usable.Width, right.X+right.Width)
	}
}

func TestResetIsCentered(t *testing.T) {
	usable := geometry.NewFrame(-1280, 200, 1280, 1024, geometry.Native)
	u := usable.Convert(geometry.Automation, primaryHeight)
	got := mustFrame(t, Engine{}, Reset, usable)

	left := got.X - u.X
	right := (u.X + u.Width) - (got.X + got.Width)
	top := got.Y - u.Y
	bottom := (u.Y + u.Height) - (got.Y + got.Height)
	if diff := left - right; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected horizontal margins equal, got %v and %v", left, right)
	}
	if diff := top - bottom; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected vertical margins equal, got %v and %v", top, bottom)
	}
}

func TestResetScaleOverride(t *testing.T) {
	got := mustFrame(t, NewEngine(2), Reset, fullHD())
	want := geometry.NewFrame(480, 270, 960, 540, geometry.Automation)
	if !got.Equal(want, geometry.Tolerance) {
		t.Fatalf("expected %s, got %s", want, got)
	}

	// Scales that would not shrink the window fall back to the default.
	got = mustFrame(t, NewEngine(0.5), Reset, fullHD())
	if got.Width <= 1097 || got.Width >= 1098 {
		t.Fatalf("expected default scale width, got %v", got.Width)
	}
}

func TestZeroUsableRegionYieldsZeroFrame(t *testing.T) {
	zero := geometry.NewFrame(0, 0, 0, 0, geometry.Native)
	for _, a := range []Action{Maximize, Left, Right, Reset} {
		got, err := Engine{}.ComputeTargetFrame(a, zero, 0)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", a, err)
		}
		if !got.IsEmpty() {
			t.Fatalf("%s: expected empty frame, got %s", a, got)
		}
	}
}

func TestComputeTargetFrameRejectsNextDisplay(t *testing.T) {
	_, err := Engine{}.ComputeTargetFrame(NextDisplay, fullHD(), primaryHeight)
	if !errors.Is(err, ErrNotPlacement) {
		t.Fatalf("expected ErrNotPlacement, got %v", err)
	}
}

func TestComputeNextDisplayFrame(t *testing.T) {
	// Destination to the right, taller than the primary, with a 40pt dock at
	// its bottom.
	target := platform.Display{
		Name:   "B",
		Bounds: geometry.NewFrame(1920, 0, 2560, 1440, geometry.Native),
		Usable: geometry.NewFrame(1920, 40, 2560, 1400, geometry.Native),
	}
	size := geometry.Size{Width: 800, Height: 600}

	got := Engine{}.ComputeNextDisplayFrame(size, target, primaryHeight)
	want := geometry.NewFrame(1920, -360, 800, 600, geometry.Automation)
	if !got.Equal(want, geometry.Tolerance) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
