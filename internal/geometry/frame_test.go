package geometry

import (
	"testing"
)

func TestNewFrameClampsNegativeSize(t *testing.T) {
	f := NewFrame(10, 20, -5, -1, Native)
	if f.Width != 0 || f.Height != 0 {
		t.Fatalf("expected clamped size 0x0, got %vx%v", f.Width, f.Height)
	}
	if !f.IsEmpty() {
		t.Fatal("expected clamped frame to be empty")
	}
}

func TestConvertFlipsAroundPrimaryHeight(t *testing.T) {
	tests := []struct {
		name          string
		in            Frame
		primaryHeight float64
		wantY         float64
	}{
		{
			name:          "primary usable below menu bar",
			in:            NewFrame(0, 0, 1920, 1055, Native),
			primaryHeight: 1080,
			wantY:         25,
		},
		{
			name:          "display stacked above primary",
			in:            NewFrame(0, 1080, 1920, 1080, Native),
			primaryHeight: 1080,
			wantY:         -1080,
		},
		{
			name:          "display to the right with different height",
			in:            NewFrame(1920, 0, 2560, 1440, Native),
			primaryHeight: 1080,
			wantY:         -360,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Convert(Automation, tt.primaryHeight)
			if got.Convention != Automation {
				t.Fatalf("expected automation convention, got %s", got.Convention)
			}
			if got.Y != tt.wantY {
				t.Fatalf("expected y=%v, got %v", tt.wantY, got.Y)
			}
			if got.X != tt.in.X || got.Width != tt.in.Width || got.Height != tt.in.Height {
				t.Fatalf("expected x/size unchanged, got %s from %s", got, tt.in)
			}
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	frames := []Frame{
		NewFrame(0, 0, 1920, 1080, Native),
		NewFrame(-1280, 300, 1280, 1024, Native),
		NewFrame(411.4285, 231.4285, 1097.1428, 617.1428, Automation),
	}
	for _, f := range frames {
		other := Automation
		if f.Convention == Automation {
			other = Native
		}
		back := f.Convert(other, 1080).Convert(f.Convention, 1080)
		if !back.Equal(f, Tolerance) {
			t.Fatalf("expected round trip to return %s, got %s", f, back)
		}
	}
}

func TestConvertSameConventionIsIdentity(t *testing.T) {
	f := NewFrame(5, 6, 7, 8, Automation)
	if got := f.Convert(Automation, 1000); got != f {
		t.Fatalf("expected identity, got %s", got)
	}
}

func TestContainsIsHalfOpen(t *testing.T) {
	f := NewFrame(0, 0, 100, 50, Automation)

	tests := []struct {
		p    Point
		want bool
	}{
		{Point{0, 0, Automation}, true},
		{Point{99.5, 49.5, Automation}, true},
		{Point{100, 10, Automation}, false},
		{Point{10, 50, Automation}, false},
		{Point{-0.1, 10, Automation}, false},
		{Point{10, 10, Native}, false},
	}
	for _, tt := range tests {
		if got := f.Contains(tt.p); got != tt.want {
			t.Fatalf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestEqualRejectsConventionMismatch(t *testing.T) {
	a := NewFrame(1, 2, 3, 4, Native)
	b := NewFrame(1, 2, 3, 4, Automation)
	if a.Equal(b, Tolerance) {
		t.Fatal("expected frames in different conventions to differ")
	}
}
