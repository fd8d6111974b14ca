//go:build linux

package platform

import (
	"testing"

	"github.com/1broseidon/winsnap/internal/geometry"
	"github.com/1broseidon/winsnap/internal/x11"
)

func TestDisplaysFromMonitorsLiftsToNative(t *testing.T) {
	monitors := []x11.Monitor{
		{ID: 0, Name: "HDMI-1", X: 0, Y: 0, Width: 2560, Height: 1440},
		{ID: 1, Name: "eDP-1", Primary: true, X: 2560, Y: 360, Width: 1920, Height: 1080},
	}
	workAreas := []x11.Area{
		{X: 0, Y: 0, Width: 2560, Height: 1440},
		{X: 2560, Y: 392, Width: 1920, Height: 1048},
	}

	displays := displaysFromMonitors(monitors, workAreas)
	if len(displays) != 2 {
		t.Fatalf("expected 2 displays, got %d", len(displays))
	}
	if displays[0].Primary || !displays[1].Primary {
		t.Fatalf("expected eDP-1 to be primary, got %+v", displays)
	}
	if displays[0].Index != 0 || displays[1].Index != 1 {
		t.Fatalf("expected indexes to follow CRTC order, got %+v", displays)
	}

	// Converting back must reproduce the X11 root coordinates.
	primaryHeight := displays[1].Bounds.Height
	for i, d := range displays {
		got := d.Bounds.Convert(geometry.Automation, primaryHeight)
		want := frameFromArea(monitors[i].Bounds(), geometry.Automation)
		if !got.Equal(want, geometry.Tolerance) {
			t.Fatalf("display %d: expected %s, got %s", i, want, got)
		}
		usable := d.Usable.Convert(geometry.Automation, primaryHeight)
		wantUsable := frameFromArea(workAreas[i], geometry.Automation)
		if !usable.Equal(wantUsable, geometry.Tolerance) {
			t.Fatalf("display %d: expected usable %s, got %s", i, wantUsable, usable)
		}
	}
}

func TestDisplaysFromMonitorsDefaultsPrimaryToFirst(t *testing.T) {
	monitors := []x11.Monitor{
		{ID: 3, Name: "DP-1", X: 0, Y: 0, Width: 1920, Height: 1080},
		{ID: 4, Name: "DP-2", X: 1920, Y: 0, Width: 1920, Height: 1080},
	}
	displays := displaysFromMonitors(monitors, nil)
	if !displays[0].Primary || displays[1].Primary {
		t.Fatalf("expected first monitor to be primary, got %+v", displays)
	}
	if displays[1].Usable != displays[1].Bounds {
		t.Fatalf("expected usable to default to bounds, got %s", displays[1].Usable)
	}
}
