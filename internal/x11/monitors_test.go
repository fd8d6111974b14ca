package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"
)

func TestApplyDockStrutsOnlyAffectsOverlappedMonitor(t *testing.T) {
	left := Monitor{ID: 0, X: 0, Y: 0, Width: 1920, Height: 1080}
	right := Monitor{ID: 1, X: 1920, Y: 0, Width: 2560, Height: 1440}
	rootW, rootH := 4480, 1440

	// A 32px top panel spanning only the left monitor.
	struts := []ewmh.WmStrutPartial{{
		Top:       32,
		TopStartX: 0,
		TopEndX:   1919,
	}}

	gotLeft := applyDockStruts(left, rootW, rootH, struts)
	if gotLeft != (Area{X: 0, Y: 32, Width: 1920, Height: 1048}) {
		t.Fatalf("unexpected left work area: %+v", gotLeft)
	}

	gotRight := applyDockStruts(right, rootW, rootH, struts)
	if gotRight != right.Bounds() {
		t.Fatalf("expected right monitor untouched, got %+v", gotRight)
	}
}

func TestApplyDockStrutsBottomOfTallerRoot(t *testing.T) {
	// The bottom strut is measured from the root bottom, which only meets the
	// taller monitor.
	short := Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}
	tall := Monitor{X: 1920, Y: 0, Width: 2560, Height: 1440}
	struts := []ewmh.WmStrutPartial{fullSpanStrut(&ewmh.WmStrut{Bottom: 48}, 4480, 1440)}

	if got := applyDockStruts(short, 4480, 1440, struts); got != short.Bounds() {
		t.Fatalf("expected short monitor untouched, got %+v", got)
	}
	if got := applyDockStruts(tall, 4480, 1440, struts); got.Height != 1392 {
		t.Fatalf("expected tall monitor height 1392, got %+v", got)
	}
}

func TestClipToWorkArea(t *testing.T) {
	m := Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}

	got := clipToWorkArea(m, Area{X: 0, Y: 27, Width: 4480, Height: 1053})
	if got != (Area{X: 0, Y: 27, Width: 1920, Height: 1053}) {
		t.Fatalf("unexpected clipped area: %+v", got)
	}

	got = clipToWorkArea(m, Area{X: 5000, Y: 0, Width: 10, Height: 10})
	if got != m.Bounds() {
		t.Fatalf("expected bounds for disjoint work area, got %+v", got)
	}
}
