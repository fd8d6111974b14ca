package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display. Coordinates are X11 root window
// coordinates (origin top-left).
type Monitor struct {
	ID      int
	Name    string
	Primary bool
	X       int
	Y       int
	Width   int
	Height  int
}

// Area is a rectangle in root window coordinates.
type Area struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Bounds returns the monitor's full region.
func (m Monitor) Bounds() Area {
	return Area{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
}

// GetMonitors retrieves all active monitors using XRandR, in CRTC order.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	// Initialize RandR if not already done
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primaryOutput randr.Output
	if reply, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primaryOutput = reply.Output
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		primary := false
		for _, out := range crtcInfo.Outputs {
			if primaryOutput != 0 && out == primaryOutput {
				primary = true
				break
			}
		}

		monitors = append(monitors, Monitor{
			ID:      i,
			Name:    outputName,
			Primary: primary,
			X:       int(crtcInfo.X),
			Y:       int(crtcInfo.Y),
			Width:   int(crtcInfo.Width),
			Height:  int(crtcInfo.Height),
		})
	}

	return monitors, nil
}

// WorkAreas returns the usable region of every monitor, in the same order.
// Dock struts are preferred; when no dock reserves space, the EWMH work area
// of the current desktop is intersected with each monitor instead.
func (c *Connection) WorkAreas(monitors []Monitor) []Area {
	areas := make([]Area, len(monitors))
	for i, m := range monitors {
		areas[i] = m.Bounds()
	}

	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err == nil {
		struts := c.dockStrutPartials(int(rootGeom.Width), int(rootGeom.Height))
		if len(struts) > 0 {
			for i, m := range monitors {
				areas[i] = applyDockStruts(m, int(rootGeom.Width), int(rootGeom.Height), struts)
			}
			return areas
		}
	}

	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return areas
	}
	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
	}
	wa := workArea[desktopIndex]
	for i, m := range monitors {
		areas[i] = clipToWorkArea(m, Area{X: wa.X, Y: wa.Y, Width: int(wa.Width), Height: int(wa.Height)})
	}
	return areas
}

func (c *Connection) dockStrutPartials(rootWidth, rootHeight int) []ewmh.WmStrutPartial {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil
	}

	var struts []ewmh.WmStrutPartial
	for _, windowID := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil {
			continue
		}

		isDock := false
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DOCK" {
				isDock = true
				break
			}
		}
		if !isDock {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			struts = append(struts, *sp)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			struts = append(struts, fullSpanStrut(s, rootWidth, rootHeight))
		}
	}
	return struts
}

func fullSpanStrut(s *ewmh.WmStrut, rootWidth, rootHeight int) ewmh.WmStrutPartial {
	return ewmh.WmStrutPartial{
		Left:         s.Left,
		Right:        s.Right,
		Top:          s.Top,
		Bottom:       s.Bottom,
		LeftStartY:   0,
		LeftEndY:     uint(rootHeight - 1),
		RightStartY:  0,
		RightEndY:    uint(rootHeight - 1),
		TopStartX:    0,
		TopEndX:      uint(rootWidth - 1),
		BottomStartX: 0,
		BottomEndX:   uint(rootWidth - 1),
	}
}

type dockStruts struct {
	left   int
	right  int
	top    int
	bottom int
}

func applyDockStruts(monitor Monitor, rootWidth, rootHeight int, struts []ewmh.WmStrutPartial) Area {
	var acc dockStruts
	for i := range struts {
		updateStrutsForMonitor(monitor, rootWidth, rootHeight, &struts[i], &acc)
	}

	area := monitor.Bounds()
	area.X += acc.left
	area.Y += acc.top
	area.Width -= acc.left + acc.right
	area.Height -= acc.top + acc.bottom
	if area.Width < 0 {
		area.Width = 0
	}
	if area.Height < 0 {
		area.Height = 0
	}
	return area
}

func clipToWorkArea(monitor Monitor, wa Area) Area {
	x1 := max(monitor.X, wa.X)
	y1 := max(monitor.Y, wa.Y)
	x2 := min(monitor.X+monitor.Width, wa.X+wa.Width)
	y2 := min(monitor.Y+monitor.Height, wa.Y+wa.Height)

	// A work area that misses the monitor says nothing about it.
	if x2 <= x1 || y2 <= y1 {
		return monitor.Bounds()
	}
	return Area{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

func updateStrutsForMonitor(monitor Monitor, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, acc *dockStruts) {
	monX1 := monitor.X
	monY1 := monitor.Y
	monX2 := monitor.X + monitor.Width
	monY2 := monitor.Y + monitor.Height

	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		x1 := int(sp.TopStartX)
		x2 := int(sp.TopEndX) + 1
		y1 := 0
		y2 := int(sp.Top)
		if intersects(monX1, monY1, monX2, monY2, x1, y1, x2, y2) {
			acc.top = max(acc.top, intersectionSize(monX1, monY1, monX2, monY2, x1, y1, x2, y2).h)
		}
	}

	// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		x1 := int(sp.BottomStartX)
		x2 := int(sp.BottomEndX) + 1
		y2 := rootHeight
		y1 := rootHeight - int(sp.Bottom)
		if intersects(monX1, monY1, monX2, monY2, x1, y1, x2, y2) {
			acc.bottom = max(acc.bottom, intersectionSize(monX1, monY1, monX2, monY2, x1, y1, x2, y2).h)
		}
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		x1 := 0
		x2 := int(sp.Left)
		y1 := int(sp.LeftStartY)
		y2 := int(sp.LeftEndY) + 1
		if intersects(monX1, monY1, monX2, monY2, x1, y1, x2, y2) {
			acc.left = max(acc.left, intersectionSize(monX1, monY1, monX2, monY2, x1, y1, x2, y2).w)
		}
	}

	// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		x2 := rootWidth
		x1 := rootWidth - int(sp.Right)
		y1 := int(sp.RightStartY)
		y2 := int(sp.RightEndY) + 1
		if intersects(monX1, monY1, monX2, monY2, x1, y1, x2, y2) {
			acc.right = max(acc.right, intersectionSize(monX1, monY1, monX2, monY2, x1, y1, x2, y2).w)
		}
	}
}

type intersection struct {
	w int
	h int
}

func intersectionSize(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 int) intersection {
	x1 := max(ax1, bx1)
	y1 := max(ay1, by1)
	x2 := min(ax2, bx2)
	y2 := min(ay2, by2)

	if x2 <= x1 || y2 <= y1 {
		return intersection{}
	}
	return intersection{w: x2 - x1, h: y2 - y1}
}

func intersects(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 int) bool {
	isect := intersectionSize(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2)
	return isect.w > 0 && isect.h > 0
}
