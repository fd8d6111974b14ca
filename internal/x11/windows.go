package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// GetActiveWindow returns the window named by _NET_ACTIVE_WINDOW. Zero means
// nothing holds focus.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// WindowGeometry returns the window's outer (decorated) frame in root
// coordinates. When the frame cannot be resolved the client geometry is used.
func (c *Connection) WindowGeometry(windowID xproto.Window) (Area, error) {
	win := xwindow.New(c.XUtil, windowID)
	if decor, err := win.DecorGeometry(); err == nil {
		return Area{X: decor.X(), Y: decor.Y(), Width: decor.Width(), Height: decor.Height()}, nil
	}

	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return Area{}, fmt.Errorf("failed to get geometry of window %d: %w", windowID, err)
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return Area{}, fmt.Errorf("failed to translate coordinates of window %d: %w", windowID, err)
	}

	return Area{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// MoveWindow moves a window's outer frame to x, y without resizing it.
func (c *Connection) MoveWindow(windowID xproto.Window, x, y int) error {
	// A maximized window ignores geometry requests in most window managers.
	c.unmaximizeWindow(windowID)

	win := xwindow.New(c.XUtil, windowID)
	return writeGeometry("move", windowID,
		func() error { return win.WMMove(x, y) },
		func() error {
			return c.configure(windowID, xproto.ConfigWindowX|xproto.ConfigWindowY, positionValues(x, y))
		})
}

// ResizeWindow resizes a window's outer frame to width x height without
// moving it. Decorations are subtracted before the request is sent.
func (c *Connection) ResizeWindow(windowID xproto.Window, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid size %dx%d for window %d", width, height, windowID)
	}

	c.unmaximizeWindow(windowID)

	win := xwindow.New(c.XUtil, windowID)
	return writeGeometry("resize", windowID,
		func() error { return win.WMResize(width, height) },
		func() error {
			return c.configure(windowID, xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
				[]uint32{uint32(width), uint32(height)})
		})
}

// configure sends a checked ConfigureWindow so BadWindow and BadValue come
// back as errors.
func (c *Connection) configure(windowID xproto.Window, mask uint16, values []uint32) error {
	return xproto.ConfigureWindowChecked(c.XUtil.Conn(), windowID, mask, values).Check()
}

// writeGeometry tries the window manager request first and falls back to a
// direct configure. It fails only when both are rejected.
func writeGeometry(op string, windowID xproto.Window, wm, direct func() error) error {
	wmErr := wm()
	if wmErr == nil {
		return nil
	}
	if err := direct(); err != nil {
		return fmt.Errorf("failed to %s window %d: %w (window manager request: %v)", op, windowID, err, wmErr)
	}
	return nil
}

// positionValues encodes root coordinates for ConfigureWindow, which carries
// signed 16-bit values in 32-bit slots.
func positionValues(x, y int) []uint32 {
	return []uint32{uint32(int32(x)), uint32(int32(y))}
}

// WindowExists reports whether the server still knows the window.
func (c *Connection) WindowExists(windowID xproto.Window) bool {
	if windowID == 0 {
		return false
	}
	_, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	return err == nil
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return
	}

	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, state)
		}
	}
}
