//go:build linux

package platform

import (
	"fmt"
	"math"
	"os"

	"github.com/1broseidon/winsnap/internal/geometry"
	"github.com/1broseidon/winsnap/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
//
// X11 reports geometry in root window coordinates, which already follow the
// automation convention. Display regions are lifted into the native convention
// around the primary display's height so the snapping pipeline sees the same
// shapes on every platform.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// Open connects to the X server. A Wayland-only session cannot grant control
// of other clients' windows and is reported as ErrPermissionDenied.
func Open(opts Options) (Backend, error) {
	if opts.Display == "" && os.Getenv("DISPLAY") == "" {
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			return nil, fmt.Errorf("wayland session without X11: %w", ErrPermissionDenied)
		}
		return nil, fmt.Errorf("DISPLAY is not set: %w", ErrPermissionDenied)
	}

	conn, err := x11.NewConnection(x11.Options{Display: opts.Display, XAuthority: opts.XAuthority})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// Close closes the underlying X11 connection.
func (b *LinuxBackend) Close() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// QuitEventLoop stops EventLoop.
func (b *LinuxBackend) QuitEventLoop() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Trusted reports whether an X11 connection is available. X11 has no
// per-client access control for window geometry, so there is nothing to prompt.
func (b *LinuxBackend) Trusted(bool) bool {
	return b != nil && b.conn != nil
}

// Displays returns all active displays in CRTC order.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, nil
	}

	return displaysFromMonitors(monitors, conn.WorkAreas(monitors)), nil
}

// FocusedWindow returns the window named by _NET_ACTIVE_WINDOW.
func (b *LinuxBackend) FocusedWindow() (WindowHandle, error) {
	conn, err := b.connection()
	if err != nil {
		return WindowHandle{}, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil {
		return WindowHandle{}, fmt.Errorf("%w: %v", ErrNoFocusedWindow, err)
	}
	if wid == 0 || wid == conn.Root {
		return WindowHandle{}, ErrNoFocusedWindow
	}
	return NewWindowHandle(uint64(wid)), nil
}

// WindowFrame returns the window's outer frame in the automation convention.
func (b *LinuxBackend) WindowFrame(h WindowHandle) (geometry.Frame, error) {
	conn, win, err := b.window(h)
	if err != nil {
		return geometry.Frame{}, err
	}

	area, err := conn.WindowGeometry(win)
	if err != nil {
		return geometry.Frame{}, err
	}
	return frameFromArea(area, geometry.Automation), nil
}

// SetPosition moves the window's outer frame.
func (b *LinuxBackend) SetPosition(h WindowHandle, p geometry.Point) error {
	if p.Convention != geometry.Automation {
		return fmt.Errorf("position must be in automation convention, got %s", p.Convention)
	}
	conn, win, err := b.window(h)
	if err != nil {
		return err
	}
	return conn.MoveWindow(win, int(math.Round(p.X)), int(math.Round(p.Y)))
}

// SetSize resizes the window's outer frame.
func (b *LinuxBackend) SetSize(h WindowHandle, s geometry.Size) error {
	conn, win, err := b.window(h)
	if err != nil {
		return err
	}
	return conn.ResizeWindow(win, int(math.Round(s.Width)), int(math.Round(s.Height)))
}

func (b *LinuxBackend) window(h WindowHandle) (*x11.Connection, xproto.Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, 0, err
	}
	if !h.Valid() || h.ID() > math.MaxUint32 {
		return nil, 0, ErrInvalidHandle
	}
	win := xproto.Window(h.ID())
	if !conn.WindowExists(win) {
		return nil, 0, fmt.Errorf("window %s: %w", h, ErrInvalidHandle)
	}
	return conn, win, nil
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

// displaysFromMonitors converts RandR monitors and their work areas into
// native-convention displays. The first monitor stands in as primary when
// RandR has none configured.
func displaysFromMonitors(monitors []x11.Monitor, workAreas []x11.Area) []Display {
	primary := 0
	for i, m := range monitors {
		if m.Primary {
			primary = i
			break
		}
	}
	primaryHeight := float64(monitors[primary].Height)

	displays := make([]Display, 0, len(monitors))
	for i, m := range monitors {
		bounds := frameFromArea(m.Bounds(), geometry.Automation)
		usable := bounds
		if i < len(workAreas) {
			usable = frameFromArea(workAreas[i], geometry.Automation)
		}

		bounds = bounds.Convert(geometry.Native, primaryHeight)
		usable = usable.Convert(geometry.Native, primaryHeight)

		displays = append(displays, Display{
			ID:      m.ID,
			Name:    m.Name,
			Index:   i,
			Primary: i == primary,
			Bounds:  bounds,
			Usable:  ClipUsable(bounds, usable),
		})
	}
	return displays
}

func frameFromArea(a x11.Area, c geometry.Convention) geometry.Frame {
	return geometry.NewFrame(float64(a.X), float64(a.Y), float64(a.Width), float64(a.Height), c)
}
