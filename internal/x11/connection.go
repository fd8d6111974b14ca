package x11

import (
	"os"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Options overrides how the X server is reached. Empty fields fall back to
// the DISPLAY and XAUTHORITY environment variables.
type Options struct {
	Display    string
	XAuthority string
}

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection establishes a connection to the X11 server and initializes required extensions
func NewConnection(opts Options) (*Connection, error) {
	if opts.XAuthority != "" {
		// xgb reads the cookie location from the environment only.
		if err := os.Setenv("XAUTHORITY", opts.XAuthority); err != nil {
			return nil, err
		}
	}

	var (
		xu  *xgbutil.XUtil
		err error
	)
	if opts.Display != "" {
		xu, err = xgbutil.NewConnDisplay(opts.Display)
	} else {
		xu, err = xgbutil.NewConn()
	}
	if err != nil {
		return nil, err
	}

	// Initialize keybind module (required for global hotkeys)
	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// EventLoop starts the main X11 event loop (blocking)
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit stops a running EventLoop.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
