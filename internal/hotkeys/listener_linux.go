//go:build linux

package hotkeys

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/winsnap/internal/platform"
)

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
	EventLoop()
	QuitEventLoop()
}

// X11Listener grabs each binding's chord on the root window. Grabs are exact
// over the significant modifiers, with lock modifiers added as ignored
// variants so Caps Lock or Num Lock do not defeat them.
type X11Listener struct {
	backend x11Accessor
	xu      *xgbutil.XUtil
	root    xproto.Window

	mu        sync.Mutex
	installed bool
}

var ignoreModsOnce sync.Once

// NewListener creates the X11 listener for backend.
func NewListener(backend platform.Backend) (Listener, error) {
	accessor, ok := backend.(x11Accessor)
	if !ok || accessor.XUtil() == nil {
		return nil, fmt.Errorf("backend %T does not expose an X11 connection", backend)
	}

	xu := accessor.XUtil()
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &X11Listener{
		backend: accessor,
		xu:      xu,
		root:    accessor.RootWindow(),
	}, nil
}

// Install grabs every binding in d's table.
func (l *X11Listener) Install(d *Dispatcher) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.installed {
		return fmt.Errorf("listener already installed")
	}

	for _, b := range d.Table().Bindings() {
		seq := X11Sequence(b)
		err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
			d.Handle(Event{
				Type: KeyDown,
				Mods: ModifiersFromX11State(ev.State),
				Key:  KeyFromKeysym(keybind.LookupString(xu, ev.State, ev.Detail)),
			})
		}).Connect(l.xu, l.root, seq, true)
		if err != nil {
			keybind.Detach(l.xu, l.root)
			return fmt.Errorf("failed to register %s (%s): %w", b, seq, err)
		}
	}

	l.installed = true
	return nil
}

// Run starts the X11 event loop (blocking).
func (l *X11Listener) Run() {
	l.backend.EventLoop()
}

// Close releases the grabs and stops the event loop.
func (l *X11Listener) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.installed {
		keybind.Detach(l.xu, l.root)
		l.installed = false
	}
	l.backend.QuitEventLoop()
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
