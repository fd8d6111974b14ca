//go:build darwin

package hotkeys

import (
	"fmt"
	"sync"

	"github.com/1broseidon/winsnap/internal/platform"
)

// TapListener feeds key-downs from a Quartz event tap to the dispatcher.
type TapListener struct {
	mu  sync.Mutex
	tap *platform.EventTap
}

// NewListener creates the event tap listener. The backend is unused on macOS;
// the tap is process-wide.
func NewListener(platform.Backend) (Listener, error) {
	return &TapListener{}, nil
}

// Install creates the event tap.
func (l *TapListener) Install(d *Dispatcher) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.tap != nil {
		return fmt.Errorf("listener already installed")
	}
	tap, err := platform.NewEventTap(func(ev platform.KeyEvent) bool {
		decision := d.Handle(Event{
			Type: KeyDown,
			Mods: ModifiersFromMacFlags(ev.Flags),
			Key:  KeyFromMacKeyCode(ev.KeyCode),
		})
		return decision == Consume
	})
	if err != nil {
		return err
	}
	l.tap = tap
	return nil
}

// Run pumps the run loop on the calling thread.
func (l *TapListener) Run() {
	l.mu.Lock()
	tap := l.tap
	l.mu.Unlock()
	if tap != nil {
		tap.Run()
	}
}

// Close removes the tap.
func (l *TapListener) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.tap != nil {
		l.tap.Close()
		l.tap = nil
	}
}
