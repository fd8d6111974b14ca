package hotkeys

// Listener delivers system-wide keyboard events to a Dispatcher. There is one
// listener per process; it owns the platform's global keyboard hook.
type Listener interface {
	// Install hooks the keyboard and starts feeding d. Failure is fatal for
	// the daemon: without it no chord can be recognised.
	Install(d *Dispatcher) error
	// Run blocks, pumping the platform event loop, until Close is called.
	Run()
	// Close removes the keyboard hook and makes Run return.
	Close()
}
