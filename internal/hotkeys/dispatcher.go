package hotkeys

import (
	"log/slog"
	"sync"

	"github.com/1broseidon/winsnap/internal/placement"
)

// Decision tells the listener what to do with an event.
type Decision int

const (
	// PassThrough delivers the event to the focused application.
	PassThrough Decision = iota
	// Consume swallows the event.
	Consume
)

func (d Decision) String() string {
	if d == Consume {
		return "consume"
	}
	return "pass-through"
}

// State is the dispatcher's processing state.
type State int

const (
	// Listening accepts events.
	Listening State = iota
	// Suspended is held while an action runs; events arriving in this state
	// pass through untouched.
	Suspended
)

func (s State) String() string {
	if s == Suspended {
		return "suspended"
	}
	return "listening"
}

// ActionFunc runs a recognised action. It must not panic; the dispatcher
// still restores its state if it does.
type ActionFunc func(placement.Action)

// Dispatcher classifies keyboard events and triggers exactly one action per
// recognised chord.
type Dispatcher struct {
	table  Table
	run    ActionFunc
	logger *slog.Logger

	mu    sync.Mutex
	state State
}

// NewDispatcher creates a dispatcher over table that invokes run for matches.
func NewDispatcher(table Table, run ActionFunc, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{table: table, run: run, logger: logger}
}

// Table returns the bindings the dispatcher matches against.
func (d *Dispatcher) Table() Table {
	return d.table
}

// State returns the current processing state.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Handle classifies ev. A matching key-down runs its action synchronously and
// is consumed; everything else passes through.
func (d *Dispatcher) Handle(ev Event) Decision {
	d.mu.Lock()
	if d.state == Suspended {
		d.mu.Unlock()
		return PassThrough
	}
	action, ok := d.table.Match(ev)
	if !ok {
		d.mu.Unlock()
		return PassThrough
	}
	d.state = Suspended
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.state = Listening
		d.mu.Unlock()
	}()

	d.logger.Debug("hotkey recognised", "chord", Binding{Mods: ev.Mods & Significant, Key: ev.Key}.String(), "action", action.String())
	if d.run != nil {
		d.run(action)
	}
	return Consume
}
