package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/winsnap/internal/geometry"
	"github.com/1broseidon/winsnap/internal/platform"
	"github.com/1broseidon/winsnap/internal/topology"
)

// TopologySource enumerates the current displays.
type TopologySource interface {
	Enumerate() topology.Topology
}

// WatcherConfig holds configuration for the topology watcher.
type WatcherConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// ChangeKind classifies a display change.
type ChangeKind int

const (
	DisplayAttached ChangeKind = iota
	DisplayDetached
	DisplayChanged
)

func (k ChangeKind) String() string {
	switch k {
	case DisplayAttached:
		return "attached"
	case DisplayDetached:
		return "detached"
	case DisplayChanged:
		return "changed"
	default:
		return fmt.Sprintf("change(%d)", int(k))
	}
}

// Change is one difference between two enumerations.
type Change struct {
	Kind    ChangeKind
	Display platform.Display
}

// Watcher periodically enumerates displays and logs attach, detach and
// geometry changes. Actions never read its state; they enumerate fresh.
type Watcher struct {
	interval time.Duration
	source   TopologySource
	logger   *slog.Logger

	mu   sync.Mutex
	last []platform.Display
}

// NewWatcher creates a new watcher with the given configuration.
func NewWatcher(cfg WatcherConfig, source TopologySource) *Watcher {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		interval: interval,
		source:   source,
		logger:   logger,
	}
}

// Run starts the watch loop. Blocks until context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("topology watcher started", "interval", w.interval)
	w.check()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("topology watcher stopped")
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// CheckNow performs a single pass and returns what changed since the last one.
func (w *Watcher) CheckNow() []Change {
	return w.check()
}

func (w *Watcher) check() (changes []Change) {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			w.logger.Error("topology watcher panic recovered", "error", err)
			changes = nil
		}
	}()

	current := w.source.Enumerate().Displays()

	w.mu.Lock()
	prev := w.last
	w.last = current
	w.mu.Unlock()

	if prev == nil {
		w.logger.Debug("initial topology", "displays", len(current))
		return nil
	}

	changes = diffDisplays(prev, current)
	for _, c := range changes {
		w.logger.Info("display "+c.Kind.String(),
			"display", c.Display.Name,
			"id", c.Display.ID,
			"bounds", c.Display.Bounds.String(),
			"usable", c.Display.Usable.String(),
			"primary", c.Display.Primary)
	}
	return changes
}

type displayKey struct {
	id   int
	name string
}

func keyOf(d platform.Display) displayKey {
	return displayKey{id: d.ID, name: d.Name}
}

// diffDisplays reports detaches first, then attaches and changes in current order.
func diffDisplays(prev, current []platform.Display) []Change {
	before := make(map[displayKey]platform.Display, len(prev))
	for _, d := range prev {
		before[keyOf(d)] = d
	}
	after := make(map[displayKey]struct{}, len(current))
	for _, d := range current {
		after[keyOf(d)] = struct{}{}
	}

	var changes []Change
	for _, d := range prev {
		if _, ok := after[keyOf(d)]; !ok {
			changes = append(changes, Change{Kind: DisplayDetached, Display: d})
		}
	}
	for _, d := range current {
		old, ok := before[keyOf(d)]
		if !ok {
			changes = append(changes, Change{Kind: DisplayAttached, Display: d})
			continue
		}
		if old.Primary != d.Primary ||
			!old.Bounds.Equal(d.Bounds, geometry.Tolerance) ||
			!old.Usable.Equal(d.Usable, geometry.Tolerance) {
			changes = append(changes, Change{Kind: DisplayChanged, Display: d})
		}
	}
	return changes
}
