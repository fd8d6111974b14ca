// Package snapping runs snap actions end to end: locate the focused window,
// resolve its display, compute the target frame and apply it.
package snapping

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/1broseidon/winsnap/internal/geometry"
	"github.com/1broseidon/winsnap/internal/locator"
	"github.com/1broseidon/winsnap/internal/mutator"
	"github.com/1broseidon/winsnap/internal/placement"
	"github.com/1broseidon/winsnap/internal/topology"
)

// Backend is everything the pipeline needs from the window system.
type Backend interface {
	topology.DisplaySource
	locator.WindowSource
	mutator.WindowWriter
}

// Options configures a Snapper.
type Options struct {
	ResetScale float64
	Observer   Observer
	Logger     *slog.Logger
}

// Snapper executes actions one at a time. Hotkeys and IPC requests share a
// Snapper, and its lock keeps their actions from interleaving.
type Snapper struct {
	locator  *locator.Locator
	mutator  *mutator.Mutator
	observer Observer
	logger   *slog.Logger

	mu    sync.Mutex
	last  Outcome
	ran   bool
	stats Stats

	cfgMu  sync.RWMutex
	engine placement.Engine
}

// New creates a Snapper over backend.
func New(backend Backend, opts Options) *Snapper {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	resolver := topology.NewResolver(backend, logger)
	return &Snapper{
		locator:  locator.New(backend, resolver, logger),
		mutator:  mutator.New(backend, logger),
		observer: opts.Observer,
		logger:   logger,
		engine:   placement.NewEngine(opts.ResetScale),
	}
}

// SetResetScale changes the reset scale used by later actions.
func (s *Snapper) SetResetScale(scale float64) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.engine = placement.NewEngine(scale)
}

// ResetScale returns the reset scale in effect.
func (s *Snapper) ResetScale() float64 {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	if s.engine.ResetScale <= 1 {
		return placement.DefaultResetScale
	}
	return s.engine.ResetScale
}

// LastOutcome returns the most recent outcome, if any action has run.
func (s *Snapper) LastOutcome() (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.ran
}

// Stats returns outcome counts.
func (s *Snapper) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Run executes action against the focused window. It never panics and never
// returns an error: every failure is folded into the outcome, which is also
// logged and passed to the observer.
func (s *Snapper) Run(action placement.Action) (out Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("snap action panicked", "action", action.String(), "panic", r, "stack", string(debug.Stack()))
			out = Outcome{Action: action, Status: StatusFailed, Reason: ReasonPanic, Err: fmt.Errorf("panic: %v", r)}
		}
		out.At = start
		out.Duration = time.Since(start)
		s.record(out)
	}()

	return s.run(action)
}

func (s *Snapper) run(action placement.Action) Outcome {
	if !action.Valid() {
		return Outcome{Action: action, Status: StatusFailed, Reason: ReasonInvalidAction, Err: fmt.Errorf("invalid action %d", int(action))}
	}

	target, ok := s.locator.Locate()
	if !ok {
		s.logger.Debug("no focus target, skipping", "action", action.String())
		return Outcome{Action: action, Status: StatusSkipped, Reason: ReasonNoTarget}
	}

	s.cfgMu.RLock()
	engine := s.engine
	s.cfgMu.RUnlock()

	primaryHeight := target.Topology.PrimaryHeight()
	display := target.Display

	if action == placement.NextDisplay {
		next, ok := target.Topology.Next(target.Display)
		if !ok {
			s.logger.Debug("single display, next-display is a no-op")
			return Outcome{Action: action, Status: StatusSkipped, Reason: ReasonSingleDisplay, Display: display.Name}
		}
		display = next
	}

	if display.Usable.IsEmpty() {
		s.logger.Warn("display has no usable area, skipping", "action", action.String(), "display", display.Name)
		return Outcome{Action: action, Status: StatusSkipped, Reason: ReasonEmptyUsable, Display: display.Name}
	}

	var frame geometry.Frame
	if action == placement.NextDisplay {
		frame = engine.ComputeNextDisplayFrame(target.Frame.Size(), display, primaryHeight)
	} else {
		var err error
		frame, err = engine.ComputeTargetFrame(action, display.Usable, primaryHeight)
		if err != nil {
			return Outcome{Action: action, Status: StatusFailed, Reason: ReasonInvalidAction, Display: display.Name, Err: err}
		}
	}

	if err := s.mutator.ApplyFrame(target.Window, frame); err != nil {
		s.logger.Warn("snap action rejected", "action", action.String(), "display", display.Name, "error", err)
		return Outcome{Action: action, Status: StatusFailed, Reason: ReasonRejected, Display: display.Name, Frame: frame, Err: err}
	}

	if action == placement.NextDisplay {
		s.logger.Info("moved window to screen", "screen", display.Name)
	} else {
		s.logger.Debug("snap applied", "action", action.String(), "display", display.Name, "frame", frame.String())
	}
	return Outcome{Action: action, Status: StatusApplied, Display: display.Name, Frame: frame}
}

func (s *Snapper) record(out Outcome) {
	s.last = out
	s.ran = true
	switch out.Status {
	case StatusApplied:
		s.stats.Applied++
	case StatusSkipped:
		s.stats.Skipped++
	case StatusFailed:
		s.stats.Failed++
	}

	if s.observer == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("outcome observer panicked", "panic", r)
		}
	}()
	s.observer.ActionCompleted(out)
}
