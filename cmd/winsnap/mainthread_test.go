package main

import (
	"testing"

	"github.com/1broseidon/winsnap/internal/geometry"
	"github.com/1broseidon/winsnap/internal/placement"
	"github.com/1broseidon/winsnap/internal/platform"
	"github.com/1broseidon/winsnap/internal/snapping"
	"github.com/1broseidon/winsnap/internal/topology"
)

type recordingExec struct {
	calls int
}

func (r *recordingExec) run(fn func()) {
	r.calls++
	fn()
}

type stubSnapper struct {
	ran []placement.Action
}

func (s *stubSnapper) Run(action placement.Action) snapping.Outcome {
	s.ran = append(s.ran, action)
	return snapping.Outcome{Action: action, Status: snapping.StatusApplied, Display: "Built-in"}
}

func (s *stubSnapper) Stats() snapping.Stats { return snapping.Stats{Applied: len(s.ran)} }
func (s *stubSnapper) LastOutcome() (snapping.Outcome, bool) { return snapping.Outcome{}, false }
func (s *stubSnapper) ResetScale() float64 { return placement.DefaultResetScale }

type stubDisplays struct{}

func (stubDisplays) Enumerate() topology.Topology {
	f := geometry.NewFrame(0, 0, 1440, 900, geometry.Native)
	return topology.New([]platform.Display{{ID: 1, Name: "Built-in", Primary: true, Bounds: f, Usable: f}})
}

func TestMainThreadSnapperRunsThroughExec(t *testing.T) {
	exec := &recordingExec{}
	inner := &stubSnapper{}
	s := mainThreadSnapper{Snapper: inner, exec: exec.run}

	out := s.Run(placement.Maximize)
	if exec.calls != 1 {
		t.Fatalf("expected 1 marshalled call, got %d", exec.calls)
	}
	if out.Status != snapping.StatusApplied || out.Display != "Built-in" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if len(inner.ran) != 1 || inner.ran[0] != placement.Maximize {
		t.Fatalf("expected maximize to reach the snapper, got %v", inner.ran)
	}

	// Read-only calls are not marshalled.
	if s.Stats().Applied != 1 || exec.calls != 1 {
		t.Fatalf("expected stats to bypass exec, calls=%d", exec.calls)
	}
}

func TestMainThreadDisplaysRunsThroughExec(t *testing.T) {
	exec := &recordingExec{}
	d := mainThreadDisplays{source: stubDisplays{}, exec: exec.run}

	topo := d.Enumerate()
	if exec.calls != 1 {
		t.Fatalf("expected 1 marshalled call, got %d", exec.calls)
	}
	if topo.Len() != 1 || topo.Primary().Name != "Built-in" {
		t.Fatalf("unexpected topology: %+v", topo.Displays())
	}
}
