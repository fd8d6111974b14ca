package main

import (
	"github.com/1broseidon/winsnap/internal/ipc"
	"github.com/1broseidon/winsnap/internal/placement"
	"github.com/1broseidon/winsnap/internal/platform"
	"github.com/1broseidon/winsnap/internal/snapping"
	"github.com/1broseidon/winsnap/internal/topology"
)

// onMainThread marshals work onto the platform's UI thread.
var onMainThread = platform.OnMainThread

// mainThreadSnapper runs IPC-triggered actions where hotkey actions run, so
// the snapper lock is only ever taken on that thread.
type mainThreadSnapper struct {
	ipc.Snapper
	exec func(func())
}

func (m mainThreadSnapper) Run(action placement.Action) (out snapping.Outcome) {
	m.exec(func() { out = m.Snapper.Run(action) })
	return out
}

// mainThreadDisplays enumerates displays on the main thread for callers on
// other goroutines (IPC handlers, the topology watcher).
type mainThreadDisplays struct {
	source ipc.DisplayLister
	exec   func(func())
}

func (m mainThreadDisplays) Enumerate() (topo topology.Topology) {
	m.exec(func() { topo = m.source.Enumerate() })
	return topo
}
