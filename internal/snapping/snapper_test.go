package snapping

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/winsnap/internal/geometry"
	"github.com/1broseidon/winsnap/internal/mutator"
	"github.com/1broseidon/winsnap/internal/placement"
	"github.com/1broseidon/winsnap/internal/platform"
)

type fakeBackend struct {
	mu sync.Mutex

	displays []platform.Display
	focused  platform.WindowHandle
	focusErr error
	frame    geometry.Frame

	posErr    error
	sizeErr   error
	panicOn   string
	positions []geometry.Point
	sizes     []geometry.Size

	inflight    int32
	maxInflight int32
}

func (f *fakeBackend) Displays() ([]platform.Display, error) {
	if f.panicOn == "displays" {
		panic("display list corrupted")
	}
	return f.displays, nil
}

func (f *fakeBackend) FocusedWindow() (platform.WindowHandle, error) {
	return f.focused, f.focusErr
}

func (f *fakeBackend) WindowFrame(platform.WindowHandle) (geometry.Frame, error) {
	return f.frame, nil
}

func (f *fakeBackend) SetPosition(_ platform.WindowHandle, p geometry.Point) error {
	n := atomic.AddInt32(&f.inflight, 1)
	defer atomic.AddInt32(&f.inflight, -1)
	for {
		cur := atomic.LoadInt32(&f.maxInflight)
		if n <= cur || atomic.CompareAndSwapInt32(&f.maxInflight, cur, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.positions = append(f.positions, p)
	return f.posErr
}

func (f *fakeBackend) SetSize(_ platform.WindowHandle, s geometry.Size) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sizes = append(f.sizes, s)
	return f.sizeErr
}

func hd(id int, name string, x float64, primary bool) platform.Display {
	bounds := geometry.NewFrame(x, 0, 1920, 1080, geometry.Native)
	return platform.Display{ID: id, Name: name, Index: id, Primary: primary, Bounds: bounds, Usable: bounds}
}

func singleDisplay() *fakeBackend {
	return &fakeBackend{
		displays: []platform.Display{hd(0, "Built-in", 0, true)},
		focused:  platform.NewWindowHandle(1),
		frame:    geometry.NewFrame(100, 100, 800, 600, geometry.Automation),
	}
}

type recorder struct {
	outcomes []Outcome
}

func (r *recorder) ActionCompleted(o Outcome) { r.outcomes = append(r.outcomes, o) }

func TestRunMaximize(t *testing.T) {
	fb := singleDisplay()
	rec := &recorder{}
	s := New(fb, Options{Observer: rec})

	out := s.Run(placement.Maximize)

	require.Equal(t, StatusApplied, out.Status, out.String())
	assert.Equal(t, "Built-in", out.Display)
	require.Len(t, fb.positions, 1)
	require.Len(t, fb.sizes, 1)
	assert.Equal(t, geometry.Point{X: 0, Y: 0, Convention: geometry.Automation}, fb.positions[0])
	assert.Equal(t, geometry.Size{Width: 1920, Height: 1080}, fb.sizes[0])
	require.Len(t, rec.outcomes, 1)
	assert.Equal(t, placement.Maximize, rec.outcomes[0].Action)
}

func TestRunResetScenario(t *testing.T) {
	fb := singleDisplay()
	out := New(fb, Options{}).Run(placement.Reset)

	require.Equal(t, StatusApplied, out.Status)
	want := geometry.NewFrame(411.428571, 231.428571, 1097.142857, 617.142857, geometry.Automation)
	assert.True(t, out.Frame.Equal(want, 1e-5), "got %s", out.Frame)
}

func TestRunUsesConfiguredResetScale(t *testing.T) {
	fb := singleDisplay()
	s := New(fb, Options{ResetScale: 1.75})
	s.SetResetScale(2)

	out := s.Run(placement.Reset)
	require.Equal(t, StatusApplied, out.Status)
	assert.InDelta(t, 960, out.Frame.Width, geometry.Tolerance)
	assert.InDelta(t, 2.0, s.ResetScale(), geometry.Tolerance)
}

func TestRunSkipsWithoutFocusTarget(t *testing.T) {
	fb := singleDisplay()
	fb.focusErr = platform.ErrNoFocusedWindow
	rec := &recorder{}

	out := New(fb, Options{Observer: rec}).Run(placement.Left)

	assert.Equal(t, StatusSkipped, out.Status)
	assert.Equal(t, ReasonNoTarget, out.Reason)
	assert.NoError(t, out.Err)
	assert.Empty(t, fb.positions)
	assert.Empty(t, fb.sizes)
	require.Len(t, rec.outcomes, 1)
}

func TestRunNextDisplaySingleDisplayIsNoOp(t *testing.T) {
	fb := singleDisplay()
	out := New(fb, Options{}).Run(placement.NextDisplay)

	assert.Equal(t, StatusSkipped, out.Status)
	assert.Equal(t, ReasonSingleDisplay, out.Reason)
	assert.Empty(t, fb.positions)
}

func TestRunNextDisplayMovesAndKeepsSize(t *testing.T) {
	fb := &fakeBackend{
		displays: []platform.Display{hd(0, "A", 0, true), hd(1, "B", 1920, false)},
		focused:  platform.NewWindowHandle(1),
		frame:    geometry.NewFrame(100, 100, 800, 600, geometry.Automation),
	}

	out := New(fb, Options{}).Run(placement.NextDisplay)

	require.Equal(t, StatusApplied, out.Status, out.String())
	assert.Equal(t, "B", out.Display)
	require.Len(t, fb.positions, 1)
	assert.Equal(t, geometry.Point{X: 1920, Y: 0, Convention: geometry.Automation}, fb.positions[0])
	assert.Equal(t, geometry.Size{Width: 800, Height: 600}, fb.sizes[0])
}

func TestRunNextDisplayWrapsAround(t *testing.T) {
	fb := &fakeBackend{
		displays: []platform.Display{hd(0, "A", 0, true), hd(1, "B", 1920, false), hd(2, "C", 3840, false)},
		focused:  platform.NewWindowHandle(1),
		frame:    geometry.NewFrame(4000, 50, 640, 480, geometry.Automation),
	}

	out := New(fb, Options{}).Run(placement.NextDisplay)

	require.Equal(t, StatusApplied, out.Status)
	assert.Equal(t, "A", out.Display)
	assert.Equal(t, geometry.Point{X: 0, Y: 0, Convention: geometry.Automation}, fb.positions[0])
}

func TestRunReportsRejectedWrites(t *testing.T) {
	fb := singleDisplay()
	fb.posErr = errors.New("AXPosition not settable")

	out := New(fb, Options{}).Run(placement.Right)

	assert.Equal(t, StatusFailed, out.Status)
	assert.Equal(t, ReasonRejected, out.Reason)
	var applyErr *mutator.ApplyError
	require.ErrorAs(t, out.Err, &applyErr)
	assert.False(t, applyErr.PositionApplied())
	assert.True(t, applyErr.SizeApplied())
	assert.Len(t, fb.sizes, 1, "size write must still be attempted")
}

func TestRunSkipsEmptyUsableRegion(t *testing.T) {
	fb := singleDisplay()
	fb.displays = nil

	out := New(fb, Options{}).Run(placement.Maximize)

	assert.Equal(t, StatusSkipped, out.Status)
	assert.Equal(t, ReasonEmptyUsable, out.Reason)
	assert.Empty(t, fb.positions)
}

func TestRunContainsPanics(t *testing.T) {
	fb := singleDisplay()
	fb.panicOn = "displays"
	s := New(fb, Options{})

	var out Outcome
	require.NotPanics(t, func() { out = s.Run(placement.Left) })
	assert.Equal(t, StatusFailed, out.Status)
	assert.Equal(t, ReasonPanic, out.Reason)
	assert.Error(t, out.Err)

	// The lock must have been released.
	fb.panicOn = ""
	assert.Equal(t, StatusApplied, s.Run(placement.Left).Status)
}

func TestRunContainsObserverPanics(t *testing.T) {
	fb := singleDisplay()
	s := New(fb, Options{Observer: ObserverFunc(func(Outcome) { panic("observer") })})

	require.NotPanics(t, func() { s.Run(placement.Maximize) })
	assert.Equal(t, StatusApplied, s.Run(placement.Maximize).Status)
}

func TestRunRejectsInvalidAction(t *testing.T) {
	fb := singleDisplay()
	out := New(fb, Options{}).Run(placement.Action(42))
	assert.Equal(t, StatusFailed, out.Status)
	assert.Equal(t, ReasonInvalidAction, out.Reason)
	assert.Empty(t, fb.positions)
}

func TestRunSerialisesConcurrentActions(t *testing.T) {
	fb := singleDisplay()
	s := New(fb, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				s.Run(placement.Left)
			} else {
				s.Run(placement.Right)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fb.maxInflight))
	assert.Equal(t, Stats{Applied: 16}, s.Stats())
}

func TestLastOutcome(t *testing.T) {
	fb := singleDisplay()
	s := New(fb, Options{})

	_, ok := s.LastOutcome()
	assert.False(t, ok)

	s.Run(placement.Left)
	last, ok := s.LastOutcome()
	require.True(t, ok)
	assert.Equal(t, placement.Left, last.Action)
	assert.False(t, last.At.IsZero())
}
