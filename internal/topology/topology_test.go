package topology

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/winsnap/internal/geometry"
	"github.com/1broseidon/winsnap/internal/platform"
)

type fakeSource struct {
	displays []platform.Display
	err      error
	calls    int
}

func (f *fakeSource) Displays() ([]platform.Display, error) {
	f.calls++
	return f.displays, f.err
}

func display(id int, name string, x float64, primary bool) platform.Display {
	bounds := geometry.NewFrame(x, 0, 1920, 1080, geometry.Native)
	return platform.Display{ID: id, Name: name, Index: id, Primary: primary, Bounds: bounds, Usable: bounds}
}

func TestEnumerateKeepsOrder(t *testing.T) {
	src := &fakeSource{displays: []platform.Display{
		display(0, "A", 0, false),
		display(1, "B", 1920, true),
		display(2, "C", 3840, false),
	}}

	topo := NewResolver(src, nil).Enumerate()

	require.Equal(t, 3, topo.Len())
	names := []string{}
	for _, d := range topo.Displays() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
	assert.Equal(t, "B", topo.Primary().Name)
}

func TestEnumerateReadsFreshEveryTime(t *testing.T) {
	src := &fakeSource{displays: []platform.Display{display(0, "A", 0, true)}}
	r := NewResolver(src, nil)

	r.Enumerate()
	src.displays = append(src.displays, display(1, "B", 1920, false))
	topo := r.Enumerate()

	assert.Equal(t, 2, src.calls)
	assert.Equal(t, 2, topo.Len())
}

func TestEnumerateFallsBackOnEmptyOrError(t *testing.T) {
	for _, src := range []*fakeSource{
		{},
		{err: errors.New("randr unavailable")},
	} {
		topo := NewResolver(src, nil).Enumerate()
		require.Equal(t, 1, topo.Len())
		p := topo.Primary()
		assert.True(t, p.Primary)
		assert.True(t, p.Bounds.IsEmpty())
		assert.True(t, p.Usable.IsEmpty())
		assert.Zero(t, topo.PrimaryHeight())
	}
}

func TestPrimaryDefaultsToFirst(t *testing.T) {
	topo := New([]platform.Display{display(0, "A", 0, false), display(1, "B", 1920, false)})
	assert.Equal(t, "A", topo.Primary().Name)
}

func TestNextCycles(t *testing.T) {
	a, b, c := display(0, "A", 0, true), display(1, "B", 1920, false), display(2, "C", 3840, false)
	topo := New([]platform.Display{a, b, c})

	tests := []struct {
		from platform.Display
		want string
	}{
		{a, "B"},
		{b, "C"},
		{c, "A"},
	}
	for _, tt := range tests {
		got, ok := topo.Next(tt.from)
		require.True(t, ok)
		assert.Equal(t, tt.want, got.Name, "next after %s", tt.from.Name)
	}
}

func TestNextSingleDisplayIsNoOp(t *testing.T) {
	topo := New([]platform.Display{display(0, "A", 0, true)})
	_, ok := topo.Next(topo.Primary())
	assert.False(t, ok)
}

func TestNextFromDisconnectedDisplay(t *testing.T) {
	topo := New([]platform.Display{display(0, "A", 0, true), display(1, "B", 1920, false)})
	got, ok := topo.Next(display(9, "gone", 5000, false))
	require.True(t, ok)
	assert.Equal(t, "A", got.Name)
}
