package mutator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/winsnap/internal/geometry"
	"github.com/1broseidon/winsnap/internal/platform"
)

type call struct {
	op    string
	point geometry.Point
	size  geometry.Size
}

type fakeWriter struct {
	calls   []call
	posErr  error
	sizeErr error
}

func (f *fakeWriter) SetPosition(_ platform.WindowHandle, p geometry.Point) error {
	f.calls = append(f.calls, call{op: "position", point: p})
	return f.posErr
}

func (f *fakeWriter) SetSize(_ platform.WindowHandle, s geometry.Size) error {
	f.calls = append(f.calls, call{op: "size", size: s})
	return f.sizeErr
}

var handle = platform.NewWindowHandle(0x400001)

func TestApplyFrameWritesPositionThenSize(t *testing.T) {
	w := &fakeWriter{}
	frame := geometry.NewFrame(960, 25, 960, 1055, geometry.Automation)

	require.NoError(t, New(w, nil).ApplyFrame(handle, frame))
	require.Len(t, w.calls, 2)
	assert.Equal(t, "position", w.calls[0].op)
	assert.Equal(t, frame.Origin(), w.calls[0].point)
	assert.Equal(t, "size", w.calls[1].op)
	assert.Equal(t, frame.Size(), w.calls[1].size)
}

func TestApplyFramePartialFailures(t *testing.T) {
	rejected := errors.New("attribute not settable")
	frame := geometry.NewFrame(0, 0, 100, 100, geometry.Automation)

	tests := []struct {
		name        string
		posErr      error
		sizeErr     error
		positionOK  bool
		sizeOK      bool
		expectedMsg string
	}{
		{"position rejected", rejected, nil, false, true, "position rejected (size applied)"},
		{"size rejected", nil, rejected, true, false, "size rejected (position applied)"},
		{"both rejected", rejected, rejected, false, false, "position and size rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &fakeWriter{posErr: tt.posErr, sizeErr: tt.sizeErr}
			err := New(w, nil).ApplyFrame(handle, frame)

			var applyErr *ApplyError
			require.ErrorAs(t, err, &applyErr)
			assert.Equal(t, tt.positionOK, applyErr.PositionApplied())
			assert.Equal(t, tt.sizeOK, applyErr.SizeApplied())
			assert.Contains(t, err.Error(), tt.expectedMsg)
			assert.ErrorIs(t, err, rejected)
			assert.Len(t, w.calls, 2, "both writes must be attempted")
		})
	}
}

func TestApplyFrameRejectsNativeFrames(t *testing.T) {
	w := &fakeWriter{}
	err := New(w, nil).ApplyFrame(handle, geometry.NewFrame(0, 0, 10, 10, geometry.Native))
	assert.ErrorIs(t, err, ErrConvention)
	assert.Empty(t, w.calls)
}

func TestApplyFrameRejectsInvalidHandle(t *testing.T) {
	w := &fakeWriter{}
	err := New(w, nil).ApplyFrame(platform.WindowHandle{}, geometry.NewFrame(0, 0, 10, 10, geometry.Automation))
	assert.ErrorIs(t, err, platform.ErrInvalidHandle)
	assert.Empty(t, w.calls)
}
