// Package mutator writes computed frames to windows.
package mutator

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/winsnap/internal/geometry"
	"github.com/1broseidon/winsnap/internal/platform"
)

// ErrConvention is returned when a frame is not in the automation convention.
var ErrConvention = errors.New("frame must be in automation convention")

// WindowWriter is the part of a platform backend the mutator needs.
type WindowWriter interface {
	SetPosition(h platform.WindowHandle, p geometry.Point) error
	SetSize(h platform.WindowHandle, s geometry.Size) error
}

// ApplyError reports which of the two geometry writes failed. A nil field
// means that write was accepted.
type ApplyError struct {
	Position error
	Size     error
}

func (e *ApplyError) Error() string {
	switch {
	case e.Position != nil && e.Size != nil:
		return fmt.Sprintf("position and size rejected: %v; %v", e.Position, e.Size)
	case e.Position != nil:
		return fmt.Sprintf("position rejected (size applied): %v", e.Position)
	default:
		return fmt.Sprintf("size rejected (position applied): %v", e.Size)
	}
}

// Unwrap exposes both underlying errors to errors.Is and errors.As.
func (e *ApplyError) Unwrap() []error {
	var errs []error
	if e.Position != nil {
		errs = append(errs, e.Position)
	}
	if e.Size != nil {
		errs = append(errs, e.Size)
	}
	return errs
}

// PositionApplied reports whether the position write succeeded.
func (e *ApplyError) PositionApplied() bool { return e.Position == nil }

// SizeApplied reports whether the size write succeeded.
func (e *ApplyError) SizeApplied() bool { return e.Size == nil }

// Mutator applies frames to windows.
type Mutator struct {
	writer WindowWriter
	logger *slog.Logger
}

// New creates a mutator.
func New(writer WindowWriter, logger *slog.Logger) *Mutator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mutator{writer: writer, logger: logger}
}

// ApplyFrame writes frame's position and then its size. Both writes are
// always attempted; a failure of the first does not stop the second. There is
// no retry and no rollback, so a returned *ApplyError may describe a window
// that moved but kept its size, or the reverse.
func (m *Mutator) ApplyFrame(h platform.WindowHandle, frame geometry.Frame) error {
	if frame.Convention != geometry.Automation {
		return fmt.Errorf("%w: got %s", ErrConvention, frame.Convention)
	}
	if !h.Valid() {
		return platform.ErrInvalidHandle
	}

	var applyErr ApplyError
	if err := m.writer.SetPosition(h, frame.Origin()); err != nil {
		applyErr.Position = err
	}
	if err := m.writer.SetSize(h, frame.Size()); err != nil {
		applyErr.Size = err
	}

	if applyErr.Position == nil && applyErr.Size == nil {
		m.logger.Debug("frame applied", "window", h, "frame", frame)
		return nil
	}
	m.logger.Warn("frame partially rejected",
		"window", h,
		"frame", frame,
		"position_applied", applyErr.PositionApplied(),
		"size_applied", applyErr.SizeApplied(),
	)
	return &applyErr
}
