// Package accel answers accelerator questions (presence, total memory) for
// GPU tier selection.
package accel

import (
	"context"
	"errors"
	"fmt"
)

// Prober is the accelerator capability consumed by tier selection.
type Prober interface {
	// Available reports whether at least one accelerator is usable.
	Available(ctx context.Context) (bool, error)
	// TotalMemory returns the total memory in bytes of the accelerator at index.
	TotalMemory(ctx context.Context, index int) (uint64, error)
}

// Static is a Prober with fixed answers. A nil Err and Present=false models a
// host without an accelerator.
type Static struct {
	Present     bool
	MemoryBytes uint64
	Err         error
}

func (s Static) Available(ctx context.Context) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	return s.Present, nil
}

func (s Static) TotalMemory(ctx context.Context, index int) (uint64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	if !s.Present {
		return 0, ErrNoDevice(index)
	}
	return s.MemoryBytes, nil
}

// GB converts decimal gigabytes to bytes.
func GB(gb float64) uint64 { return uint64(gb * 1e9) }

// noDeviceError signals a query against a device index that does not exist.
type noDeviceError struct{ index int }

func (e noDeviceError) Error() string { return fmt.Sprintf("no accelerator at index %d", e.index) }

// ErrNoDevice constructs a noDeviceError.
func ErrNoDevice(index int) error { return noDeviceError{index: index} }

// IsNoDevice reports whether err indicates a missing accelerator.
func IsNoDevice(err error) bool {
	var nd noDeviceError
	return errors.As(err, &nd)
}
