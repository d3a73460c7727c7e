package tensor

import (
	"errors"
	"fmt"
)

// Validation errors. All of them are detected before any output is allocated
// or any work is submitted, and leave every tensor untouched.
var (
	ErrSize              = errors.New("kernel larger than input")
	ErrInvalidStride     = errors.New("stride must be greater than 0")
	ErrInvalidParams     = errors.New("invalid operation parameters")
	ErrInvalidGroupWidth = errors.New("group width must be greater than 1")
	ErrShape             = errors.New("invalid tensor shape")
)

// SizeError reports a kernel or pooling window that exceeds the input extent.
type SizeError struct {
	InputWidth, InputHeight   int
	KernelWidth, KernelHeight int
}

// Error implements the error interface.
func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: kernel %dx%d, input %dx%d",
		ErrSize, e.KernelWidth, e.KernelHeight, e.InputWidth, e.InputHeight)
}

// Unwrap returns ErrSize.
func (e *SizeError) Unwrap() error { return ErrSize }

// StrideError reports a zero or negative stride.
type StrideError struct {
	StrideX, StrideY int
}

// Error implements the error interface.
func (e *StrideError) Error() string {
	return fmt.Sprintf("%s: got (%d, %d)", ErrInvalidStride, e.StrideX, e.StrideY)
}

// Unwrap returns ErrInvalidStride.
func (e *StrideError) Unwrap() error { return ErrInvalidStride }
