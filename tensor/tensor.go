// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/convengine/internal/tensor"
)

// Float is the constraint for tensor element types (float32, float64).
type Float = tensor.Float

// Tensor2D is a row-major 2D tensor: element (x, y) is Data[y*Width+x].
type Tensor2D[T Float] = tensor.Tensor2D[T]

// Params holds the stride and padding of a convolution or pooling call.
type Params = tensor.Params

// Backend is the operator set shared by the reference and accelerator paths.
type Backend = tensor.Backend

// Tolerance defines acceptable numeric drift between two backends.
type Tolerance = tensor.Tolerance

// SizeError reports a window larger than the input.
type SizeError = tensor.SizeError

// StrideError reports a zero or negative stride.
type StrideError = tensor.StrideError

// Validation errors, usable with errors.Is.
var (
	ErrSize              = tensor.ErrSize
	ErrInvalidStride     = tensor.ErrInvalidStride
	ErrInvalidParams     = tensor.ErrInvalidParams
	ErrInvalidGroupWidth = tensor.ErrInvalidGroupWidth
	ErrShape             = tensor.ErrShape
)

// DefaultTolerance is the agreement target for float32 kernels.
var DefaultTolerance = tensor.DefaultTolerance

// New creates a zeroed width x height tensor.
func New[T Float](width, height int) *Tensor2D[T] {
	return tensor.New[T](width, height)
}

// Full creates a width x height tensor filled with v.
func Full[T Float](width, height int, v T) *Tensor2D[T] {
	return tensor.Full(width, height, v)
}

// FromSlice copies data into a new width x height tensor.
// Returns an error wrapping ErrShape if len(data) != width*height.
func FromSlice[T Float](data []T, width, height int) (*Tensor2D[T], error) {
	return tensor.FromSlice(data, width, height)
}

// Row creates a 1-row tensor from a copy of data.
func Row[T Float](data []T) *Tensor2D[T] {
	return tensor.Row(data)
}

// DefaultParams returns stride 1 and no padding.
func DefaultParams() Params {
	return tensor.DefaultParams()
}

// OutputSize validates a window over an input and returns the output
// dimensions (inW - kW + 2*PaddingX)/StrideX + 1 by (inH - kH + 2*PaddingY)/StrideY + 1.
func OutputSize(inW, inH, kW, kH int, p Params) (outW, outH int, err error) {
	return tensor.OutputSize(inW, inH, kW, kH, p)
}

// AllClose reports whether every element of got agrees with want within tol.
func AllClose[T Float](got, want *Tensor2D[T], tol Tolerance) bool {
	return tensor.AllClose(got, want, tol)
}

// MaxRelError returns the largest relative element difference.
func MaxRelError[T Float](got, want *Tensor2D[T]) float64 {
	return tensor.MaxRelError(got, want)
}
