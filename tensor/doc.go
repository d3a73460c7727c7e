// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the 2D tensors, parameters and
// errors shared by every convengine backend.
//
// The package defines:
//   - Tensor2D[T]: row-major 2D tensor owned by its caller
//   - Params: stride and virtual padding of a convolution or pooling call
//   - Backend: the operator set implemented by the reference and accelerator paths
//   - Tolerance: agreement check between the two paths
//
// Example:
//
//	input := tensor.New[float32](4, 4)
//	kernel := tensor.Full[float32](2, 2, 1)
//	out, err := cpu.New().Conv2D(input, kernel, tensor.DefaultParams().WithStride(2, 2))
package tensor
