// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go reference backend.
//
// # Overview
//
// The reference backend implements conv2d, max-pool, avg-pool and
// reduce-sum over tensor.Tensor2D[float32]:
//   - Pure Go implementation (no CGO)
//   - Virtual padding: taps outside the input are skipped, never read
//   - Reduce-sum as one linear pass with a float64 accumulator
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/convengine/backend/cpu"
//	    "github.com/born-ml/convengine/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    input := tensor.Full[float32](4, 4, 1)
//	    out, err := backend.MaxPool(input, 2, 2, tensor.DefaultParams())
//	}
//
// # Boundary Handling
//
// AvgPool divides by the full window area even when part of the window lies
// in the padding. MaxPool compares only the taps inside the input.
package cpu
