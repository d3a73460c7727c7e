// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/convengine/internal/backend/cpu"
	"github.com/born-ml/convengine/tensor"
)

// Backend represents the reference CPU backend.
//
// Every operator runs single-threaded with the straightforward loop nest
// and serves as ground truth for the accelerator path.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/convengine/backend/cpu"
//	    "github.com/born-ml/convengine/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    sum, err := backend.ReduceSum(tensor.Full[float32](1000, 1, 1), 0)
//	}
func New() *Backend {
	return internalcpu.New()
}

// Sum returns the float64 linear sum of data.
func Sum(data []float32) float64 {
	return internalcpu.SumFloat32(data)
}
