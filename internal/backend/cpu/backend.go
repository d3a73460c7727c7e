// Package cpu implements the sequential reference operators.
//
// Every operator walks the output index space (ox, oy) and, for each output
// cell, the window footprint (kx, ky):
//
//	ix = ox*StrideX + kx - PaddingX
//	iy = oy*StrideY + ky - PaddingY
//
// Taps with ix or iy outside the input are skipped. The results are the
// numeric ground truth the accelerator path is verified against.
package cpu

import (
	"github.com/born-ml/convengine/internal/tensor"
)

// CPUBackend runs every operator single-threaded on the calling goroutine.
// It holds no state and is safe for concurrent use.
type CPUBackend struct{}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

var _ tensor.Backend = (*CPUBackend)(nil)
