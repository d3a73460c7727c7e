package cpu

import (
	"github.com/born-ml/convengine/internal/tensor"
)

// ReduceSum returns the sum of every element of input in one linear,
// left-to-right pass with a float64 accumulator. groupWidth is accepted for
// tensor.Backend compatibility and ignored.
func (cpu *CPUBackend) ReduceSum(input *tensor.Tensor2D[float32], _ int) (float64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}
	return SumFloat32(input.Data), nil
}

// SumFloat32 sums data left to right in float64.
func SumFloat32(data []float32) float64 {
	var sum float64
	for _, v := range data {
		sum += float64(v)
	}
	return sum
}
