package engine

import (
	"fmt"

	"github.com/born-ml/convengine/internal/backend/cpu"
	"github.com/born-ml/convengine/internal/kernel"
	"github.com/born-ml/convengine/internal/tensor"
)

// ReduceSum sums every element of input (row-major) by tree reduction.
//
// Each pass dispatches ceil(n/g) invocations, invocation j summing elements
// [j*g, min((j+1)*g, n)), until at most Config.BaseCaseWidth partial sums
// remain; those are added on the host in float64. A groupWidth of 0 or less selects
// Config.GroupWidth; groupWidth 1 is rejected since a pass would never
// shrink the array.
//
// Grouping is deterministic, so repeated calls agree, but the result can
// differ in the last bits from a single linear sum for large inputs.
func (e *Engine) ReduceSum(input *tensor.Tensor2D[float32], groupWidth int) (float64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}
	g := groupWidth
	if g <= 0 {
		g = e.cfg.GroupWidth
	}
	if g < 2 {
		return 0, fmt.Errorf("%w: %d", tensor.ErrInvalidGroupWidth, groupWidth)
	}

	data := input.Data
	n := len(data)
	for pass := 1; n > e.cfg.BaseCaseWidth; pass++ {
		// A group never spans more than n elements, so clamping keeps the
		// bound width within the kernel's u32 range without changing sums.
		width := min(g, n)
		outW := tensor.CeilDiv(n, width)
		d := &kernel.Dispatch{
			Kernel: kernel.ReduceSum,
			Bindings: []kernel.Binding{
				kernel.Buffer(kernel.ReduceInput, data),
				kernel.Scalar(kernel.ReduceLength, n),
				kernel.Scalar(kernel.ReduceGroupWidth, width),
				kernel.Output(kernel.ReduceOutput, outW),
			},
			Count:     outW,
			GroupSize: e.groupSizes[kernel.ReduceSum],
		}

		out, err := e.run(d)
		if err != nil {
			return 0, fmt.Errorf("reduce pass %d: %w", pass, err)
		}
		e.log.Debug("reduce pass", "pass", pass, "in", n, "out", outW)
		data, n = out, outW
	}

	return cpu.SumFloat32(data[:n]), nil
}

// ReducePasses returns the number of accelerator passes ReduceSum performs
// on n elements with group width g and the given base-case width.
func ReducePasses(n, g, base int) int {
	if g < 2 {
		return 0
	}
	passes := 0
	for n > base {
		n = tensor.CeilDiv(n, g)
		passes++
	}
	return passes
}
