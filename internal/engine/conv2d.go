package engine

import (
	"github.com/born-ml/convengine/internal/kernel"
	"github.com/born-ml/convengine/internal/tensor"
)

// Conv2D performs a single-channel 2D convolution on the executor.
// Results agree with the reference backend within float32 tolerance.
func (e *Engine) Conv2D(input, kernelT *tensor.Tensor2D[float32], p tensor.Params) (*tensor.Tensor2D[float32], error) {
	outW, outH, err := tensor.Conv2DOutputSize(input, kernelT, p)
	if err != nil {
		return nil, err
	}

	d := &kernel.Dispatch{
		Kernel: kernel.Conv2D,
		Bindings: []kernel.Binding{
			kernel.Buffer(kernel.Conv2DInput, input.Data),
			kernel.Scalar(kernel.Conv2DInputWidth, input.Width),
			kernel.Scalar(kernel.Conv2DInputHeight, input.Height),
			kernel.Buffer(kernel.Conv2DKernel, kernelT.Data),
			kernel.Scalar(kernel.Conv2DKernelWidth, kernelT.Width),
			kernel.Scalar(kernel.Conv2DKernelHeight, kernelT.Height),
			kernel.Output(kernel.Conv2DOutput, outW*outH),
			kernel.Scalar(kernel.Conv2DOutputWidth, outW),
			kernel.Scalar(kernel.Conv2DOutputHeight, outH),
			kernel.Scalar(kernel.Conv2DStrideX, p.StrideX),
			kernel.Scalar(kernel.Conv2DStrideY, p.StrideY),
			kernel.Scalar(kernel.Conv2DPaddingX, p.PaddingX),
			kernel.Scalar(kernel.Conv2DPaddingY, p.PaddingY),
		},
		Count:     outW * outH,
		GroupSize: e.groupSizes[kernel.Conv2D],
	}

	out, err := e.run(d)
	if err != nil {
		return nil, err
	}
	return &tensor.Tensor2D[float32]{Data: out, Width: outW, Height: outH}, nil
}
