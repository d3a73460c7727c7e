package engine

import (
	"github.com/born-ml/convengine/internal/kernel"
	"github.com/born-ml/convengine/internal/tensor"
)

// MaxPool performs 2D max pooling on the executor. Padded taps are skipped,
// never compared.
func (e *Engine) MaxPool(input *tensor.Tensor2D[float32], windowWidth, windowHeight int, p tensor.Params) (*tensor.Tensor2D[float32], error) {
	return e.pool(kernel.MaxPool, input, windowWidth, windowHeight, p)
}

// AvgPool performs 2D average pooling on the executor, dividing every window
// sum by windowWidth*windowHeight.
func (e *Engine) AvgPool(input *tensor.Tensor2D[float32], windowWidth, windowHeight int, p tensor.Params) (*tensor.Tensor2D[float32], error) {
	return e.pool(kernel.AvgPool, input, windowWidth, windowHeight, p)
}

func (e *Engine) pool(k kernel.Name, input *tensor.Tensor2D[float32], wW, wH int, p tensor.Params) (*tensor.Tensor2D[float32], error) {
	outW, outH, err := tensor.WindowOutputSize(input, wW, wH, p)
	if err != nil {
		return nil, err
	}

	d := &kernel.Dispatch{
		Kernel: k,
		Bindings: []kernel.Binding{
			kernel.Buffer(kernel.PoolInput, input.Data),
			kernel.Scalar(kernel.PoolInputWidth, input.Width),
			kernel.Scalar(kernel.PoolInputHeight, input.Height),
			kernel.Scalar(kernel.PoolWindowWidth, wW),
			kernel.Scalar(kernel.PoolWindowHeight, wH),
			kernel.Output(kernel.PoolOutput, outW*outH),
			kernel.Scalar(kernel.PoolOutputWidth, outW),
			kernel.Scalar(kernel.PoolOutputHeight, outH),
			kernel.Scalar(kernel.PoolStrideX, p.StrideX),
			kernel.Scalar(kernel.PoolStrideY, p.StrideY),
			kernel.Scalar(kernel.PoolPaddingX, p.PaddingX),
			kernel.Scalar(kernel.PoolPaddingY, p.PaddingY),
		},
		Count:     outW * outH,
		GroupSize: e.groupSizes[k],
	}

	out, err := e.run(d)
	if err != nil {
		return nil, err
	}
	return &tensor.Tensor2D[float32]{Data: out, Width: outW, Height: outH}, nil
}
