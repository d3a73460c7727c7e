package cpu

import (
	"github.com/born-ml/convengine/internal/tensor"
)

// Conv2D performs a single-channel 2D convolution (cross-correlation).
//
// Output shape: ((inW-kW+2*px)/sx + 1) x ((inH-kH+2*py)/sy + 1).
// Out-of-range taps contribute nothing, which equals zero padding.
//
// Example (4x4 input, 2x2 kernel of ones, stride 1):
//
//	Input: [[1,2,3,4],     Output: [[14,18,22],
//	        [5,6,7,8],              [30,34,38],
//	        [9,10,11,12],           [46,50,54]]
//	        [13,14,15,16]]
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.Tensor2D[float32], p tensor.Params) (*tensor.Tensor2D[float32], error) {
	outW, outH, err := tensor.Conv2DOutputSize(input, kernel, p)
	if err != nil {
		return nil, err
	}

	output := tensor.New[float32](outW, outH)
	conv2dFloat32(output.Data, input.Data, kernel.Data,
		input.Width, input.Height, kernel.Width, kernel.Height, outW, outH, p)
	return output, nil
}

func conv2dFloat32(out, in, k []float32, inW, inH, kW, kH, outW, outH int, p tensor.Params) {
	for oy := 0; oy < outH; oy++ {
		for ox := 0; ox < outW; ox++ {
			var sum float32
			for ky := 0; ky < kH; ky++ {
				iy := oy*p.StrideY + ky - p.PaddingY
				if iy < 0 || iy >= inH {
					continue
				}
				// Pre-slice rows: one bounds check per tap.
				inRow := in[iy*inW : iy*inW+inW]
				kRow := k[ky*kW : ky*kW+kW]
				for kx := 0; kx < kW; kx++ {
					ix := ox*p.StrideX + kx - p.PaddingX
					if ix < 0 || ix >= inW {
						continue
					}
					sum += inRow[ix] * kRow[kx]
				}
			}
			out[oy*outW+ox] = sum
		}
	}
}
