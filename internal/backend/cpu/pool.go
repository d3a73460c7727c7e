package cpu

import (
	"math"

	"github.com/born-ml/convengine/internal/tensor"
)

// MaxPool performs 2D max pooling.
//
// Only in-bounds taps take part in the maximum: padded positions are never
// compared and are not treated as zero. Callers wanting zero-padded max
// pooling must pad the input explicitly.
//
// Example (2x2 window, stride 2):
//
//	Input: [[1,2,3,4],    Output: [[6,8],
//	        [5,6,7,8],             [14,16]]
//	        [9,10,11,12],
//	        [13,14,15,16]]
func (cpu *CPUBackend) MaxPool(input *tensor.Tensor2D[float32], windowWidth, windowHeight int, p tensor.Params) (*tensor.Tensor2D[float32], error) {
	outW, outH, err := tensor.WindowOutputSize(input, windowWidth, windowHeight, p)
	if err != nil {
		return nil, err
	}

	output := tensor.New[float32](outW, outH)
	maxPoolFloat32(output.Data, input.Data, input.Width, input.Height, windowWidth, windowHeight, outW, outH, p)
	return output, nil
}

// AvgPool performs 2D average pooling.
//
// Each output is the sum of the in-bounds taps divided by the nominal window
// area windowWidth*windowHeight, so cells touching the padding are averaged
// as if the padded taps were zero.
func (cpu *CPUBackend) AvgPool(input *tensor.Tensor2D[float32], windowWidth, windowHeight int, p tensor.Params) (*tensor.Tensor2D[float32], error) {
	outW, outH, err := tensor.WindowOutputSize(input, windowWidth, windowHeight, p)
	if err != nil {
		return nil, err
	}

	output := tensor.New[float32](outW, outH)
	avgPoolFloat32(output.Data, input.Data, input.Width, input.Height, windowWidth, windowHeight, outW, outH, p)
	return output, nil
}

func maxPoolFloat32(out, in []float32, inW, inH, kW, kH, outW, outH int, p tensor.Params) {
	for oy := 0; oy < outH; oy++ {
		for ox := 0; ox < outW; ox++ {
			maxVal := float32(math.Inf(-1))
			for ky := 0; ky < kH; ky++ {
				iy := oy*p.StrideY + ky - p.PaddingY
				if iy < 0 || iy >= inH {
					continue
				}
				inRow := in[iy*inW : iy*inW+inW]
				for kx := 0; kx < kW; kx++ {
					ix := ox*p.StrideX + kx - p.PaddingX
					if ix < 0 || ix >= inW {
						continue
					}
					if v := inRow[ix]; v > maxVal {
						maxVal = v
					}
				}
			}
			out[oy*outW+ox] = maxVal
		}
	}
}

func avgPoolFloat32(out, in []float32, inW, inH, kW, kH, outW, outH int, p tensor.Params) {
	area := float32(kW * kH)
	for oy := 0; oy < outH; oy++ {
		for ox := 0; ox < outW; ox++ {
			var sum float32
			for ky := 0; ky < kH; ky++ {
				iy := oy*p.StrideY + ky - p.PaddingY
				if iy < 0 || iy >= inH {
					continue
				}
				inRow := in[iy*inW : iy*inW+inW]
				for kx := 0; kx < kW; kx++ {
					ix := ox*p.StrideX + kx - p.PaddingX
					if ix < 0 || ix >= inW {
						continue
					}
					sum += inRow[ix]
				}
			}
			out[oy*outW+ox] = sum / area
		}
	}
}
