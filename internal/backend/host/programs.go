package host

import (
	"math"

	"github.com/born-ml/convengine/internal/kernel"
)

// Each program reads its parameters from the slots fixed in package kernel
// and maps grid index i to output cell (i % outW, i / outW).

func conv2d(i int, a *kernel.Args, out []float32) {
	outW, outH := a.Scalar(kernel.Conv2DOutputWidth), a.Scalar(kernel.Conv2DOutputHeight)
	if i >= outW*outH {
		return
	}
	in, k := a.Buffer(kernel.Conv2DInput), a.Buffer(kernel.Conv2DKernel)
	inW, inH := a.Scalar(kernel.Conv2DInputWidth), a.Scalar(kernel.Conv2DInputHeight)
	kW, kH := a.Scalar(kernel.Conv2DKernelWidth), a.Scalar(kernel.Conv2DKernelHeight)
	sx, sy := a.Scalar(kernel.Conv2DStrideX), a.Scalar(kernel.Conv2DStrideY)
	px, py := a.Scalar(kernel.Conv2DPaddingX), a.Scalar(kernel.Conv2DPaddingY)

	x, y := i%outW, i/outW
	var sum float32
	for ky := 0; ky < kH; ky++ {
		iy := y*sy + ky - py
		if iy < 0 || iy >= inH {
			continue
		}
		for kx := 0; kx < kW; kx++ {
			ix := x*sx + kx - px
			if ix < 0 || ix >= inW {
				continue
			}
			sum += in[iy*inW+ix] * k[ky*kW+kx]
		}
	}
	out[i] = sum
}

// poolWindow visits the in-bounds taps of output cell i.
func poolWindow(i int, a *kernel.Args, visit func(v float32)) bool {
	outW, outH := a.Scalar(kernel.PoolOutputWidth), a.Scalar(kernel.PoolOutputHeight)
	if i >= outW*outH {
		return false
	}
	in := a.Buffer(kernel.PoolInput)
	inW, inH := a.Scalar(kernel.PoolInputWidth), a.Scalar(kernel.PoolInputHeight)
	kW, kH := a.Scalar(kernel.PoolWindowWidth), a.Scalar(kernel.PoolWindowHeight)
	sx, sy := a.Scalar(kernel.PoolStrideX), a.Scalar(kernel.PoolStrideY)
	px, py := a.Scalar(kernel.PoolPaddingX), a.Scalar(kernel.PoolPaddingY)

	x, y := i%outW, i/outW
	for ky := 0; ky < kH; ky++ {
		iy := y*sy + ky - py
		if iy < 0 || iy >= inH {
			continue
		}
		for kx := 0; kx < kW; kx++ {
			ix := x*sx + kx - px
			if ix < 0 || ix >= inW {
				continue
			}
			visit(in[iy*inW+ix])
		}
	}
	return true
}

func maxPool(i int, a *kernel.Args, out []float32) {
	maxVal := float32(math.Inf(-1))
	if poolWindow(i, a, func(v float32) {
		if v > maxVal {
			maxVal = v
		}
	}) {
		out[i] = maxVal
	}
}

func avgPool(i int, a *kernel.Args, out []float32) {
	var sum float32
	if poolWindow(i, a, func(v float32) { sum += v }) {
		area := a.Scalar(kernel.PoolWindowWidth) * a.Scalar(kernel.PoolWindowHeight)
		out[i] = sum / float32(area)
	}
}

func reduceSum(j int, a *kernel.Args, out []float32) {
	n, g := a.Scalar(kernel.ReduceLength), a.Scalar(kernel.ReduceGroupWidth)
	start := j * g
	if start >= n {
		return
	}
	in := a.Buffer(kernel.ReduceInput)
	var sum float64
	for _, v := range in[start:min(start+g, n)] {
		sum += float64(v)
	}
	out[j] = float32(sum)
}
