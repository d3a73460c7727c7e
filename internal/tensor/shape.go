package tensor

import "fmt"

// Params holds the stride and padding of a convolution or pooling call.
// Padding is virtual: taps falling outside the input are skipped, never read.
type Params struct {
	StrideX  int
	StrideY  int
	PaddingX int
	PaddingY int
}

// DefaultParams returns stride 1 and no padding on both axes.
func DefaultParams() Params {
	return Params{StrideX: 1, StrideY: 1}
}

// WithStride returns a copy of p with the given strides.
func (p Params) WithStride(x, y int) Params {
	p.StrideX, p.StrideY = x, y
	return p
}

// WithPadding returns a copy of p with the given paddings.
func (p Params) WithPadding(x, y int) Params {
	p.PaddingX, p.PaddingY = x, y
	return p
}

// OutputSize validates a convolution/pooling request and returns the output
// dimensions:
//
//	outW = (inW - kW + 2*PaddingX) / StrideX + 1
//	outH = (inH - kH + 2*PaddingY) / StrideY + 1
//
// Division truncates, so a trailing partial frame is dropped.
//
// The window is checked against the input before the stride, so a request
// that violates both reports a *SizeError.
func OutputSize(inW, inH, kW, kH int, p Params) (outW, outH int, err error) {
	if inW < 1 || inH < 1 || kW < 1 || kH < 1 {
		return 0, 0, fmt.Errorf("%w: input %dx%d, kernel %dx%d", ErrInvalidParams, inW, inH, kW, kH)
	}
	if kW > inW || kH > inH {
		return 0, 0, &SizeError{InputWidth: inW, InputHeight: inH, KernelWidth: kW, KernelHeight: kH}
	}
	if p.StrideX <= 0 || p.StrideY <= 0 {
		return 0, 0, &StrideError{StrideX: p.StrideX, StrideY: p.StrideY}
	}
	if p.PaddingX < 0 || p.PaddingY < 0 {
		return 0, 0, fmt.Errorf("%w: negative padding (%d, %d)", ErrInvalidParams, p.PaddingX, p.PaddingY)
	}

	outW = (inW-kW+2*p.PaddingX)/p.StrideX + 1
	outH = (inH-kH+2*p.PaddingY)/p.StrideY + 1
	return outW, outH, nil
}

// WindowOutputSize validates input and applies OutputSize for a window of
// kW x kH over it.
func WindowOutputSize[T Float](input *Tensor2D[T], kW, kH int, p Params) (outW, outH int, err error) {
	if err := input.Validate(); err != nil {
		return 0, 0, err
	}
	return OutputSize(input.Width, input.Height, kW, kH, p)
}

// Conv2DOutputSize validates both tensors of a convolution and returns the
// output dimensions.
func Conv2DOutputSize[T Float](input, kernel *Tensor2D[T], p Params) (outW, outH int, err error) {
	if err := input.Validate(); err != nil {
		return 0, 0, fmt.Errorf("input: %w", err)
	}
	if err := kernel.Validate(); err != nil {
		return 0, 0, fmt.Errorf("kernel: %w", err)
	}
	return OutputSize(input.Width, input.Height, kernel.Width, kernel.Height, p)
}

// CeilDiv returns ceil(n / d) for positive d.
func CeilDiv(n, d int) int {
	return (n + d - 1) / d
}
