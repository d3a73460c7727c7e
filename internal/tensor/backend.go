package tensor

// Backend defines the operations every compute backend provides.
// Callers pick an implementation explicitly:
//   - cpu.Backend: sequential reference path
//   - engine.Engine: accelerator path over a kernel executor (host or WebGPU)
//
// Both return identical errors for invalid requests.
type Backend interface {
	// Name returns a human-readable backend name.
	Name() string

	// Conv2D sweeps kernel over input:
	// out[oy,ox] = sum input[oy*sy+ky-py, ox*sx+kx-px] * kernel[ky,kx].
	Conv2D(input, kernel *Tensor2D[float32], p Params) (*Tensor2D[float32], error)

	// MaxPool takes the maximum over each in-bounds window tap.
	MaxPool(input *Tensor2D[float32], windowWidth, windowHeight int, p Params) (*Tensor2D[float32], error)

	// AvgPool sums each window's in-bounds taps and divides by the nominal
	// window area.
	AvgPool(input *Tensor2D[float32], windowWidth, windowHeight int, p Params) (*Tensor2D[float32], error)

	// ReduceSum returns the sum of all elements. groupWidth tunes the tree
	// reduction fan-out; zero selects the backend default.
	ReduceSum(input *Tensor2D[float32], groupWidth int) (float64, error)
}
