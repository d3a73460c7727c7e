package main

import (
	"math/rand"
	"time"

	"github.com/born-ml/convengine/internal/config"
	"github.com/born-ml/convengine/internal/tensor"
)

// workload holds the generated tensors shared by both paths.
type workload struct {
	input  *tensor.Tensor2D[float32]
	kernel *tensor.Tensor2D[float32]
	flat   *tensor.Tensor2D[float32]
	params tensor.Params
	group  int
}

func newWorkload(cfg config.Config) *workload {
	rng := rand.New(rand.NewSource(cfg.Seed))
	w := cfg.Workload
	return &workload{
		input:  randomTensor(rng, w.InputWidth, w.InputHeight),
		kernel: randomTensor(rng, w.WindowWidth, w.WindowHeight),
		flat:   randomTensor(rng, w.ReduceLength, 1),
		params: w.Params(),
		group:  cfg.Engine.GroupWidth,
	}
}

// randomTensor fills a tensor with values in [-1, 1).
func randomTensor(rng *rand.Rand, w, h int) *tensor.Tensor2D[float32] {
	t := tensor.New[float32](w, h)
	for i := range t.Data {
		t.Data[i] = rng.Float32()*2 - 1
	}
	return t
}

// result is the output of one operator: a tensor, or a scalar for
// reduce-sum.
type result struct {
	tensor *tensor.Tensor2D[float32]
	scalar float64
}

// op is one operator run against a backend.
type op struct {
	name string
	run  func(b tensor.Backend, w *workload) (result, error)
}

var ops = []op{
	{"conv2d", func(b tensor.Backend, w *workload) (result, error) {
		out, err := b.Conv2D(w.input, w.kernel, w.params)
		return result{tensor: out}, err
	}},
	{"maxPool", func(b tensor.Backend, w *workload) (result, error) {
		out, err := b.MaxPool(w.input, w.kernel.Width, w.kernel.Height, w.params)
		return result{tensor: out}, err
	}},
	{"avgPool", func(b tensor.Backend, w *workload) (result, error) {
		out, err := b.AvgPool(w.input, w.kernel.Width, w.kernel.Height, w.params)
		return result{tensor: out}, err
	}},
	{"reduceSum", func(b tensor.Backend, w *workload) (result, error) {
		sum, err := b.ReduceSum(w.flat, w.group)
		return result{scalar: sum}, err
	}},
}

func avgDuration(times []time.Duration) time.Duration {
	var total time.Duration
	for _, t := range times {
		total += t
	}
	return total / time.Duration(len(times))
}

func minDuration(times []time.Duration) time.Duration {
	m := times[0]
	for _, t := range times[1:] {
		m = min(m, t)
	}
	return m
}

func maxDuration(times []time.Duration) time.Duration {
	m := times[0]
	for _, t := range times[1:] {
		m = max(m, t)
	}
	return m
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
