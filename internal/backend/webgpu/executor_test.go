//go:build windows

package webgpu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/convengine/internal/backend/cpu"
	"github.com/born-ml/convengine/internal/engine"
	"github.com/born-ml/convengine/internal/kernel"
	"github.com/born-ml/convengine/internal/tensor"
)

func newExecutor(t *testing.T) *Executor {
	t.Helper()
	if !IsAvailable() {
		t.Skip("WebGPU not available")
	}
	exec, err := New(DefaultConfig())
	require.NoError(t, err)
	return exec
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(newExecutor(t), engine.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(e.Release)
	return e
}

func randomTensor(rng *rand.Rand, w, h int) *tensor.Tensor2D[float32] {
	t := tensor.New[float32](w, h)
	for i := range t.Data {
		t.Data[i] = rng.Float32()*2 - 1
	}
	return t
}

func TestExecutor_Info(t *testing.T) {
	exec := newExecutor(t)
	defer exec.Release()

	t.Logf("Executor: %s", exec.Name())
	for _, k := range kernel.All {
		size, err := exec.MaxGroupSize(k)
		require.NoError(t, err)
		assert.Equal(t, WorkgroupSize, size)
	}
}

func TestExecutor_Conv2DValues(t *testing.T) {
	e := newEngine(t)
	input := tensor.New[float32](4, 4)
	for i := range input.Data {
		input.Data[i] = float32(i + 1)
	}

	out, err := e.Conv2D(input, tensor.Full[float32](2, 2, 1), tensor.DefaultParams())
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{14, 18, 22, 30, 34, 38, 46, 50, 54}, out.Data, 1e-5)
}

func TestExecutor_MatchesReference(t *testing.T) {
	e := newEngine(t)
	ref := cpu.New()
	rng := rand.New(rand.NewSource(5))

	for trial := 0; trial < 20; trial++ {
		inW, inH := 1+rng.Intn(300), 1+rng.Intn(300)
		kW, kH := 1+rng.Intn(min(inW, 7)), 1+rng.Intn(min(inH, 7))
		p := tensor.Params{
			StrideX: 1 + rng.Intn(3), StrideY: 1 + rng.Intn(3),
			PaddingX: rng.Intn(kW + 1), PaddingY: rng.Intn(kH + 1),
		}
		input := randomTensor(rng, inW, inH)
		k := randomTensor(rng, kW, kH)

		want, err := ref.Conv2D(input, k, p)
		require.NoError(t, err)
		got, err := e.Conv2D(input, k, p)
		require.NoError(t, err)
		assert.True(t, tensor.AllClose(got, want, tensor.DefaultTolerance), "conv2d trial %d: max rel %g", trial, tensor.MaxRelError(got, want))

		want, err = ref.MaxPool(input, kW, kH, p)
		require.NoError(t, err)
		got, err = e.MaxPool(input, kW, kH, p)
		require.NoError(t, err)
		assert.True(t, got.Equal(want), "maxpool trial %d", trial)

		want, err = ref.AvgPool(input, kW, kH, p)
		require.NoError(t, err)
		got, err = e.AvgPool(input, kW, kH, p)
		require.NoError(t, err)
		assert.True(t, tensor.AllClose(got, want, tensor.DefaultTolerance), "avgpool trial %d", trial)
	}
}

func TestExecutor_ReduceSumOnes(t *testing.T) {
	e := newEngine(t)

	for _, n := range []int{33, 8192, 100_000, 1 << 20} {
		for _, g := range []int{2, 64, 8192, 1 << 32} {
			got, err := e.ReduceSum(tensor.Full[float32](n, 1, 1), g)
			require.NoError(t, err)
			assert.Equal(t, float64(n), got, "n=%d g=%d", n, g)
		}
	}
}

func TestExecutor_RunErrors(t *testing.T) {
	exec := newExecutor(t)
	defer exec.Release()

	_, err := exec.Run(&kernel.Dispatch{Kernel: "softmax", Bindings: []kernel.Binding{kernel.Output(0, 1)}, Count: 1, GroupSize: 1})
	assert.ErrorIs(t, err, kernel.ErrPipeline)

	_, err = exec.Run(&kernel.Dispatch{Kernel: kernel.ReduceSum, Bindings: []kernel.Binding{kernel.Output(3, 1)}, Count: 1, GroupSize: WorkgroupSize + 1})
	assert.Error(t, err)

	_, err = exec.Run(&kernel.Dispatch{Kernel: kernel.ReduceSum, Bindings: []kernel.Binding{kernel.Output(3, 1)}, Count: 1, GroupSize: 64})
	assert.Error(t, err)
}
