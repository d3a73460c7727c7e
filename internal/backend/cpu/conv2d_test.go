package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/convengine/internal/tensor"
)

func seq4x4(t *testing.T) *tensor.Tensor2D[float32] {
	t.Helper()
	data := make([]float32, 16)
	for i := range data {
		data[i] = float32(i + 1)
	}
	x, err := tensor.FromSlice(data, 4, 4)
	require.NoError(t, err)
	return x
}

// TestConv2D_BasicForward tests a 2x2 kernel of ones over 1..16.
func TestConv2D_BasicForward(t *testing.T) {
	backend := New()
	kernel := tensor.Full[float32](2, 2, 1)

	out, err := backend.Conv2D(seq4x4(t), kernel, tensor.DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, 3, out.Width)
	assert.Equal(t, 3, out.Height)
	assert.Equal(t, []float32{14, 18, 22, 30, 34, 38, 46, 50, 54}, out.Data)
}

func TestConv2D_Stride2(t *testing.T) {
	backend := New()
	kernel := tensor.Full[float32](2, 2, 1)

	out, err := backend.Conv2D(seq4x4(t), kernel, tensor.DefaultParams().WithStride(2, 2))
	require.NoError(t, err)

	assert.Equal(t, 2, out.Width)
	assert.Equal(t, 2, out.Height)
	assert.Equal(t, []float32{14, 22, 46, 54}, out.Data)
}

// TestConv2D_Padding checks that padded taps contribute zero.
func TestConv2D_Padding(t *testing.T) {
	backend := New()
	input := tensor.Full[float32](2, 2, 1)
	kernel := tensor.Full[float32](3, 3, 1)

	// 2x2 input cannot host a 3x3 kernel even with padding.
	_, err := backend.Conv2D(input, kernel, tensor.DefaultParams().WithPadding(1, 1))
	require.ErrorIs(t, err, tensor.ErrSize)

	input = tensor.Full[float32](3, 3, 1)
	out, err := backend.Conv2D(input, kernel, tensor.DefaultParams().WithPadding(1, 1))
	require.NoError(t, err)
	assert.Equal(t, 3, out.Width)
	// Corner sees 2x2 in-bounds taps, edges 2x3, center 3x3.
	assert.Equal(t, []float32{4, 6, 4, 6, 9, 6, 4, 6, 4}, out.Data)
}

func TestConv2D_Asymmetric(t *testing.T) {
	backend := New()
	input, err := tensor.FromSlice([]float32{
		1, 2, 3, 4, 5,
		6, 7, 8, 9, 10,
	}, 5, 2)
	require.NoError(t, err)
	kernel, err := tensor.FromSlice([]float32{1, -1}, 2, 1)
	require.NoError(t, err)

	out, err := backend.Conv2D(input, kernel, tensor.Params{StrideX: 2, StrideY: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Width)
	assert.Equal(t, 2, out.Height)
	assert.Equal(t, []float32{-1, -1, -1, -1}, out.Data)
}

func TestConv2D_SingleElement(t *testing.T) {
	backend := New()
	out, err := backend.Conv2D(tensor.Row([]float32{3}), tensor.Row([]float32{-2.5}), tensor.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, []float32{-7.5}, out.Data)
}

func TestConv2D_Errors(t *testing.T) {
	backend := New()
	input := tensor.New[float32](4, 4)

	_, err := backend.Conv2D(input, tensor.New[float32](5, 2), tensor.DefaultParams())
	assert.ErrorIs(t, err, tensor.ErrSize)

	_, err = backend.Conv2D(input, tensor.New[float32](2, 2), tensor.DefaultParams().WithStride(1, 0))
	assert.ErrorIs(t, err, tensor.ErrInvalidStride)

	_, err = backend.Conv2D(input, &tensor.Tensor2D[float32]{Width: 2, Height: 2}, tensor.DefaultParams())
	assert.ErrorIs(t, err, tensor.ErrShape)
}

// TestConv2D_Idempotent checks bit-identical output on repeated calls.
func TestConv2D_Idempotent(t *testing.T) {
	backend := New()
	input := seq4x4(t)
	kernel, err := tensor.FromSlice([]float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}, 3, 3)
	require.NoError(t, err)
	p := tensor.DefaultParams().WithPadding(1, 2)

	a, err := backend.Conv2D(input, kernel, p)
	require.NoError(t, err)
	b, err := backend.Conv2D(input, kernel, p)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func BenchmarkConv2D(b *testing.B) {
	backend := New()
	input := tensor.Full[float32](256, 256, 0.5)
	kernel := tensor.Full[float32](5, 5, 0.04)
	p := tensor.DefaultParams().WithPadding(2, 2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = backend.Conv2D(input, kernel, p)
	}
}
