package kernel

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDispatch() *Dispatch {
	return &Dispatch{
		Kernel: ReduceSum,
		Bindings: []Binding{
			Output(ReduceOutput, 2),
			Scalar(ReduceGroupWidth, 4),
			Buffer(ReduceInput, []float32{1, 2, 3, 4, 5}),
			Scalar(ReduceLength, 5),
		},
		Count:     2,
		GroupSize: 1024,
	}
}

func TestDispatch_Validate(t *testing.T) {
	require.NoError(t, validDispatch().Validate())

	tests := []struct {
		name   string
		mutate func(d *Dispatch)
	}{
		{"zero count", func(d *Dispatch) { d.Count = 0 }},
		{"zero group", func(d *Dispatch) { d.GroupSize = 0 }},
		{"duplicate slot", func(d *Dispatch) { d.Bindings = append(d.Bindings, Scalar(ReduceLength, 1)) }},
		{"slot out of range", func(d *Dispatch) { d.Bindings = append(d.Bindings, Scalar(MaxSlot, 1)) }},
		{"no output", func(d *Dispatch) { d.Bindings = d.Bindings[1:] }},
		{"two outputs", func(d *Dispatch) { d.Bindings = append(d.Bindings, Output(7, 1)) }},
		{"empty output", func(d *Dispatch) { d.Bindings[0] = Output(ReduceOutput, 0) }},
		{"count beyond output", func(d *Dispatch) { d.Count = 3 }},
		{"negative scalar", func(d *Dispatch) { d.Bindings[1] = Scalar(ReduceGroupWidth, -1) }},
		{"scalar above u32", func(d *Dispatch) { d.Bindings[1] = Scalar(ReduceGroupWidth, 1<<32) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDispatch()
			tt.mutate(d)
			assert.Error(t, d.Validate())
		})
	}
}

func TestDispatch_ScalarRange(t *testing.T) {
	d := validDispatch()
	d.Bindings[1] = Scalar(ReduceGroupWidth, math.MaxUint32)
	require.NoError(t, d.Validate())
	assert.Equal(t, math.MaxUint32, NewArgs(d).Scalar(ReduceGroupWidth))
}

func TestDispatch_Accessors(t *testing.T) {
	d := validDispatch()
	assert.Equal(t, 1, d.Groups())
	d.GroupSize = 1
	assert.Equal(t, 2, d.Groups())

	out := d.Output()
	assert.Equal(t, ReduceOutput, out.Slot)
	assert.Equal(t, 2, out.Len)

	scalars := d.Scalars()
	require.Len(t, scalars, 2)
	assert.Equal(t, ReduceLength, scalars[0].Slot)
	assert.Equal(t, ReduceGroupWidth, scalars[1].Slot)

	args := NewArgs(d)
	assert.Equal(t, 5, args.Scalar(ReduceLength))
	assert.Equal(t, 4, args.Scalar(ReduceGroupWidth))
	assert.Len(t, args.Buffer(ReduceInput), 5)
}

// TestSlotLayout pins the positional layout every executor program relies on.
func TestSlotLayout(t *testing.T) {
	assert.Equal(t, 0, Conv2DInput)
	assert.Equal(t, 3, Conv2DKernel)
	assert.Equal(t, 6, Conv2DOutput)
	assert.Equal(t, 12, Conv2DPaddingY)

	assert.Equal(t, 0, PoolInput)
	assert.Equal(t, 3, PoolWindowWidth)
	assert.Equal(t, 5, PoolOutput)
	assert.Equal(t, 11, PoolPaddingY)

	assert.Equal(t, 3, ReduceOutput)
	assert.Equal(t, 13, MaxSlot)
}

func TestPipelineError(t *testing.T) {
	cause := errors.New("shader compile failed")
	err := error(&PipelineError{Kernel: Conv2D, Op: "compile", Err: cause})

	assert.ErrorIs(t, err, ErrPipeline)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "conv2d")

	var pe *PipelineError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "compile", pe.Op)
}

func TestBindingKind_String(t *testing.T) {
	assert.Equal(t, "buffer", BufferBinding.String())
	assert.Equal(t, "output", OutputBinding.String())
	assert.Equal(t, "scalar", ScalarBinding.String())
}
