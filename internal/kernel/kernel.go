// Package kernel defines the contract between the dispatch operators and a
// kernel executor: kernel names, the fixed slot layout of each kernel, the
// binding list of one invocation and the Executor interface.
//
// A slot is a positional parameter of a compiled kernel program. Buffers and
// scalars share one slot space per kernel, and an executor's programs must
// read each value from the slot listed here.
package kernel

// Name identifies a compiled kernel program.
type Name string

// Kernels provided by every executor.
const (
	Conv2D    Name = "conv2d"
	MaxPool   Name = "maxPool"
	AvgPool   Name = "avgPool"
	ReduceSum Name = "reduceSum"
)

// All lists every kernel an executor must provide.
var All = []Name{Conv2D, MaxPool, AvgPool, ReduceSum}

// Conv2D slots.
const (
	Conv2DInput = iota
	Conv2DInputWidth
	Conv2DInputHeight
	Conv2DKernel
	Conv2DKernelWidth
	Conv2DKernelHeight
	Conv2DOutput
	Conv2DOutputWidth
	Conv2DOutputHeight
	Conv2DStrideX
	Conv2DStrideY
	Conv2DPaddingX
	Conv2DPaddingY
)

// Pooling slots, shared by MaxPool and AvgPool.
const (
	PoolInput = iota
	PoolInputWidth
	PoolInputHeight
	PoolWindowWidth
	PoolWindowHeight
	PoolOutput
	PoolOutputWidth
	PoolOutputHeight
	PoolStrideX
	PoolStrideY
	PoolPaddingX
	PoolPaddingY
)

// ReduceSum slots. Invocation j sums input[j*GroupWidth : min((j+1)*GroupWidth, Length)].
const (
	ReduceInput = iota
	ReduceLength
	ReduceGroupWidth
	ReduceOutput
)

// MaxSlot is one past the highest slot used by any kernel.
const MaxSlot = Conv2DPaddingY + 1
