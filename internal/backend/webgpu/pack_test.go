package webgpu

import (
	"encoding/binary"
	"math"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/convengine/internal/kernel"
)

func TestPackScalars(t *testing.T) {
	d := &kernel.Dispatch{
		Kernel: kernel.ReduceSum,
		Bindings: []kernel.Binding{
			kernel.Output(kernel.ReduceOutput, 4),
			kernel.Scalar(kernel.ReduceGroupWidth, 8192),
			kernel.Buffer(kernel.ReduceInput, []float32{1}),
			kernel.Scalar(kernel.ReduceLength, 30000),
		},
		Count: 4, GroupSize: 1,
	}

	buf := packScalars(d)
	require.Len(t, buf, 16)
	assert.Equal(t, uint32(30000), binary.LittleEndian.Uint32(buf[0:]))
	assert.Equal(t, uint32(8192), binary.LittleEndian.Uint32(buf[4:]))
	assert.Zero(t, binary.LittleEndian.Uint32(buf[8:]))
}

func TestPackScalars_Conv2DAlignment(t *testing.T) {
	var bindings []kernel.Binding
	for slot := kernel.Conv2DInput; slot < kernel.MaxSlot; slot++ {
		switch slot {
		case kernel.Conv2DInput, kernel.Conv2DKernel:
			bindings = append(bindings, kernel.Buffer(slot, []float32{0}))
		case kernel.Conv2DOutput:
			bindings = append(bindings, kernel.Output(slot, 1))
		default:
			bindings = append(bindings, kernel.Scalar(slot, slot*10))
		}
	}
	buf := packScalars(&kernel.Dispatch{Kernel: kernel.Conv2D, Bindings: bindings, Count: 1, GroupSize: 1})

	// Ten scalars occupy 40 bytes, padded to 48.
	require.Len(t, buf, 48)
	assert.Equal(t, uint32(10), binary.LittleEndian.Uint32(buf[0:]))  // in_w
	assert.Equal(t, uint32(70), binary.LittleEndian.Uint32(buf[16:])) // out_w
	assert.Equal(t, uint32(120), binary.LittleEndian.Uint32(buf[36:])) // pad_y
}

func TestPackScalars_MaxUint32(t *testing.T) {
	d := &kernel.Dispatch{
		Kernel: kernel.ReduceSum,
		Bindings: []kernel.Binding{
			kernel.Buffer(kernel.ReduceInput, []float32{1}),
			kernel.Scalar(kernel.ReduceLength, 1),
			kernel.Scalar(kernel.ReduceGroupWidth, math.MaxUint32),
			kernel.Output(kernel.ReduceOutput, 1),
		},
		Count: 1, GroupSize: WorkgroupSize,
	}
	require.NoError(t, d.Validate())
	assert.Equal(t, uint32(math.MaxUint32), binary.LittleEndian.Uint32(packScalars(d)[4:]))
}

func TestCheckGroupSize(t *testing.T) {
	d := &kernel.Dispatch{Kernel: kernel.Conv2D, GroupSize: WorkgroupSize}
	assert.NoError(t, checkGroupSize(d))

	for _, size := range []int{1, 64, WorkgroupSize + 1} {
		d.GroupSize = size
		assert.Error(t, checkGroupSize(d), "group size %d", size)
	}
}

func TestFloat32Bytes(t *testing.T) {
	in := []float32{0, 1.5, -2, float32(math.Inf(-1))}
	buf := float32Bytes(in)
	require.Len(t, buf, 16)
	assert.Equal(t, in, bytesFloat32(buf))
}

func TestWorkgroupGrid(t *testing.T) {
	tests := []struct {
		count int
		x, y  uint32
	}{
		{1, 1, 1},
		{256, 1, 1},
		{257, 2, 1},
		{256 * 65535, 65535, 1},
		{256*65535 + 1, 65535, 2},
	}
	for _, tt := range tests {
		x, y := workgroupGrid(tt.count)
		assert.Equal(t, tt.x, x, "count=%d", tt.count)
		assert.Equal(t, tt.y, y, "count=%d", tt.count)
		assert.GreaterOrEqual(t, int(x)*int(y)*WorkgroupSize, tt.count)
	}
}

var (
	storageRe = regexp.MustCompile(`@binding\((\d+)\) var<storage`)
	uniformRe = regexp.MustCompile(`@binding\((\d+)\) var<uniform>`)
	fieldRe   = regexp.MustCompile(`(?m)^\s+\w+: u32,$`)
)

// TestShaderBindings checks that every program reads its buffers from the
// kernel's slots and declares one u32 field per scalar slot.
func TestShaderBindings(t *testing.T) {
	layouts := map[kernel.Name]struct {
		buffers []int
		scalars int
	}{
		kernel.Conv2D:    {[]int{kernel.Conv2DInput, kernel.Conv2DKernel, kernel.Conv2DOutput}, 10},
		kernel.MaxPool:   {[]int{kernel.PoolInput, kernel.PoolOutput}, 10},
		kernel.AvgPool:   {[]int{kernel.PoolInput, kernel.PoolOutput}, 10},
		kernel.ReduceSum: {[]int{kernel.ReduceInput, kernel.ReduceOutput}, 2},
	}

	for _, k := range kernel.All {
		src, ok := shaderSources[k]
		require.True(t, ok, "missing program for %s", k)
		want := layouts[k]

		var got []int
		for _, m := range storageRe.FindAllStringSubmatch(src, -1) {
			n, err := strconv.Atoi(m[1])
			require.NoError(t, err)
			got = append(got, n)
		}
		assert.Equal(t, want.buffers, got, k)

		u := uniformRe.FindStringSubmatch(src)
		require.NotNil(t, u, k)
		assert.Equal(t, strconv.Itoa(ParamsBinding), u[1], k)
		assert.Len(t, fieldRe.FindAllString(src, -1), want.scalars, k)
		assert.Contains(t, src, "@workgroup_size(256)", k)
		assert.NotContains(t, src, "params.n + params.group_width", k)
	}
}
