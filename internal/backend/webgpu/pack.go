package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/born-ml/convengine/internal/kernel"
)

// checkGroupSize rejects dispatches whose group size differs from the
// workgroup size compiled into every program.
func checkGroupSize(d *kernel.Dispatch) error {
	if d.GroupSize != WorkgroupSize {
		return fmt.Errorf("kernel %s: group size %d, programs are compiled for %d", d.Kernel, d.GroupSize, WorkgroupSize)
	}
	return nil
}

// packScalars lays out the scalar bindings of d as consecutive u32 fields
// in ascending slot order, padded to a 16-byte multiple for the uniform
// address space. d must be validated.
func packScalars(d *kernel.Dispatch) []byte {
	scalars := d.Scalars()
	size := (4*len(scalars) + 15) &^ 15
	if size == 0 {
		size = 16
	}
	buf := make([]byte, size)
	for i, s := range scalars {
		//nolint:gosec // G115: Validate bounds every scalar to the u32 range.
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(s.Scalar))
	}
	return buf
}

// float32Bytes encodes data as little-endian f32 values.
func float32Bytes(data []float32) []byte {
	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// bytesFloat32 decodes little-endian f32 values.
func bytesFloat32(buf []byte) []float32 {
	out := make([]float32, len(buf)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return out
}

// workgroupGrid returns the (x, y) workgroup counts covering count
// invocations. Programs flatten the grid back with gid.y*groups.x*256+gid.x.
func workgroupGrid(count int) (x, y uint32) {
	groups := (count + WorkgroupSize - 1) / WorkgroupSize
	if groups <= maxWorkgroupsPerDimension {
		//nolint:gosec // G115: bounded by maxWorkgroupsPerDimension.
		return uint32(groups), 1
	}
	rows := (groups + maxWorkgroupsPerDimension - 1) / maxWorkgroupsPerDimension
	//nolint:gosec // G115: rows is far below the dimension limit for any addressable buffer.
	return maxWorkgroupsPerDimension, uint32(rows)
}
