package kernel

import (
	"fmt"
	"math"
	"sort"
)

// BindingKind distinguishes what a slot carries.
type BindingKind int

const (
	// BufferBinding is a read-only float32 buffer mirrored to the device.
	BufferBinding BindingKind = iota
	// OutputBinding is an uninitialized float32 buffer the kernel writes.
	OutputBinding
	// ScalarBinding is a uint32 constant.
	ScalarBinding
)

// String returns a human-readable kind name.
func (k BindingKind) String() string {
	switch k {
	case BufferBinding:
		return "buffer"
	case OutputBinding:
		return "output"
	case ScalarBinding:
		return "scalar"
	default:
		return fmt.Sprintf("BindingKind(%d)", int(k))
	}
}

// Binding assigns one value to one kernel slot.
type Binding struct {
	Slot   int
	Kind   BindingKind
	Data   []float32 // BufferBinding
	Len    int       // OutputBinding element count
	Scalar int       // ScalarBinding; must fit in a u32
}

// Buffer binds data read-only at slot. The slice is borrowed for the
// duration of the dispatch and never written.
func Buffer(slot int, data []float32) Binding {
	return Binding{Slot: slot, Kind: BufferBinding, Data: data}
}

// Output binds an n-element output buffer at slot.
func Output(slot, n int) Binding {
	return Binding{Slot: slot, Kind: OutputBinding, Len: n}
}

// Scalar binds a constant at slot. Programs read it as a u32, so
// Dispatch.Validate rejects values outside [0, math.MaxUint32].
func Scalar(slot, v int) Binding {
	return Binding{Slot: slot, Kind: ScalarBinding, Scalar: v}
}

// Dispatch is one kernel invocation request: Count invocations with grid
// index i in [0, Count), partitioned into groups of GroupSize.
type Dispatch struct {
	Kernel    Name
	Bindings  []Binding
	Count     int
	GroupSize int
}

// Validate checks that slots are unique and in range, that exactly one
// output is bound, that every scalar fits in a u32, that Count and
// GroupSize are positive and that Count does not exceed the output length.
func (d *Dispatch) Validate() error {
	if d.Count < 1 {
		return fmt.Errorf("kernel %s: dispatch count %d", d.Kernel, d.Count)
	}
	if d.GroupSize < 1 {
		return fmt.Errorf("kernel %s: group size %d", d.Kernel, d.GroupSize)
	}
	seen := make(map[int]bool, len(d.Bindings))
	outputs := 0
	for _, b := range d.Bindings {
		if b.Slot < 0 || b.Slot >= MaxSlot {
			return fmt.Errorf("kernel %s: slot %d out of range", d.Kernel, b.Slot)
		}
		if seen[b.Slot] {
			return fmt.Errorf("kernel %s: slot %d bound twice", d.Kernel, b.Slot)
		}
		seen[b.Slot] = true
		switch b.Kind {
		case OutputBinding:
			if b.Len < 1 {
				return fmt.Errorf("kernel %s: output slot %d has length %d", d.Kernel, b.Slot, b.Len)
			}
			outputs++
		case ScalarBinding:
			if b.Scalar < 0 || uint64(b.Scalar) > math.MaxUint32 {
				return fmt.Errorf("kernel %s: scalar slot %d value %d out of u32 range", d.Kernel, b.Slot, b.Scalar)
			}
		}
	}
	if outputs != 1 {
		return fmt.Errorf("kernel %s: %d output bindings, want 1", d.Kernel, outputs)
	}
	if n := d.Output().Len; d.Count > n {
		return fmt.Errorf("kernel %s: dispatch count %d exceeds output length %d", d.Kernel, d.Count, n)
	}
	return nil
}

// Groups returns the number of worker groups, ceil(Count/GroupSize).
func (d *Dispatch) Groups() int {
	return (d.Count + d.GroupSize - 1) / d.GroupSize
}

// Output returns the output binding. It must only be called on a validated
// dispatch.
func (d *Dispatch) Output() Binding {
	for _, b := range d.Bindings {
		if b.Kind == OutputBinding {
			return b
		}
	}
	panic("kernel: dispatch has no output binding")
}

// Scalars returns the scalar bindings ordered by slot.
func (d *Dispatch) Scalars() []Binding {
	var out []Binding
	for _, b := range d.Bindings {
		if b.Kind == ScalarBinding {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

// Args is a slot-indexed view of a dispatch's bindings for executors that
// run kernels on the host.
type Args struct {
	buffers [MaxSlot][]float32
	scalars [MaxSlot]int
}

// NewArgs indexes d's bindings by slot.
func NewArgs(d *Dispatch) *Args {
	a := &Args{}
	for _, b := range d.Bindings {
		switch b.Kind {
		case BufferBinding:
			a.buffers[b.Slot] = b.Data
		case ScalarBinding:
			a.scalars[b.Slot] = b.Scalar
		}
	}
	return a
}

// Buffer returns the read-only buffer at slot.
func (a *Args) Buffer(slot int) []float32 { return a.buffers[slot] }

// Scalar returns the scalar at slot.
func (a *Args) Scalar(slot int) int { return a.scalars[slot] }
