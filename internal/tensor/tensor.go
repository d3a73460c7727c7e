package tensor

import "fmt"

// Tensor2D is a row-major 2-D array with explicit dimensions.
//
// Data holds Width*Height elements; element (x, y) lives at Data[y*Width+x].
// A Tensor2D owns its Data slice. Operators borrow their inputs read-only and
// return freshly allocated outputs that the caller owns.
//
// Example:
//
//	t, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, 3, 2)
//	t.At(2, 1) // 6
type Tensor2D[T Float] struct {
	Data   []T
	Width  int
	Height int
}

// New creates a zero-filled tensor of the given dimensions.
func New[T Float](width, height int) *Tensor2D[T] {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("tensor: negative dimensions %dx%d", width, height))
	}
	return &Tensor2D[T]{
		Data:   make([]T, width*height),
		Width:  width,
		Height: height,
	}
}

// Full creates a tensor with every element set to v.
func Full[T Float](width, height int, v T) *Tensor2D[T] {
	t := New[T](width, height)
	for i := range t.Data {
		t.Data[i] = v
	}
	return t
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T Float](data []T, width, height int) (*Tensor2D[T], error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrShape, width, height)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("%w: %dx%d requires %d elements, got %d",
			ErrShape, width, height, width*height, len(data))
	}
	t := New[T](width, height)
	copy(t.Data, data)
	return t, nil
}

// Row creates a 1-row tensor holding a copy of data.
func Row[T Float](data []T) *Tensor2D[T] {
	t := New[T](len(data), 1)
	copy(t.Data, data)
	return t
}

// Len returns the number of elements, Width*Height.
func (t *Tensor2D[T]) Len() int {
	return t.Width * t.Height
}

// At returns the element at column x, row y.
func (t *Tensor2D[T]) At(x, y int) T {
	return t.Data[y*t.Width+x]
}

// Set stores v at column x, row y.
func (t *Tensor2D[T]) Set(x, y int, v T) {
	t.Data[y*t.Width+x] = v
}

// Clone returns a deep copy.
func (t *Tensor2D[T]) Clone() *Tensor2D[T] {
	c := New[T](t.Width, t.Height)
	copy(c.Data, t.Data)
	return c
}

// Validate reports whether t can be accepted as an operator input:
// non-nil, both dimensions at least 1 and a fully populated buffer.
func (t *Tensor2D[T]) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil tensor", ErrShape)
	}
	if t.Width < 1 || t.Height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrShape, t.Width, t.Height)
	}
	if len(t.Data) != t.Width*t.Height {
		return fmt.Errorf("%w: %dx%d tensor holds %d elements", ErrShape, t.Width, t.Height, len(t.Data))
	}
	return nil
}

// Equal reports whether both tensors have the same dimensions and
// bit-identical elements. A nil tensor equals only nil.
func (t *Tensor2D[T]) Equal(other *Tensor2D[T]) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Width != other.Width || t.Height != other.Height || len(t.Data) != len(other.Data) {
		return false
	}
	for i := range t.Data {
		if t.Data[i] != other.Data[i] {
			return false
		}
	}
	return true
}

// String returns a short description such as "Tensor2D[4x3]".
func (t *Tensor2D[T]) String() string {
	return fmt.Sprintf("Tensor2D[%dx%d]", t.Width, t.Height)
}
