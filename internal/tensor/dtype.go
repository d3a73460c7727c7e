// Package tensor provides the 2-D tensor value type, operation parameters and
// the shape rules shared by every compute backend.
package tensor

// Float is a constraint for supported tensor element types.
type Float interface {
	~float32 | ~float64
}
