package tensor

import "math"

// Tolerance defines acceptable numeric drift between the accelerator and
// reference paths. Two values agree when |a-b| <= Abs + Rel*|b|.
type Tolerance struct {
	Abs float64
	Rel float64
}

// DefaultTolerance is the agreement target for float32 kernels.
var DefaultTolerance = Tolerance{Abs: 1e-5, Rel: 1e-4}

// Close reports whether got agrees with want.
func (tol Tolerance) Close(got, want float64) bool {
	if math.IsInf(want, 0) || math.IsNaN(want) {
		return got == want || (math.IsNaN(got) && math.IsNaN(want))
	}
	return math.Abs(got-want) <= tol.Abs+tol.Rel*math.Abs(want)
}

// AllClose reports whether got and want have the same dimensions and every
// element agrees within tol.
func AllClose[T Float](got, want *Tensor2D[T], tol Tolerance) bool {
	if got.Width != want.Width || got.Height != want.Height || len(got.Data) != len(want.Data) {
		return false
	}
	for i := range want.Data {
		if !tol.Close(float64(got.Data[i]), float64(want.Data[i])) {
			return false
		}
	}
	return true
}

// MaxRelError returns the largest |got-want| / max(|want|, 1) over all
// elements, or +Inf when the dimensions differ.
func MaxRelError[T Float](got, want *Tensor2D[T]) float64 {
	if got.Width != want.Width || got.Height != want.Height || len(got.Data) != len(want.Data) {
		return math.Inf(1)
	}
	var worst float64
	for i := range want.Data {
		w := float64(want.Data[i])
		e := math.Abs(float64(got.Data[i])-w) / math.Max(math.Abs(w), 1)
		if e > worst {
			worst = e
		}
	}
	return worst
}
