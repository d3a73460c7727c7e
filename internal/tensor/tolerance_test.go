package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTolerance_Close(t *testing.T) {
	tol := Tolerance{Rel: 1e-4}
	assert.True(t, tol.Close(1000.05, 1000))
	assert.False(t, tol.Close(1000.5, 1000))
	assert.True(t, tol.Close(math.Inf(-1), math.Inf(-1)))
	assert.False(t, tol.Close(0, math.Inf(-1)))
}

func TestAllClose(t *testing.T) {
	a := Row([]float32{1, 2, 3})
	b := Row([]float32{1, 2.00001, 3})
	assert.True(t, AllClose(a, b, DefaultTolerance))
	assert.InDelta(t, 0.00001/2.00001, MaxRelError(a, b), 1e-6)

	c := Row([]float32{1, 2, 4})
	assert.False(t, AllClose(a, c, DefaultTolerance))

	assert.False(t, AllClose(a, New[float32](1, 3), DefaultTolerance))
	assert.True(t, math.IsInf(MaxRelError(a, New[float32](1, 3)), 1))
}
