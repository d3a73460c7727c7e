// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/born-ml/convengine/backend/cpu"
	"github.com/born-ml/convengine/tensor"
)

// TestBackendInterface verifies that the CPU backend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = cpu.New()
}

func TestPublicAPI(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, 3, 2)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if got := x.At(2, 1); got != 6 {
		t.Errorf("At(2, 1) = %v, want 6", got)
	}

	w, h, err := tensor.OutputSize(x.Width, x.Height, 2, 2, tensor.DefaultParams())
	if err != nil || w != 2 || h != 1 {
		t.Errorf("OutputSize = (%d, %d, %v), want (2, 1, nil)", w, h, err)
	}

	_, _, err = tensor.OutputSize(3, 2, 4, 1, tensor.DefaultParams())
	var sizeErr *tensor.SizeError
	if !errors.As(err, &sizeErr) || !errors.Is(err, tensor.ErrSize) {
		t.Errorf("OutputSize error = %v, want *SizeError", err)
	}

	if !tensor.AllClose(x, x.Clone(), tensor.DefaultTolerance) {
		t.Error("AllClose(x, x.Clone()) = false")
	}
}
