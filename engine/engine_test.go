// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package engine_test

import (
	"errors"
	"testing"

	"github.com/born-ml/convengine/backend/cpu"
	"github.com/born-ml/convengine/backend/host"
	"github.com/born-ml/convengine/engine"
	"github.com/born-ml/convengine/tensor"
)

func TestEngine_PublicAPI(t *testing.T) {
	exec, err := host.New(host.DefaultConfig())
	if err != nil {
		t.Fatalf("host.New failed: %v", err)
	}
	accel, err := engine.New(exec, engine.DefaultConfig())
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	defer accel.Release()

	input := tensor.Full[float32](8, 8, 2)
	want, err := cpu.New().AvgPool(input, 3, 3, tensor.DefaultParams().WithPadding(1, 1))
	if err != nil {
		t.Fatalf("reference AvgPool failed: %v", err)
	}
	got, err := accel.AvgPool(input, 3, 3, tensor.DefaultParams().WithPadding(1, 1))
	if err != nil {
		t.Fatalf("AvgPool failed: %v", err)
	}
	if !tensor.AllClose(got, want, tensor.DefaultTolerance) {
		t.Errorf("AvgPool disagrees with reference: max rel error %g", tensor.MaxRelError(got, want))
	}

	if _, err := engine.New(nil, engine.DefaultConfig()); !errors.Is(err, engine.ErrUnavailable) {
		t.Errorf("New(nil) error = %v, want ErrUnavailable", err)
	}
}
