// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package engine provides the accelerator path: conv2d, max-pool, avg-pool
// and tree reduce-sum dispatched to a kernel executor.
//
// Example:
//
//	exec, err := host.New(host.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	accel, err := engine.New(exec, engine.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer accel.Release()
//
//	sum, err := accel.ReduceSum(tensor.Full[float32](1<<20, 1, 1), 0)
package engine

import (
	internalengine "github.com/born-ml/convengine/internal/engine"
	"github.com/born-ml/convengine/internal/kernel"
	"github.com/born-ml/convengine/tensor"
)

// Engine is the accelerator backend.
type Engine = internalengine.Engine

// Config controls an Engine.
type Config = internalengine.Config

// Executor runs compiled kernel programs for an Engine.
type Executor = kernel.Executor

// PipelineError reports a kernel that could not be compiled or executed.
type PipelineError = kernel.PipelineError

// Accelerator errors, usable with errors.Is. Both mean the caller should
// fall back to the reference backend.
var (
	ErrPipeline    = kernel.ErrPipeline
	ErrUnavailable = kernel.ErrUnavailable
)

// Compile-time check that Engine implements tensor.Backend.
var _ tensor.Backend = (*Engine)(nil)

// DefaultConfig returns group width 8192 and base-case width 32.
func DefaultConfig() Config {
	return internalengine.DefaultConfig()
}

// New creates an engine over exec.
func New(exec Executor, cfg Config) (*Engine, error) {
	return internalengine.New(exec, cfg)
}
