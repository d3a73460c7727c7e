// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package host provides the in-process kernel executor.
//
// The host executor runs the accelerator's kernel programs on goroutines,
// partitioned into worker groups the way a GPU dispatch is. It needs no
// device and is the fallback executor when WebGPU is unavailable.
//
// Example:
//
//	exec, err := host.New(host.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	accel, err := engine.New(exec, engine.DefaultConfig())
package host

import (
	internalhost "github.com/born-ml/convengine/internal/backend/host"
	"github.com/born-ml/convengine/internal/kernel"
)

// Executor runs kernel programs on goroutines.
type Executor = internalhost.Executor

// Config controls the host executor.
type Config = internalhost.Config

// Compile-time check that Executor implements kernel.Executor.
var _ kernel.Executor = (*Executor)(nil)

// DefaultConfig returns a group size of 1024 and one worker per CPU.
func DefaultConfig() Config {
	return internalhost.DefaultConfig()
}

// New creates a host executor.
func New(cfg Config) (*Executor, error) {
	return internalhost.New(cfg)
}
