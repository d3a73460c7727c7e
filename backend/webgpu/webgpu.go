// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU kernel executor.
//
// WebGPU is a cross-platform graphics and compute API. The executor compiles
// one WGSL program per kernel and is currently built on Windows, where
// go-webgpu loads wgpu-native; elsewhere New returns an error wrapping
// engine.ErrUnavailable.
//
// Example:
//
//	import (
//	    "github.com/born-ml/convengine/backend/webgpu"
//	    "github.com/born-ml/convengine/engine"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New(webgpu.DefaultConfig())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    accel, err := engine.New(gpu, engine.DefaultConfig())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer accel.Release()
//	}
package webgpu

import (
	internalwebgpu "github.com/born-ml/convengine/internal/backend/webgpu"
	"github.com/born-ml/convengine/internal/kernel"
)

// Executor runs kernel programs on a WebGPU device.
type Executor = internalwebgpu.Executor

// Config controls the WebGPU executor.
type Config = internalwebgpu.Config

// Compile-time check that Executor implements kernel.Executor.
var _ kernel.Executor = (*Executor)(nil)

// DefaultConfig returns the default executor configuration.
func DefaultConfig() Config {
	return internalwebgpu.DefaultConfig()
}

// New creates a WebGPU executor and compiles every kernel program.
//
// Returns an error if WebGPU initialization fails (e.g., no compatible GPU).
func New(cfg Config) (*Executor, error) {
	return internalwebgpu.New(cfg)
}

// IsAvailable checks if WebGPU is available on the current system.
//
// This function attempts to initialize a WebGPU adapter to verify
// that a compatible GPU and drivers are present. It's useful for
// graceful fallback to the host executor when no GPU is available.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
