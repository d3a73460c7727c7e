//go:build !windows

package webgpu

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/convengine/internal/kernel"
)

// Config controls the WebGPU executor.
type Config struct {
	Logger *slog.Logger
}

// DefaultConfig returns the default executor configuration.
func DefaultConfig() Config {
	return Config{}
}

// Executor is unavailable on this platform.
type Executor struct{}

var _ kernel.Executor = (*Executor)(nil)

// New always fails on this platform.
func New(Config) (*Executor, error) {
	return nil, fmt.Errorf("webgpu: %w: not supported on this platform", kernel.ErrUnavailable)
}

// Name returns the executor name.
func (e *Executor) Name() string { return "webgpu" }

// MaxGroupSize always fails on this platform.
func (e *Executor) MaxGroupSize(k kernel.Name) (int, error) {
	return 0, fmt.Errorf("webgpu: %w", kernel.ErrUnavailable)
}

// Run always fails on this platform.
func (e *Executor) Run(*kernel.Dispatch) ([]float32, error) {
	return nil, fmt.Errorf("webgpu: %w", kernel.ErrUnavailable)
}

// Release is a no-op.
func (e *Executor) Release() {}

// IsAvailable reports false on this platform.
func IsAvailable() bool { return false }
