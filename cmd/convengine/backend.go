package main

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/born-ml/convengine/internal/backend/cpu"
	"github.com/born-ml/convengine/internal/backend/host"
	"github.com/born-ml/convengine/internal/backend/webgpu"
	"github.com/born-ml/convengine/internal/config"
	"github.com/born-ml/convengine/internal/engine"
	"github.com/born-ml/convengine/internal/kernel"
	"github.com/born-ml/convengine/internal/tensor"
)

// openAccelerator builds the backend compared against the reference.
// With backend "auto", a missing or broken WebGPU device falls back to the
// host executor. The returned release func must be called when done.
func openAccelerator(cfg config.Config, logger *slog.Logger) (tensor.Backend, func(), error) {
	engineCfg := engine.Config{
		GroupWidth:    cfg.Engine.GroupWidth,
		BaseCaseWidth: cfg.Engine.BaseCaseWidth,
		Logger:        logger,
	}

	switch cfg.Backend {
	case config.BackendCPU:
		return cpu.New(), func() {}, nil
	case config.BackendHost:
		return openHost(cfg, engineCfg)
	case config.BackendWebGPU:
		return openWebGPU(engineCfg, logger)
	}

	b, release, err := openWebGPU(engineCfg, logger)
	if err == nil {
		return b, release, nil
	}
	if !errors.Is(err, kernel.ErrUnavailable) && !errors.Is(err, kernel.ErrPipeline) {
		return nil, nil, err
	}
	logger.Warn("webgpu unavailable, falling back to host executor", "error", err)
	return openHost(cfg, engineCfg)
}

func openHost(cfg config.Config, engineCfg engine.Config) (tensor.Backend, func(), error) {
	workers := cfg.Host.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	exec, err := host.New(host.Config{MaxGroupSize: cfg.Host.MaxGroupSize, Workers: workers})
	if err != nil {
		return nil, nil, err
	}
	return newEngine(exec, engineCfg)
}

func openWebGPU(engineCfg engine.Config, logger *slog.Logger) (tensor.Backend, func(), error) {
	exec, err := webgpu.New(webgpu.Config{Logger: logger})
	if err != nil {
		return nil, nil, err
	}
	return newEngine(exec, engineCfg)
}

func newEngine(exec kernel.Executor, engineCfg engine.Config) (tensor.Backend, func(), error) {
	e, err := engine.New(exec, engineCfg)
	if err != nil {
		exec.Release()
		return nil, nil, fmt.Errorf("create engine: %w", err)
	}
	return e, e.Release, nil
}
