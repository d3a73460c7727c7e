// Package engine implements the accelerator dispatch operators and the tree
// reduction controller on top of any kernel.Executor.
//
// The engine owns every piece of dimension, stride and padding bookkeeping:
// it validates requests, computes output shapes, binds buffers and scalars
// at each kernel's fixed slots and sizes worker groups from the executor's
// reported capability. The numeric work itself runs inside the executor.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/born-ml/convengine/internal/kernel"
	"github.com/born-ml/convengine/internal/tensor"
)

// Default reduction tuning.
const (
	// DefaultGroupWidth is the number of elements each reduce invocation sums.
	DefaultGroupWidth = 8192
	// DefaultBaseCaseWidth is the width at or below which the remaining
	// partial sums are added on the host instead of dispatching another pass.
	DefaultBaseCaseWidth = 32
)

// Config controls an Engine.
type Config struct {
	GroupWidth    int          // Reduce fan-out used when a call passes 0.
	BaseCaseWidth int          // Host finishes the reduction at or below this width.
	Logger        *slog.Logger // Dispatch logging; nil means slog.Default().
}

// DefaultConfig returns the default reduction tuning.
func DefaultConfig() Config {
	return Config{
		GroupWidth:    DefaultGroupWidth,
		BaseCaseWidth: DefaultBaseCaseWidth,
	}
}

// Engine is the accelerator path. It holds one executor (with its compiled
// programs and submission queue) for its whole lifetime; there is no
// process-wide state.
//
// An Engine is safe for concurrent use when its executor is. Each call owns
// its device buffers end to end.
type Engine struct {
	exec       kernel.Executor
	cfg        Config
	log        *slog.Logger
	groupSizes map[kernel.Name]int
}

var _ tensor.Backend = (*Engine)(nil)

// New creates an engine over exec after querying the maximum group size of
// every kernel. A kernel the executor cannot provide yields an error wrapping
// kernel.ErrPipeline, leaving the caller free to fall back to the reference
// backend. The engine takes ownership of exec only on success.
func New(exec kernel.Executor, cfg Config) (*Engine, error) {
	if exec == nil {
		return nil, fmt.Errorf("engine: %w: nil executor", kernel.ErrUnavailable)
	}
	if cfg.GroupWidth <= 0 {
		cfg.GroupWidth = DefaultGroupWidth
	}
	if cfg.GroupWidth < 2 {
		return nil, fmt.Errorf("engine: %w: %d", tensor.ErrInvalidGroupWidth, cfg.GroupWidth)
	}
	if cfg.BaseCaseWidth < 1 {
		cfg.BaseCaseWidth = DefaultBaseCaseWidth
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sizes := make(map[kernel.Name]int, len(kernel.All))
	for _, k := range kernel.All {
		size, err := exec.MaxGroupSize(k)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		if size < 1 {
			return nil, fmt.Errorf("engine: %w", &kernel.PipelineError{
				Kernel: k, Op: "query group size", Err: fmt.Errorf("reported %d", size),
			})
		}
		sizes[k] = size
	}

	logger.Debug("engine ready", "executor", exec.Name(), "group_width", cfg.GroupWidth)

	return &Engine{
		exec:       exec,
		cfg:        cfg,
		log:        logger.With("executor", exec.Name()),
		groupSizes: sizes,
	}, nil
}

// Name returns the backend name.
func (e *Engine) Name() string {
	return "accel(" + e.exec.Name() + ")"
}

// Executor returns the underlying kernel executor.
func (e *Engine) Executor() kernel.Executor {
	return e.exec
}

// Release releases the executor. The engine must not be used afterwards.
func (e *Engine) Release() {
	e.exec.Release()
}

// DispatchError reports a failed dispatch. ID matches the "id" attribute of
// the engine's dispatch log records.
type DispatchError struct {
	ID     uuid.UUID
	Kernel kernel.Name
	Err    error
}

// Error implements the error interface.
func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s (dispatch %s): %v", e.Kernel, e.ID, e.Err)
}

// Unwrap returns the executor error.
func (e *DispatchError) Unwrap() error { return e.Err }

// run submits one dispatch and blocks until its output is back on the host.
func (e *Engine) run(d *kernel.Dispatch) ([]float32, error) {
	id := uuid.New()
	start := time.Now()

	out, err := e.exec.Run(d)
	if err != nil {
		e.log.Debug("dispatch failed", "id", id, "kernel", d.Kernel, "error", err)
		return nil, &DispatchError{ID: id, Kernel: d.Kernel, Err: err}
	}
	if want := d.Output().Len; len(out) != want {
		err := &kernel.PipelineError{
			Kernel: d.Kernel, Op: "readback", Err: fmt.Errorf("got %d elements, want %d", len(out), want),
		}
		e.log.Debug("dispatch failed", "id", id, "kernel", d.Kernel, "error", err)
		return nil, &DispatchError{ID: id, Kernel: d.Kernel, Err: err}
	}

	e.log.Debug("dispatch",
		"id", id,
		"kernel", d.Kernel,
		"count", d.Count,
		"group_size", d.GroupSize,
		"groups", d.Groups(),
		"elapsed", time.Since(start))
	return out, nil
}
