// Package host implements a kernel executor that runs every kernel program
// in-process. Invocations are partitioned into worker groups exactly as a
// GPU dispatch would be, and groups run concurrently on goroutines.
//
// The host executor needs no device, which makes it the executor used for
// verification and for machines without a WebGPU adapter.
package host

import (
	"fmt"
	"runtime"

	"github.com/born-ml/convengine/internal/kernel"
	"github.com/born-ml/convengine/internal/parallel"
)

// Config controls the host executor.
type Config struct {
	// MaxGroupSize is the group size reported to callers for every kernel.
	MaxGroupSize int
	// Workers bounds the number of groups executing at once.
	Workers int
}

// DefaultConfig returns a group size of 1024 and one worker per CPU.
func DefaultConfig() Config {
	return Config{
		MaxGroupSize: 1024,
		Workers:      runtime.NumCPU(),
	}
}

// program computes invocation i of a kernel and writes its own output cell.
type program func(i int, a *kernel.Args, out []float32)

// Executor runs kernel programs on goroutines. It is safe for concurrent
// use: every Run owns its output buffer and shares no mutable state.
type Executor struct {
	cfg      Config
	programs map[kernel.Name]program
}

var _ kernel.Executor = (*Executor)(nil)

// New creates a host executor with every kernel program registered.
func New(cfg Config) (*Executor, error) {
	if cfg.MaxGroupSize < 1 {
		return nil, fmt.Errorf("host: max group size %d", cfg.MaxGroupSize)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Executor{
		cfg: cfg,
		programs: map[kernel.Name]program{
			kernel.Conv2D:    conv2d,
			kernel.MaxPool:   maxPool,
			kernel.AvgPool:   avgPool,
			kernel.ReduceSum: reduceSum,
		},
	}, nil
}

// Name returns the executor name.
func (e *Executor) Name() string {
	return fmt.Sprintf("host(%d workers)", e.cfg.Workers)
}

// MaxGroupSize reports the configured group size for any known kernel.
func (e *Executor) MaxGroupSize(k kernel.Name) (int, error) {
	if _, ok := e.programs[k]; !ok {
		return 0, &kernel.PipelineError{Kernel: k, Op: "lookup", Err: fmt.Errorf("no such program")}
	}
	return e.cfg.MaxGroupSize, nil
}

// Run executes d synchronously and returns its output buffer.
func (e *Executor) Run(d *kernel.Dispatch) ([]float32, error) {
	prog, ok := e.programs[d.Kernel]
	if !ok {
		return nil, &kernel.PipelineError{Kernel: d.Kernel, Op: "lookup", Err: fmt.Errorf("no such program")}
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if d.GroupSize > e.cfg.MaxGroupSize {
		return nil, fmt.Errorf("kernel %s: group size %d exceeds maximum %d", d.Kernel, d.GroupSize, e.cfg.MaxGroupSize)
	}

	args := kernel.NewArgs(d)
	out := make([]float32, d.Output().Len)

	cfg := parallel.Config{Enabled: e.cfg.Workers > 1, NumWorkers: e.cfg.Workers}
	parallel.ForGroups(d.Count, d.GroupSize, func(start, end int) {
		for i := start; i < end; i++ {
			prog(i, args, out)
		}
	}, cfg)

	return out, nil
}

// Release is a no-op; the host executor holds no device resources.
func (e *Executor) Release() {}
