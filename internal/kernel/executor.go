package kernel

import (
	"errors"
	"fmt"
)

// Executor runs compiled kernel programs.
//
// Run is synchronous: it mirrors every buffer binding to the device,
// launches d.Count invocations in groups of d.GroupSize, waits for
// completion and returns a host copy of the output buffer. Per-call device
// buffers are released before Run returns. An executor whose programs are
// compiled for a fixed group size rejects any other d.GroupSize rather than
// silently running a different grouping.
//
// Implementations must be safe for concurrent use.
type Executor interface {
	// Name returns a human-readable executor name.
	Name() string

	// MaxGroupSize reports the largest worker group the compiled program for
	// k supports.
	MaxGroupSize(k Name) (int, error)

	// Run executes d and returns the contents of its output binding.
	Run(d *Dispatch) ([]float32, error)

	// Release frees compiled programs and device handles.
	Release()
}

// Accelerator errors. Both are fatal to the executor that reports them: the
// caller may fall back to the reference path but must not retry.
var (
	ErrPipeline    = errors.New("kernel pipeline failure")
	ErrUnavailable = errors.New("accelerator unavailable")
)

// PipelineError reports a kernel that could not be compiled, linked, turned
// into a pipeline or executed.
type PipelineError struct {
	Kernel Name
	Op     string
	Err    error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: kernel %s: %s: %v", ErrPipeline, e.Kernel, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: kernel %s: %s", ErrPipeline, e.Kernel, e.Op)
}

// Unwrap returns the underlying cause.
func (e *PipelineError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrPipeline, e.Err}
	}
	return []error{ErrPipeline}
}
