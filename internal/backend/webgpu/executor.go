//go:build windows

package webgpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/convengine/internal/kernel"
)

// Config controls the WebGPU executor.
type Config struct {
	// Logger receives adapter and pipeline records; nil means slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the default executor configuration.
func DefaultConfig() Config {
	return Config{}
}

// program is one compiled kernel.
type program struct {
	shader   *wgpu.ShaderModule
	pipeline *wgpu.ComputePipeline
}

// Executor runs kernel programs on a WebGPU device.
//
// Programs are compiled once in New. Each Run creates its own buffers and
// bind group and releases them before returning; submissions to the shared
// queue are serialized.
type Executor struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	adapterInfo *wgpu.AdapterInfo
	programs    map[kernel.Name]*program
	log         *slog.Logger

	mu sync.Mutex // guards queue submission and Release
}

var _ kernel.Executor = (*Executor)(nil)

// New creates a WebGPU executor and compiles every kernel program.
// Returns an error wrapping kernel.ErrUnavailable if WebGPU is not available,
// or a *kernel.PipelineError if a program fails to compile.
func New(cfg Config) (exec *Executor, err error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Executor{programs: make(map[kernel.Name]*program, len(shaderSources)), log: logger}

	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			e.Release()
			exec = nil
			err = fmt.Errorf("webgpu: %w: native library not available: %v", kernel.ErrUnavailable, r)
		}
	}()

	e.instance = wgpu.CreateInstance(nil)
	adapter, adapterErr := e.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		e.Release()
		return nil, fmt.Errorf("webgpu: %w: request adapter: %w", kernel.ErrUnavailable, adapterErr)
	}
	e.adapter = adapter

	info := adapter.GetInfo()
	e.adapterInfo = &info

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		e.Release()
		return nil, fmt.Errorf("webgpu: %w: request device: %w", kernel.ErrUnavailable, deviceErr)
	}
	e.device = device

	e.queue = device.GetQueue()
	if e.queue == nil {
		e.Release()
		return nil, fmt.Errorf("webgpu: %w: no queue", kernel.ErrUnavailable)
	}

	for _, k := range kernel.All {
		if err := e.compile(k); err != nil {
			e.Release()
			return nil, err
		}
	}

	e.log.Info("webgpu executor ready", "adapter", e.adapterInfo.Name, "vendor", e.adapterInfo.VendorName)
	return e, nil
}

// compile builds the shader module and pipeline for k.
func (e *Executor) compile(k kernel.Name) error {
	src, ok := shaderSources[k]
	if !ok {
		return &kernel.PipelineError{Kernel: k, Op: "lookup", Err: fmt.Errorf("no such program")}
	}

	shader := e.device.CreateShaderModuleWGSL(src)
	if shader == nil {
		return &kernel.PipelineError{Kernel: k, Op: "compile"}
	}

	// Auto layout (nil) derives the bind group layout from the shader.
	pipeline := e.device.CreateComputePipelineSimple(nil, shader, "main")
	if pipeline == nil {
		shader.Release()
		return &kernel.PipelineError{Kernel: k, Op: "create pipeline"}
	}

	e.programs[k] = &program{shader: shader, pipeline: pipeline}
	return nil
}

// Name returns the executor name including the adapter.
func (e *Executor) Name() string {
	if e.adapterInfo != nil {
		return fmt.Sprintf("webgpu(%s %s)", e.adapterInfo.Name, e.adapterInfo.VendorName)
	}
	return "webgpu"
}

// AdapterInfo returns information about the GPU adapter.
func (e *Executor) AdapterInfo() *wgpu.AdapterInfo {
	return e.adapterInfo
}

// MaxGroupSize reports the workgroup size compiled into the program for k.
func (e *Executor) MaxGroupSize(k kernel.Name) (int, error) {
	if _, ok := shaderSources[k]; !ok {
		return 0, &kernel.PipelineError{Kernel: k, Op: "lookup", Err: fmt.Errorf("no such program")}
	}
	return WorkgroupSize, nil
}

// Run executes d and returns its output buffer. Device failures surface as
// *kernel.PipelineError.
func (e *Executor) Run(d *kernel.Dispatch) (out []float32, err error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := checkGroupSize(d); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.device == nil {
		return nil, fmt.Errorf("webgpu: %w: executor released", kernel.ErrUnavailable)
	}
	prog, ok := e.programs[d.Kernel]
	if !ok {
		return nil, &kernel.PipelineError{Kernel: d.Kernel, Op: "lookup", Err: fmt.Errorf("no such program")}
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &kernel.PipelineError{Kernel: d.Kernel, Op: "run", Err: fmt.Errorf("%v", r)}
		}
	}()

	entries := make([]wgpu.BindGroupEntry, 0, len(d.Bindings))
	var result *wgpu.Buffer
	var resultSize uint64

	for _, b := range d.Bindings {
		//nolint:gosec // G115: slot numbers are small non-negative constants.
		slot := uint32(b.Slot)
		switch b.Kind {
		case kernel.BufferBinding:
			data := float32Bytes(b.Data)
			buf := e.createBuffer(data, wgpu.BufferUsageStorage|wgpu.BufferUsageCopyDst)
			defer buf.Release()
			entries = append(entries, wgpu.BufferBindingEntry(slot, buf, 0, uint64(len(data))))
		case kernel.OutputBinding:
			resultSize = uint64(4 * b.Len)
			result = e.device.CreateBuffer(&wgpu.BufferDescriptor{
				Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
				Size:  resultSize,
			})
			defer result.Release()
			entries = append(entries, wgpu.BufferBindingEntry(slot, result, 0, resultSize))
		}
	}

	params := packScalars(d)
	bufferParams := e.createUniformBuffer(params)
	defer bufferParams.Release()
	entries = append(entries, wgpu.BufferBindingEntry(ParamsBinding, bufferParams, 0, uint64(len(params))))

	bindGroupLayout := prog.pipeline.GetBindGroupLayout(0)
	bindGroup := e.device.CreateBindGroupSimple(bindGroupLayout, entries)
	defer bindGroup.Release()

	encoder := e.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(prog.pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	x, y := workgroupGrid(d.Count)
	computePass.DispatchWorkgroups(x, y, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	e.queue.Submit(cmdBuffer)

	data, err := e.readBuffer(result, resultSize)
	if err != nil {
		return nil, &kernel.PipelineError{Kernel: d.Kernel, Op: "readback", Err: err}
	}
	return bytesFloat32(data), nil
}

// Release releases the compiled programs and all WebGPU objects.
// Must be called when the executor is no longer needed.
func (e *Executor) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range e.programs {
		p.pipeline.Release()
		p.shader.Release()
	}
	e.programs = nil

	if e.queue != nil {
		e.queue.Release()
		e.queue = nil
	}
	if e.device != nil {
		e.device.Release()
		e.device = nil
	}
	if e.adapter != nil {
		e.adapter.Release()
		e.adapter = nil
	}
	if e.instance != nil {
		e.instance.Release()
		e.instance = nil
	}
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() (available bool) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}
