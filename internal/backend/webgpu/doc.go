// Package webgpu implements a kernel executor on WebGPU compute shaders.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
//
// Every kernel is a WGSL program whose storage buffers sit at
// @binding(slot), where slot is the kernel's slot number from package
// kernel. All scalar slots of a kernel are packed in ascending slot order
// into one uniform struct bound at ParamsBinding.
//
// The executor is available on Windows, where go-webgpu loads wgpu-native.
// On other platforms New returns kernel.ErrUnavailable.
package webgpu
