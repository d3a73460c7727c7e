package webgpu

import "github.com/born-ml/convengine/internal/kernel"

// WorkgroupSize is the number of invocations per workgroup compiled into
// every program. It is the group size the executor reports.
const WorkgroupSize = 256

// ParamsBinding is the binding index of the scalar uniform struct.
const ParamsBinding = 15

// maxWorkgroupsPerDimension is WebGPU's default maxComputeWorkgroupsPerDimension.
// Larger dispatches spill into the y dimension.
const maxWorkgroupsPerDimension = 65535

// conv2dShader computes one output cell per invocation. Taps that fall into
// the padding are skipped.
const conv2dShader = `
@group(0) @binding(0) var<storage, read> src: array<f32>;
@group(0) @binding(3) var<storage, read> weights: array<f32>;
@group(0) @binding(6) var<storage, read_write> dst: array<f32>;

struct Params {
    in_w: u32,
    in_h: u32,
    k_w: u32,
    k_h: u32,
    out_w: u32,
    out_h: u32,
    stride_x: u32,
    stride_y: u32,
    pad_x: u32,
    pad_y: u32,
}
@group(0) @binding(15) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>, @builtin(num_workgroups) groups: vec3<u32>) {
    let i = gid.y * groups.x * 256u + gid.x;
    if (i >= params.out_w * params.out_h) {
        return;
    }

    let ox = i32(i % params.out_w);
    let oy = i32(i / params.out_w);
    let in_w = i32(params.in_w);
    let in_h = i32(params.in_h);

    var sum: f32 = 0.0;
    for (var ky: i32 = 0; ky < i32(params.k_h); ky = ky + 1) {
        let iy = oy * i32(params.stride_y) + ky - i32(params.pad_y);
        if (iy < 0 || iy >= in_h) {
            continue;
        }
        for (var kx: i32 = 0; kx < i32(params.k_w); kx = kx + 1) {
            let ix = ox * i32(params.stride_x) + kx - i32(params.pad_x);
            if (ix < 0 || ix >= in_w) {
                continue;
            }
            sum = sum + src[iy * in_w + ix] * weights[ky * i32(params.k_w) + kx];
        }
    }
    dst[i] = sum;
}
`

// poolParams is shared by both pooling programs.
const poolParams = `
@group(0) @binding(0) var<storage, read> src: array<f32>;
@group(0) @binding(5) var<storage, read_write> dst: array<f32>;

struct Params {
    in_w: u32,
    in_h: u32,
    win_w: u32,
    win_h: u32,
    out_w: u32,
    out_h: u32,
    stride_x: u32,
    stride_y: u32,
    pad_x: u32,
    pad_y: u32,
}
@group(0) @binding(15) var<uniform> params: Params;
`

// maxPoolShader compares valid taps only, starting from -Inf.
const maxPoolShader = poolParams + `
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>, @builtin(num_workgroups) groups: vec3<u32>) {
    let i = gid.y * groups.x * 256u + gid.x;
    if (i >= params.out_w * params.out_h) {
        return;
    }

    let ox = i32(i % params.out_w);
    let oy = i32(i / params.out_w);
    let in_w = i32(params.in_w);
    let in_h = i32(params.in_h);

    // -Inf; a let keeps the bitcast out of constant evaluation.
    let neg_inf_bits: u32 = 0xff800000u;
    var best: f32 = bitcast<f32>(neg_inf_bits);
    for (var ky: i32 = 0; ky < i32(params.win_h); ky = ky + 1) {
        let iy = oy * i32(params.stride_y) + ky - i32(params.pad_y);
        if (iy < 0 || iy >= in_h) {
            continue;
        }
        for (var kx: i32 = 0; kx < i32(params.win_w); kx = kx + 1) {
            let ix = ox * i32(params.stride_x) + kx - i32(params.pad_x);
            if (ix < 0 || ix >= in_w) {
                continue;
            }
            let v = src[iy * in_w + ix];
            if (v > best) {
                best = v;
            }
        }
    }
    dst[i] = best;
}
`

// avgPoolShader divides by the full window area, padding included.
const avgPoolShader = poolParams + `
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>, @builtin(num_workgroups) groups: vec3<u32>) {
    let i = gid.y * groups.x * 256u + gid.x;
    if (i >= params.out_w * params.out_h) {
        return;
    }

    let ox = i32(i % params.out_w);
    let oy = i32(i / params.out_w);
    let in_w = i32(params.in_w);
    let in_h = i32(params.in_h);

    var sum: f32 = 0.0;
    for (var ky: i32 = 0; ky < i32(params.win_h); ky = ky + 1) {
        let iy = oy * i32(params.stride_y) + ky - i32(params.pad_y);
        if (iy < 0 || iy >= in_h) {
            continue;
        }
        for (var kx: i32 = 0; kx < i32(params.win_w); kx = kx + 1) {
            let ix = ox * i32(params.stride_x) + kx - i32(params.pad_x);
            if (ix < 0 || ix >= in_w) {
                continue;
            }
            sum = sum + src[iy * in_w + ix];
        }
    }
    dst[i] = sum / f32(params.win_w * params.win_h);
}
`

// reduceSumShader sums one group of group_width elements per invocation.
// WGSL has no f64, so the group sum uses Kahan compensation in f32.
const reduceSumShader = `
@group(0) @binding(0) var<storage, read> src: array<f32>;
@group(0) @binding(3) var<storage, read_write> dst: array<f32>;

struct Params {
    n: u32,
    group_width: u32,
}
@group(0) @binding(15) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>, @builtin(num_workgroups) groups: vec3<u32>) {
    let j = gid.y * groups.x * 256u + gid.x;
    // ceil(n / group_width) without overflowing n + group_width - 1.
    let count = params.n / params.group_width + select(0u, 1u, params.n % params.group_width != 0u);
    if (j >= count) {
        return;
    }

    let start = j * params.group_width;
    let end = min(start + params.group_width, params.n);
    var sum: f32 = 0.0;
    var c: f32 = 0.0;
    for (var k: u32 = start; k < end; k = k + 1u) {
        let y = src[k] - c;
        let t = sum + y;
        c = (t - sum) - y;
        sum = t;
    }
    dst[j] = sum;
}
`

// shaderSources maps every kernel to its WGSL program.
var shaderSources = map[kernel.Name]string{
	kernel.Conv2D:    conv2dShader,
	kernel.MaxPool:   maxPoolShader,
	kernel.AvgPool:   avgPoolShader,
	kernel.ReduceSum: reduceSumShader,
}
