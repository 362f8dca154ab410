package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parserTestSource = `
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) uv: vec2<f32>,
};

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) world_pos: vec3<f32>,
};

struct FrameData {
    model: mat4x4<f32>,
    view_proj: mat4x4<f32>,
    light_dir: vec4<f32>,
};

@group(0) @binding(0) var<uniform> frame: FrameData;
@group(1) @binding(0) var shadow_map: texture_depth_2d;
@group(1) @binding(1) var shadow_sampler: sampler_comparison;
@group(1) @binding(2) var color_sampler: sampler;

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}
`

func TestParseVertexLayoutsSkipsOutputStructs(t *testing.T) {
	layouts := parseVertexLayouts(parserTestSource)
	require.Len(t, layouts, 1, "VertexOutput has a @builtin field and must not produce a layout")

	layout := layouts[0][0]
	assert.Equal(t, uint64(32), layout.ArrayStride)
	require.Len(t, layout.Attributes, 3)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout.Attributes[0].Format)
	assert.Equal(t, uint64(0), layout.Attributes[0].Offset)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout.Attributes[1].Format)
	assert.Equal(t, uint64(12), layout.Attributes[1].Offset)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, layout.Attributes[2].Format)
	assert.Equal(t, uint64(24), layout.Attributes[2].Offset)
}

func TestParseBindGroupLayoutsClassifiesResources(t *testing.T) {
	groups, names := parseBindGroupLayouts(parserTestSource, wgpu.ShaderStageFragment)
	require.Contains(t, groups, 0)
	require.Contains(t, groups, 1)

	uniform := groups[0].Entries[0]
	assert.Equal(t, wgpu.BufferBindingTypeUniform, uniform.Buffer.Type)
	// 2 mat4x4 (128) + vec4 (16)
	assert.Equal(t, uint64(144), uniform.Buffer.MinBindingSize)

	entries := groups[1].Entries
	require.Len(t, entries, 3)
	assert.Equal(t, wgpu.TextureSampleTypeDepth, entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.SamplerBindingTypeComparison, entries[1].Sampler.Type)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, entries[2].Sampler.Type)

	assert.Equal(t, "frame", names[0][0])
	assert.Equal(t, "shadow_map", names[1][0])
}

func TestParseEntryPoints(t *testing.T) {
	assert.Equal(t, "vs_main", parseEntryPoint(parserTestSource, ShaderTypeVertex))
	assert.Equal(t, "fs_main", parseEntryPoint(parserTestSource, ShaderTypeFragment))
	assert.Equal(t, "", parseEntryPoint(parserTestSource, ShaderTypeCompute))
}

func TestParseWorkgroupSize(t *testing.T) {
	src := `@compute @workgroup_size(8, 8, 1) fn cs_main() {}`
	assert.Equal(t, [3]uint32{8, 8, 1}, parseWorkgroupSize(src))

	oneD := `@compute @workgroup_size(64) fn cs_main() {}`
	assert.Equal(t, [3]uint32{64, 1, 1}, parseWorkgroupSize(oneD))

	assert.Equal(t, [3]uint32{1, 1, 1}, parseWorkgroupSize("fn nothing() {}"))
}

func TestParseStorageTextureBinding(t *testing.T) {
	src := `
@group(0) @binding(0) var src_tex: texture_2d<f32>;
@group(0) @binding(1) var dst_tex: texture_storage_2d<rgba16float, write>;

@compute @workgroup_size(8, 8, 1)
fn cs_main() {}
`
	groups, _ := parseBindGroupLayouts(src, wgpu.ShaderStageCompute)
	require.Contains(t, groups, 0)
	entries := groups[0].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.TextureFormatRGBA16Float, entries[1].StorageTexture.Format)
	assert.Equal(t, wgpu.StorageTextureAccessWriteOnly, entries[1].StorageTexture.Access)
}

func TestPreProcessorResolvesIncludes(t *testing.T) {
	shared := `struct Shared { value: vec4<f32>, };`
	src := "@include:shared\n@group(0) @binding(0) var<uniform> s: Shared;"

	sh := NewShader("include_test", ShaderTypeFragment, src, WithInclude("shared", shared))
	layout := sh.BindGroupLayoutDescriptor(0)
	require.Len(t, layout.Entries, 1)
	assert.Equal(t, uint64(16), layout.Entries[0].Buffer.MinBindingSize)
}

func TestNewShaderPanicsOnEmptySource(t *testing.T) {
	assert.Panics(t, func() {
		NewShader("empty", ShaderTypeVertex, "")
	})
}
