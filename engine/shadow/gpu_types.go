package shadow

import (
	"unsafe"

	"github.com/NoNameAlien/shadow-algorithms-sub000/common"
)

// FrameUniforms is the per-object uniform block shared by every pass in the
// frame graph. The Go layout must match the WGSL FrameUniforms struct in the
// frame_uniforms include byte for byte: three column-major mat4x4 followed by
// three vec4, 240 bytes, no implicit padding.
//
// Lane packing:
//   - LightDir.w is 0, marking the light as directional.
//   - CameraPos.w carries the shadow strength scalar.
//   - Technique holds the per-method parameter slot (see PackTechnique).
type FrameUniforms struct {
	Model         [16]float32
	ViewProj      [16]float32
	LightViewProj [16]float32
	LightDir      [4]float32
	CameraPos     [4]float32
	Technique     [4]float32
}

// FrameUniformsSize is the GPU byte size of FrameUniforms.
const FrameUniformsSize = 240

// compile-time layout guard: fails to build if the Go struct picks up padding
var _ [FrameUniformsSize]byte = [unsafe.Sizeof(FrameUniforms{})]byte{}

// Bytes returns a byte view of the uniforms for GPU upload. The slice aliases
// the struct's memory; write it to the queue before mutating u again.
//
// Returns:
//   - []byte: 240-byte view of the struct
func (u *FrameUniforms) Bytes() []byte {
	return common.StructToBytes(u)
}

// frameUniformsWGSL is the WGSL counterpart of FrameUniforms, injected into
// every shader program through the pre-processor so the struct is declared
// exactly once.
const frameUniformsWGSL = `struct FrameUniforms {
    model: mat4x4<f32>,
    view_proj: mat4x4<f32>,
    light_view_proj: mat4x4<f32>,
    light_dir: vec4<f32>,
    camera_pos: vec4<f32>,
    technique: vec4<f32>,
};
@group(0) @binding(0) var<uniform> frame: FrameUniforms;`

// BlurUniforms parameterizes one separable blur dispatch: the filter axis and
// the texel footprint. 16 bytes, matching the WGSL BlurUniforms struct.
type BlurUniforms struct {
	// Direction is (1, 0) for the horizontal pass and (0, 1) for the vertical.
	Direction [2]float32
	// TexelSize is 1 / mapSize in both axes.
	TexelSize [2]float32
}

// BlurUniformsSize is the GPU byte size of BlurUniforms.
const BlurUniformsSize = 16

// Bytes returns a byte view of the blur uniforms for GPU upload.
//
// Returns:
//   - []byte: 16-byte view of the struct
func (u *BlurUniforms) Bytes() []byte {
	return common.StructToBytes(u)
}
