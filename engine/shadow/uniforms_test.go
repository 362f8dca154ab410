package shadow

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackTechniqueSMAndPCFShareLayout(t *testing.T) {
	p := DefaultParams()
	p.Bias = 0.002
	p.PCFRadius = 3
	p.PCFSamples = 8
	p.MapSize = 1024

	for _, m := range []Method{MethodSM, MethodPCF} {
		p.Method = m
		slot := PackTechnique(p)
		assert.InDelta(t, 0.002, slot[0], 1e-7, m.String())
		assert.InDelta(t, 3, slot[1], 1e-6, m.String())
		assert.InDelta(t, 8, slot[2], 1e-6, m.String())
		assert.InDelta(t, 1024, slot[3], 1e-6, m.String())
	}
}

func TestPackTechniquePCSS(t *testing.T) {
	p := DefaultParams()
	p.Method = MethodPCSS
	p.Bias = 0.001
	p.PCSSLightSize = 0.08
	p.PCSSBlockerSamples = 8
	p.MapSize = 2048

	slot := PackTechnique(p)
	assert.InDelta(t, 0.001, slot[0], 1e-7)
	assert.InDelta(t, 0.08, slot[1], 1e-6)
	assert.InDelta(t, 8, slot[2], 1e-6)
	assert.InDelta(t, 2048, slot[3], 1e-6)
}

func TestPackTechniqueVSM(t *testing.T) {
	p := DefaultParams()
	p.Method = MethodVSM
	p.VSMMinVariance = 5e-4
	p.VSMLightBleedReduction = 0.3

	slot := PackTechnique(p)
	assert.InDelta(t, 5e-4, slot[0], 1e-9)
	assert.InDelta(t, 0.3, slot[1], 1e-7)
	assert.Equal(t, float32(0), slot[2])
	assert.Equal(t, float32(0), slot[3])
}

func TestPackCameraPosCarriesStrengthInW(t *testing.T) {
	v := PackCameraPos([3]float32{1, 2, 3}, 1.5)
	assert.Equal(t, [4]float32{1, 2, 3, 1.5}, v)
}

func TestFrameUniformsLayout(t *testing.T) {
	assert.Equal(t, uintptr(FrameUniformsSize), unsafe.Sizeof(FrameUniforms{}))
	assert.Equal(t, FrameUniformsSize, len((&FrameUniforms{}).Bytes()))
	assert.Equal(t, BlurUniformsSize, len((&BlurUniforms{}).Bytes()))
}

func TestFrameUniformsBytesRoundTripPerField(t *testing.T) {
	u := FrameUniforms{}
	for i := range 16 {
		u.Model[i] = float32(i)
		u.ViewProj[i] = float32(100 + i)
		u.LightViewProj[i] = float32(200 + i)
	}
	u.LightDir = [4]float32{-0.4, -1, -0.35, 0}
	u.CameraPos = [4]float32{3, 4, 5, 1.5}
	u.Technique = [4]float32{0.002, 0.05, 8, 2048}

	raw := u.Bytes()
	require.Len(t, raw, FrameUniformsSize)

	readF32 := func(offset int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(raw[offset:]))
	}
	for i := range 16 {
		assert.Equal(t, u.Model[i], readF32(i*4), "model lane %d", i)
		assert.Equal(t, u.ViewProj[i], readF32(64+i*4), "view_proj lane %d", i)
		assert.Equal(t, u.LightViewProj[i], readF32(128+i*4), "light_view_proj lane %d", i)
	}
	for i := range 4 {
		assert.Equal(t, u.LightDir[i], readF32(192+i*4), "light_dir lane %d", i)
		assert.Equal(t, u.CameraPos[i], readF32(208+i*4), "camera_pos lane %d", i)
		assert.Equal(t, u.Technique[i], readF32(224+i*4), "technique lane %d", i)
	}
}
