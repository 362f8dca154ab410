package shadow

import (
	"testing"

	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/renderer"
	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseLitFragment runs the WGSL pre-processor and parser for a technique's
// lit program the same way Build does, without touching the GPU.
func parseLitFragment(t *testing.T, m Method) shader.Shader {
	t.Helper()
	desc, ok := techniqueTable[m]
	require.True(t, ok, m.String())

	opts := []shader.ShaderBuilderOption{
		shader.WithInclude("frame_uniforms", frameUniformsWGSL),
		shader.WithInclude("lit_stage", litStageWGSL),
	}
	if desc.needsPoisson {
		opts = append(opts, shader.WithInclude("poisson", PoissonTableWGSL()))
	}
	return shader.NewShader(desc.litKey+"_fs", shader.ShaderTypeFragment, *desc.litSource, opts...)
}

func TestTechniqueTableCoversEveryMethod(t *testing.T) {
	assert.Len(t, techniqueTable, methodCount)
	for m := MethodSM; m <= MethodVSM; m++ {
		desc, ok := techniqueTable[m]
		require.True(t, ok, m.String())
		assert.NotEmpty(t, desc.litKey, m.String())
		require.NotNil(t, desc.litSource, m.String())
		assert.NotEmpty(t, *desc.litSource, m.String())
	}
}

func TestTechniqueLitKeysAreUnique(t *testing.T) {
	seen := make(map[string]Method)
	for m, desc := range techniqueTable {
		prev, dup := seen[desc.litKey]
		assert.False(t, dup, "%s and %s share key %q", m, prev, desc.litKey)
		seen[desc.litKey] = m
	}
}

func TestCaptureKindPerMethod(t *testing.T) {
	assert.Equal(t, captureDepth, captureKindOf(MethodSM))
	assert.Equal(t, captureDepth, captureKindOf(MethodPCF))
	assert.Equal(t, captureDepth, captureKindOf(MethodPCSS))
	assert.Equal(t, captureMoments, captureKindOf(MethodVSM))
}

func TestLitProgramsSatisfyTheirResourceContracts(t *testing.T) {
	for m := MethodSM; m <= MethodVSM; m++ {
		fs := parseLitFragment(t, m)
		err := validateResourceContract(m, techniqueTable[m], fs)
		assert.NoError(t, err, m.String())
	}
}

func TestValidateResourceContractCatchesBindingDrift(t *testing.T) {
	// The SM program declares two set-1 bindings; holding it to the PCSS
	// contract (three bindings) must fail with a pipeline error.
	fs := parseLitFragment(t, MethodSM)
	err := validateResourceContract(MethodSM, techniqueTable[MethodPCSS], fs)
	require.Error(t, err)

	var compileErr *renderer.PipelineCompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Contains(t, err.Error(), "resource contract")
}

func TestLitProgramsShareFrameUniformLayout(t *testing.T) {
	// Every technique's group 0 is the same frame uniform block, which is what
	// lets scenes build one object bind group valid under all four pipelines.
	base := parseLitFragment(t, MethodSM).BindGroupLayoutDescriptor(0)
	require.Len(t, base.Entries, 1)

	for m := MethodPCF; m <= MethodVSM; m++ {
		layout := parseLitFragment(t, m).BindGroupLayoutDescriptor(0)
		require.Len(t, layout.Entries, 1, m.String())
		assert.Equal(t, base.Entries[0].Binding, layout.Entries[0].Binding, m.String())
		assert.Equal(t, base.Entries[0].Buffer.MinBindingSize, layout.Entries[0].Buffer.MinBindingSize, m.String())
	}
}

func TestFrameUniformBlockMatchesGoStruct(t *testing.T) {
	layout := parseLitFragment(t, MethodPCF).BindGroupLayoutDescriptor(0)
	require.Len(t, layout.Entries, 1)
	assert.Equal(t, uint64(FrameUniformsSize), layout.Entries[0].Buffer.MinBindingSize)
}
