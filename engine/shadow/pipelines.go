package shadow

import (
	"fmt"

	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/renderer"
	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/renderer/pipeline"
	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline cache keys for the method-independent programs.
const (
	DepthPipelineKey  = "shadow_depth"
	MomentPipelineKey = "shadow_moment"
	BlurPipelineKey   = "shadow_blur"
)

// captureKind identifies what the capture pass produces for a technique.
type captureKind int

const (
	// captureDepth renders a bare depth map (SM, PCF, PCSS).
	captureDepth captureKind = iota
	// captureMoments renders depth moments into a color target (VSM).
	captureMoments
)

// resourceKind classifies a lit-pass set-1 binding for contract validation.
type resourceKind int

const (
	resDepthTexture resourceKind = iota
	resFloatTexture
	resComparisonSampler
	resFilteringSampler
)

// resourceExpectation is one binding of a technique's resource contract.
type resourceExpectation struct {
	binding int
	kind    resourceKind
}

// techniqueDescriptor declares everything method-specific about a technique:
// its lit program, what the capture pass produces, and the set-1 resource
// contract the parsed shader layout must satisfy. Adding a technique is one
// entry here plus one WGSL program.
type techniqueDescriptor struct {
	litKey       string
	litSource    *string
	capture      captureKind
	needsPoisson bool
	expects      []resourceExpectation
}

var techniqueTable = map[Method]techniqueDescriptor{
	MethodSM: {
		litKey:    "lit_sm",
		litSource: &litSMWGSL,
		capture:   captureDepth,
		expects: []resourceExpectation{
			{0, resDepthTexture},
			{1, resComparisonSampler},
		},
	},
	MethodPCF: {
		litKey:       "lit_pcf",
		litSource:    &litPCFWGSL,
		capture:      captureDepth,
		needsPoisson: true,
		expects: []resourceExpectation{
			{0, resDepthTexture},
			{1, resComparisonSampler},
		},
	},
	MethodPCSS: {
		litKey:       "lit_pcss",
		litSource:    &litPCSSWGSL,
		capture:      captureDepth,
		needsPoisson: true,
		expects: []resourceExpectation{
			{0, resDepthTexture},
			{1, resComparisonSampler},
			{2, resFilteringSampler},
		},
	},
	MethodVSM: {
		litKey:    "lit_vsm",
		litSource: &litVSMWGSL,
		capture:   captureMoments,
		expects: []resourceExpectation{
			{0, resFloatTexture},
			{1, resFilteringSampler},
		},
	},
}

// PipelineSet owns the shader programs and GPU pipelines of the shadow frame
// graph. All four technique pipelines are registered up front so switching
// methods at runtime is a cache key selection, not a rebuild.
type PipelineSet struct {
	r renderer.Renderer

	litFragments map[Method]shader.Shader
	blurShader   shader.Shader
}

// NewPipelineSet creates a PipelineSet bound to the given renderer.
// Panics if r is nil.
//
// Parameters:
//   - r: the renderer pipelines are registered with
//
// Returns:
//   - *PipelineSet: the set, not yet built
func NewPipelineSet(r renderer.Renderer) *PipelineSet {
	if r == nil {
		panic("shadow: PipelineSet requires a non-nil renderer")
	}
	return &PipelineSet{
		r:            r,
		litFragments: make(map[Method]shader.Shader),
	}
}

// Build parses every WGSL program, validates each technique's set-1 resource
// contract against the parsed layout, and registers all pipelines with the
// renderer: the depth-only capture pipeline, the moment capture pipeline, the
// blur compute pipeline, and one lit pipeline per technique.
//
// Returns:
//   - error: a PipelineCompileError naming the failing program, or nil
func (s *PipelineSet) Build() error {
	poisson := PoissonTableWGSL()

	// Depth capture: vertex-only, front-face culling plus depth bias against acne.
	depthVS := shader.NewShader("shadow_depth_vs", shader.ShaderTypeVertex, depthWGSL,
		shader.WithInclude("frame_uniforms", frameUniformsWGSL),
	)
	depthPipe := pipeline.NewPipeline(DepthPipelineKey, pipeline.PipelineTypeRender,
		pipeline.WithVertexShader(depthVS),
		pipeline.WithCullMode(wgpu.CullModeFront),
		pipeline.WithDepthBias(2, 2.0),
	)
	if err := s.r.RegisterDepthPipeline(depthPipe); err != nil {
		return err
	}

	// Moment capture: renders into the RGBA16Float moment target at sample count 1.
	momentVS := shader.NewShader("shadow_moment_vs", shader.ShaderTypeVertex, momentWGSL,
		shader.WithInclude("frame_uniforms", frameUniformsWGSL),
	)
	momentFS := shader.NewShader("shadow_moment_fs", shader.ShaderTypeFragment, momentWGSL,
		shader.WithInclude("frame_uniforms", frameUniformsWGSL),
	)
	momentPipe := pipeline.NewPipeline(MomentPipelineKey, pipeline.PipelineTypeRender,
		pipeline.WithVertexShader(momentVS),
		pipeline.WithFragmentShader(momentFS),
		pipeline.WithColorFormat(wgpu.TextureFormatRGBA16Float),
		pipeline.WithSampleCount(1),
		pipeline.WithDepthFormat(wgpu.TextureFormatDepth32Float),
	)

	// Separable Gaussian blur over the moment textures.
	blurCS := shader.NewShader("shadow_blur_cs", shader.ShaderTypeCompute, blurWGSL)
	s.blurShader = blurCS
	blurPipe := pipeline.NewPipeline(BlurPipelineKey, pipeline.PipelineTypeCompute,
		pipeline.WithComputeShader(blurCS),
	)

	pipelines := []pipeline.Pipeline{momentPipe, blurPipe}

	for method, desc := range techniqueTable {
		opts := []shader.ShaderBuilderOption{
			shader.WithInclude("frame_uniforms", frameUniformsWGSL),
			shader.WithInclude("lit_stage", litStageWGSL),
		}
		if desc.needsPoisson {
			opts = append(opts, shader.WithInclude("poisson", poisson))
		}

		vs := shader.NewShader(desc.litKey+"_vs", shader.ShaderTypeVertex, *desc.litSource, opts...)
		fs := shader.NewShader(desc.litKey+"_fs", shader.ShaderTypeFragment, *desc.litSource, opts...)

		if err := validateResourceContract(method, desc, fs); err != nil {
			return err
		}
		s.litFragments[method] = fs

		pipelines = append(pipelines, pipeline.NewPipeline(desc.litKey, pipeline.PipelineTypeRender,
			pipeline.WithVertexShader(vs),
			pipeline.WithFragmentShader(fs),
			pipeline.WithCullMode(wgpu.CullModeBack),
		))
	}

	return s.r.RegisterPipelines(pipelines...)
}

// LitKey returns the pipeline cache key of a technique's lit program.
func (s *PipelineSet) LitKey(m Method) string {
	return techniqueTable[m].litKey
}

// LitFragmentShader returns the parsed lit fragment shader for a technique.
// The resource set uses its group-1 layout descriptor when building the
// shadow bind group.
func (s *PipelineSet) LitFragmentShader(m Method) shader.Shader {
	return s.litFragments[m]
}

// BlurShader returns the parsed blur compute shader.
func (s *PipelineSet) BlurShader() shader.Shader {
	return s.blurShader
}

// FrameBindGroupLayout returns the group-0 layout of the lit programs, the
// per-object frame uniform block. Every technique shares it, so the layout is
// taken from any parsed lit shader.
func (s *PipelineSet) FrameBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return s.litFragments[MethodSM].BindGroupLayoutDescriptor(0)
}

// captureKindOf returns what the capture pass produces for a method.
func captureKindOf(m Method) captureKind {
	return techniqueTable[m].capture
}

// validateResourceContract checks the parsed group-1 layout of a lit fragment
// shader against the technique's declared resource expectations. A mismatch
// means the WGSL bindings drifted from the resource set wiring, which would
// otherwise surface as an opaque device error at bind time.
func validateResourceContract(method Method, desc techniqueDescriptor, fs shader.Shader) error {
	layout := fs.BindGroupLayoutDescriptor(1)

	fail := func(format string, args ...any) error {
		return &renderer.PipelineCompileError{
			PipelineKey: desc.litKey,
			Err:         fmt.Errorf("%s resource contract: %s", method, fmt.Sprintf(format, args...)),
		}
	}

	if len(layout.Entries) != len(desc.expects) {
		return fail("expected %d set-1 bindings, shader declares %d", len(desc.expects), len(layout.Entries))
	}

	byBinding := make(map[int]wgpu.BindGroupLayoutEntry, len(layout.Entries))
	for _, e := range layout.Entries {
		byBinding[int(e.Binding)] = e
	}

	for _, want := range desc.expects {
		entry, ok := byBinding[want.binding]
		if !ok {
			return fail("missing binding %d", want.binding)
		}
		switch want.kind {
		case resDepthTexture:
			if entry.Texture.SampleType != wgpu.TextureSampleTypeDepth {
				return fail("binding %d must be a depth texture", want.binding)
			}
		case resFloatTexture:
			if entry.Texture.SampleType != wgpu.TextureSampleTypeFloat {
				return fail("binding %d must be a float texture", want.binding)
			}
		case resComparisonSampler:
			if entry.Sampler.Type != wgpu.SamplerBindingTypeComparison {
				return fail("binding %d must be a comparison sampler", want.binding)
			}
		case resFilteringSampler:
			if entry.Sampler.Type != wgpu.SamplerBindingTypeFiltering {
				return fail("binding %d must be a filtering sampler", want.binding)
			}
		}
	}

	return nil
}
