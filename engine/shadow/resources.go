package shadow

import (
	"fmt"

	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/renderer"
	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// ResourceSet owns every GPU resource the shadow frame graph allocates: the
// shadow depth texture, the moment ping-pong pair for VSM, the two samplers,
// and the bind groups wiring them into the lit and blur programs. The two
// samplers live for the set's whole lifetime; textures and bind groups are
// rebuilt when the Reconciler demands it.
type ResourceSet struct {
	r   renderer.Renderer
	cfg Configuration

	depthView *wgpu.TextureView
	depthTex  *wgpu.Texture

	// VSM ping-pong: capture writes A, blur H reads A into B, blur V reads B
	// back into A. Single-pass blur stops after H and the lit pass samples B.
	momentViewA, momentViewB *wgpu.TextureView
	momentTexA, momentTexB   *wgpu.Texture

	comparisonSampler *wgpu.Sampler
	linearSampler     *wgpu.Sampler

	litProvider  bind_group_provider.BindGroupProvider
	blurHSet     bind_group_provider.BindGroupProvider
	blurVSet     bind_group_provider.BindGroupProvider
}

// NewResourceSet creates a ResourceSet and its long-lived samplers.
// Panics if r is nil.
//
// Parameters:
//   - r: the renderer that allocates GPU resources
//
// Returns:
//   - *ResourceSet: the set with samplers created, no textures yet
//   - error: a ResourceAllocationError if sampler creation fails
func NewResourceSet(r renderer.Renderer) (*ResourceSet, error) {
	if r == nil {
		panic("shadow: ResourceSet requires a non-nil renderer")
	}

	comparison, err := r.CreateComparisonSampler()
	if err != nil {
		return nil, err
	}
	linear, err := r.CreateLinearSampler()
	if err != nil {
		comparison.Release()
		return nil, err
	}

	return &ResourceSet{
		r:                 r,
		comparisonSampler: comparison,
		linearSampler:     linear,
	}, nil
}

// Allocate creates the textures the configuration requires. On failure the
// previously allocated textures stay valid, so a rejected map size grow rolls
// back to the last working configuration.
//
// Parameters:
//   - cfg: the configuration to allocate for
//
// Returns:
//   - error: a ResourceAllocationError on failure (previous textures kept)
func (s *ResourceSet) Allocate(cfg Configuration) error {
	depthView, depthTex, err := s.r.CreateShadowDepthTexture(cfg.MapSize, cfg.MapSize)
	if err != nil {
		return fmt.Errorf("shadow map %d: %w", cfg.MapSize, err)
	}

	var momentViewA, momentViewB *wgpu.TextureView
	var momentTexA, momentTexB *wgpu.Texture
	if usesMoments(cfg.Method) {
		momentViewA, momentTexA, err = s.r.CreateMomentTexture(cfg.MapSize, cfg.MapSize)
		if err == nil {
			momentViewB, momentTexB, err = s.r.CreateMomentTexture(cfg.MapSize, cfg.MapSize)
		}
		if err != nil {
			if momentViewA != nil {
				momentViewA.Release()
				momentTexA.Release()
			}
			depthView.Release()
			depthTex.Release()
			return fmt.Errorf("moment map %d: %w", cfg.MapSize, err)
		}
	}

	// New allocations succeeded; retire the old generation.
	s.releaseTextures()
	s.depthView, s.depthTex = depthView, depthTex
	s.momentViewA, s.momentTexA = momentViewA, momentTexA
	s.momentViewB, s.momentTexB = momentViewB, momentTexB
	s.cfg = cfg
	return nil
}

// BuildBindGroups recreates the bind groups referencing the current textures:
// the lit pass set-1 group for the active technique and, for VSM, the two
// blur dispatch groups with their direction uniforms.
//
// Parameters:
//   - pipes: the pipeline set whose parsed layouts drive group creation
//   - cfg: the active configuration
//
// Returns:
//   - error: an error if bind group creation fails
func (s *ResourceSet) BuildBindGroups(pipes *PipelineSet, cfg Configuration) error {
	s.releaseBindGroups()

	fs := pipes.LitFragmentShader(cfg.Method)
	desc := fs.BindGroupLayoutDescriptor(1)

	var opts []bind_group_provider.BindGroupProviderOption
	switch captureKindOf(cfg.Method) {
	case captureMoments:
		opts = []bind_group_provider.BindGroupProviderOption{
			bind_group_provider.WithTextureView(0, s.MomentReadView(cfg.SinglePassBlur)),
			bind_group_provider.WithSampler(1, s.linearSampler),
		}
	default:
		opts = []bind_group_provider.BindGroupProviderOption{
			bind_group_provider.WithTextureView(0, s.depthView),
			bind_group_provider.WithSampler(1, s.comparisonSampler),
		}
		// PCSS additionally reads raw depth for the blocker search.
		if len(desc.Entries) > 2 {
			opts = append(opts, bind_group_provider.WithSampler(2, s.linearSampler))
		}
	}

	lit := bind_group_provider.NewBindGroupProvider("Shadow Resources "+cfg.Method.String(), opts...)
	if err := s.r.InitBindGroup(lit, desc, nil, nil); err != nil {
		return fmt.Errorf("shadow resource bind group: %w", err)
	}
	s.litProvider = lit

	if usesMoments(cfg.Method) {
		if err := s.buildBlurBindGroups(pipes, cfg); err != nil {
			return err
		}
	}
	return nil
}

// buildBlurBindGroups wires the ping-pong blur dispatches and uploads their
// direction uniforms in one staged write.
func (s *ResourceSet) buildBlurBindGroups(pipes *PipelineSet, cfg Configuration) error {
	desc := pipes.BlurShader().BindGroupLayoutDescriptor(0)
	texel := 1.0 / float32(cfg.MapSize)

	blurH := bind_group_provider.NewBindGroupProvider("Shadow Blur H",
		bind_group_provider.WithTextureView(0, s.momentViewA),
		bind_group_provider.WithTextureView(1, s.momentViewB),
	)
	if err := s.r.InitBindGroup(blurH, desc, nil, nil); err != nil {
		return fmt.Errorf("blur h bind group: %w", err)
	}
	s.blurHSet = blurH

	blurV := bind_group_provider.NewBindGroupProvider("Shadow Blur V",
		bind_group_provider.WithTextureView(0, s.momentViewB),
		bind_group_provider.WithTextureView(1, s.momentViewA),
	)
	if err := s.r.InitBindGroup(blurV, desc, nil, nil); err != nil {
		return fmt.Errorf("blur v bind group: %w", err)
	}
	s.blurVSet = blurV

	h := BlurUniforms{Direction: [2]float32{1, 0}, TexelSize: [2]float32{texel, texel}}
	v := BlurUniforms{Direction: [2]float32{0, 1}, TexelSize: [2]float32{texel, texel}}
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: blurH, Binding: 2, Offset: 0, Data: h.Bytes()},
		{Provider: blurV, Binding: 2, Offset: 0, Data: v.Bytes()},
	})
	return nil
}

// DepthView returns the shadow depth texture view for capture passes.
func (s *ResourceSet) DepthView() *wgpu.TextureView {
	return s.depthView
}

// MomentCaptureView returns the moment texture the capture pass renders into.
func (s *ResourceSet) MomentCaptureView() *wgpu.TextureView {
	return s.momentViewA
}

// MomentReadView returns the moment texture the lit pass samples: texture B
// after a single horizontal blur, texture A after the full separable pair.
func (s *ResourceSet) MomentReadView(singlePassBlur bool) *wgpu.TextureView {
	if singlePassBlur {
		return s.momentViewB
	}
	return s.momentViewA
}

// LitProvider returns the set-1 bind group bundle for the active technique.
func (s *ResourceSet) LitProvider() bind_group_provider.BindGroupProvider {
	return s.litProvider
}

// BlurHProvider returns the horizontal blur dispatch bundle (VSM only).
func (s *ResourceSet) BlurHProvider() bind_group_provider.BindGroupProvider {
	return s.blurHSet
}

// BlurVProvider returns the vertical blur dispatch bundle (VSM only).
func (s *ResourceSet) BlurVProvider() bind_group_provider.BindGroupProvider {
	return s.blurVSet
}

// Release frees every GPU resource the set holds.
func (s *ResourceSet) Release() {
	s.releaseBindGroups()
	s.releaseTextures()
	if s.comparisonSampler != nil {
		s.comparisonSampler.Release()
		s.comparisonSampler = nil
	}
	if s.linearSampler != nil {
		s.linearSampler.Release()
		s.linearSampler = nil
	}
}

func (s *ResourceSet) releaseTextures() {
	for _, view := range []*wgpu.TextureView{s.depthView, s.momentViewA, s.momentViewB} {
		if view != nil {
			view.Release()
		}
	}
	for _, tex := range []*wgpu.Texture{s.depthTex, s.momentTexA, s.momentTexB} {
		if tex != nil {
			tex.Release()
		}
	}
	s.depthView, s.depthTex = nil, nil
	s.momentViewA, s.momentTexA = nil, nil
	s.momentViewB, s.momentTexB = nil, nil
}

// releaseBindGroups frees the provider-owned resources (bind groups, layouts,
// uniform buffers) while keeping the shared texture views and samplers alive;
// those are owned by the set itself and released by releaseTextures/Release.
func (s *ResourceSet) releaseBindGroups() {
	for _, p := range []bind_group_provider.BindGroupProvider{s.litProvider, s.blurHSet, s.blurVSet} {
		if p == nil {
			continue
		}
		p.SetTextureViews(map[int]*wgpu.TextureView{})
		p.SetSamplers(map[int]*wgpu.Sampler{})
		p.Release()
	}
	s.litProvider, s.blurHSet, s.blurVSet = nil, nil, nil
}
