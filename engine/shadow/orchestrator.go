package shadow

import (
	"fmt"
	"log"
	"sync"

	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/renderer"
	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pass is one step of a frame plan.
type Pass int

const (
	// PassCapture renders the scene from the light into the shadow target.
	PassCapture Pass = iota
	// PassBlurH runs the horizontal half of the separable moment blur.
	PassBlurH
	// PassBlurV runs the vertical half of the separable moment blur.
	PassBlurV
	// PassLit renders the scene to the surface with shadows applied.
	PassLit
)

// PassPlan returns the ordered passes one frame executes for a method.
// Depth-comparison techniques capture and shade; VSM inserts the separable
// blur between them, or only its horizontal half in single-pass mode.
//
// Parameters:
//   - m: the shadow method
//   - singlePassBlur: when true, VSM blurs horizontally only
//
// Returns:
//   - []Pass: the passes in execution order
func PassPlan(m Method, singlePassBlur bool) []Pass {
	if !usesMoments(m) {
		return []Pass{PassCapture, PassLit}
	}
	if singlePassBlur {
		return []Pass{PassCapture, PassBlurH, PassLit}
	}
	return []Pass{PassCapture, PassBlurH, PassBlurV, PassLit}
}

// Drawer issues the scene's draw calls for a pass. The orchestrator decides
// which pipeline runs and which shared bind group rides along; the drawer
// walks its objects and submits them.
type Drawer interface {
	// DrawCapture submits every shadow caster through the capture pipeline.
	DrawCapture(pipelineKey string) error

	// DrawLit submits every visible object through the lit pipeline.
	// shadowGroup is the set-1 bundle holding the shadow map and samplers.
	DrawLit(pipelineKey string, shadowGroup bind_group_provider.BindGroupProvider) error
}

// Orchestrator drives the shadow frame graph. It owns the pipeline and
// resource sets, applies parameter changes between frames through the
// reconciler, and executes the pass plan each frame.
//
// Parameter changes submitted mid-frame are deferred to the start of the next
// frame so a frame never mixes two configurations.
type Orchestrator struct {
	r     renderer.Renderer
	pipes *PipelineSet
	res   *ResourceSet

	params         Params
	singlePassBlur bool
	cfg            Configuration

	// mu guards the staged pointers and the committed params copy. Staging
	// happens on caller goroutines (the engine's tick loop reaches SetParams)
	// while applyPending drains on the render goroutine.
	mu              sync.Mutex
	pending         *Params
	pendingBlurMode *bool
}

// NewOrchestrator builds the pipeline set, allocates resources for the
// initial parameters, and wires the bind groups.
//
// Parameters:
//   - r: the renderer
//   - opts: optional initial parameters and blur mode
//
// Returns:
//   - *Orchestrator: the ready orchestrator
//   - error: a pipeline or allocation error
func NewOrchestrator(r renderer.Renderer, opts ...OrchestratorOption) (*Orchestrator, error) {
	o := &Orchestrator{
		r:      r,
		params: DefaultParams(),
	}
	for _, opt := range opts {
		opt(o)
	}

	normalized, err := o.params.Normalize()
	if err != nil {
		return nil, err
	}
	o.params = normalized
	o.cfg = ConfigurationOf(o.params, o.singlePassBlur)

	o.pipes = NewPipelineSet(r)
	if err := o.pipes.Build(); err != nil {
		return nil, err
	}

	o.res, err = NewResourceSet(r)
	if err != nil {
		return nil, err
	}
	if err := o.res.Allocate(o.cfg); err != nil {
		o.res.Release()
		return nil, err
	}
	if err := o.res.BuildBindGroups(o.pipes, o.cfg); err != nil {
		o.res.Release()
		return nil, err
	}
	return o, nil
}

// SetParams stages new shadow parameters. Values are normalized immediately
// so the caller sees clamping errors right away, but GPU-side changes land at
// the start of the next frame.
//
// Parameters:
//   - p: the requested parameters
//
// Returns:
//   - error: an error if the method is invalid
func (o *Orchestrator) SetParams(p Params) error {
	normalized, err := p.Normalize()
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.pending = &normalized
	o.mu.Unlock()
	return nil
}

// SetSinglePassBlur stages a blur mode change, applied at the next frame.
func (o *Orchestrator) SetSinglePassBlur(enabled bool) {
	o.mu.Lock()
	o.pendingBlurMode = &enabled
	o.mu.Unlock()
}

// Params returns the parameters in effect for the current frame.
func (o *Orchestrator) Params() Params {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.params
}

// Technique returns the packed per-method uniform slot for the active
// parameters, ready for FrameUniforms.
func (o *Orchestrator) Technique() [4]float32 {
	return PackTechnique(o.params)
}

// Strength returns the active shadow strength.
func (o *Orchestrator) Strength() float32 {
	return o.params.Strength
}

// FrameBindGroupLayout returns the per-object frame uniform layout scenes
// create their object bind groups against.
func (o *Orchestrator) FrameBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return o.pipes.FrameBindGroupLayout()
}

// RenderFrame applies any staged parameter change and executes the pass plan:
// capture, optional blur dispatches, lit pass, present.
//
// Parameters:
//   - drawer: the scene's draw call emitter
//
// Returns:
//   - error: the first pass error encountered
func (o *Orchestrator) RenderFrame(drawer Drawer) error {
	o.applyPending()

	for _, pass := range PassPlan(o.params.Method, o.singlePassBlur) {
		var err error
		switch pass {
		case PassCapture:
			err = o.runCapture(drawer)
		case PassBlurH, PassBlurV:
			err = o.runBlur(pass)
		case PassLit:
			err = o.runLit(drawer)
		}
		if err != nil {
			return err
		}
	}
	o.r.Present()
	return nil
}

// applyPending folds staged changes into the active configuration, driving
// reallocation and bind group rebuilds through the reconciler. A failed
// texture reallocation keeps the previous map size and logs the rejection
// instead of failing the frame.
func (o *Orchestrator) applyPending() {
	o.mu.Lock()
	pending := o.pending
	pendingBlur := o.pendingBlurMode
	o.pending = nil
	o.pendingBlurMode = nil
	o.mu.Unlock()

	if pending == nil && pendingBlur == nil {
		return
	}

	newParams := o.params
	if pending != nil {
		newParams = *pending
	}
	newBlur := o.singlePassBlur
	if pendingBlur != nil {
		newBlur = *pendingBlur
	}

	newCfg := ConfigurationOf(newParams, newBlur)
	actions := Reconcile(o.cfg, newCfg)

	if actions.SwitchPipeline {
		log.Printf("[Shadow] switching method %s -> %s", o.cfg.Method, newCfg.Method)
	}

	if actions.ReallocResources {
		if err := o.res.Allocate(newCfg); err != nil {
			log.Printf("[Shadow] resource reallocation rejected, keeping %dx%d: %v", o.cfg.MapSize, o.cfg.MapSize, err)
			newParams.MapSize = o.cfg.MapSize
			newCfg = ConfigurationOf(newParams, newBlur)
			if newCfg == o.cfg {
				o.commit(newParams, newBlur, newCfg)
				return
			}
			actions = Reconcile(o.cfg, newCfg)
			if actions.ReallocResources {
				// Method change still needs new targets at the old size.
				if err := o.res.Allocate(newCfg); err != nil {
					log.Printf("[Shadow] resource reallocation failed, staying on %s: %v", o.cfg.Method, err)
					return
				}
			}
		}
	}

	if actions.RebuildBindGroups {
		if err := o.res.BuildBindGroups(o.pipes, newCfg); err != nil {
			log.Printf("[Shadow] bind group rebuild failed, staying on %s: %v", o.cfg.Method, err)
			return
		}
	}

	o.commit(newParams, newBlur, newCfg)
}

// commit publishes the applied configuration. Only params needs the lock;
// the blur mode and configuration are read by the render goroutine alone.
func (o *Orchestrator) commit(p Params, blur bool, cfg Configuration) {
	o.mu.Lock()
	o.params = p
	o.mu.Unlock()
	o.singlePassBlur = blur
	o.cfg = cfg
}

// runCapture records the light-view pass into the shadow target.
func (o *Orchestrator) runCapture(drawer Drawer) error {
	if err := o.r.BeginCaptureFrame(); err != nil {
		return fmt.Errorf("capture frame: %w", err)
	}

	key := DepthPipelineKey
	if captureKindOf(o.params.Method) == captureMoments {
		key = MomentPipelineKey
		o.r.BeginMomentPass(o.res.MomentCaptureView(), o.res.DepthView())
	} else {
		o.r.BeginDepthPass(o.res.DepthView())
	}

	err := drawer.DrawCapture(key)
	o.r.EndCapturePass()
	o.r.EndCaptureFrame()
	return err
}

// runBlur dispatches one half of the separable moment blur.
func (o *Orchestrator) runBlur(pass Pass) error {
	provider := o.res.BlurHProvider()
	if pass == PassBlurV {
		provider = o.res.BlurVProvider()
	}

	if err := o.r.BeginComputeFrame(); err != nil {
		return fmt.Errorf("blur frame: %w", err)
	}
	groups := uint32((o.cfg.MapSize + blurWorkgroupSize - 1) / blurWorkgroupSize)
	o.r.DispatchCompute(BlurPipelineKey, provider, [3]uint32{groups, groups, 1})
	o.r.EndComputeFrame()
	return nil
}

// blurWorkgroupSize matches @workgroup_size in the blur program.
const blurWorkgroupSize = 8

// runLit records the camera-view pass to the surface.
func (o *Orchestrator) runLit(drawer Drawer) error {
	if err := o.r.BeginFrame(); err != nil {
		return fmt.Errorf("lit frame: %w", err)
	}
	err := drawer.DrawLit(o.pipes.LitKey(o.params.Method), o.res.LitProvider())
	o.r.EndFrame()
	return err
}

// Release frees the orchestrator's GPU resources.
func (o *Orchestrator) Release() {
	if o.res != nil {
		o.res.Release()
		o.res = nil
	}
}
