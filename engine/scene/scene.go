package scene

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/NoNameAlien/shadow-algorithms-sub000/common"
	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/camera"
	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/light"
	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/model"
	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/renderer"
	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/renderer/bind_group_provider"
	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/shadow"
	"github.com/cogentcore/webgpu/wgpu"
)

// scene implements the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam      camera.Camera
	lightSrc light.DirectionalLight
	r        renderer.Renderer

	// frameLayout is the parsed group-0 layout of the lit programs, used to
	// create each object's frame uniform bind group.
	frameLayout wgpu.BindGroupLayoutDescriptor

	registry map[uint64]*sceneObject
	nextID   uint64

	// Pre-allocated slices reused each frame to avoid per-frame allocations.
	writePool          []bind_group_provider.BufferWrite
	drawBindGroupsPool []bind_group_provider.BindGroupProvider

	// prepPool manages a bounded set of reusable goroutines for the parallel
	// CPU prep phase of PrepareFrame. Workers persist across frames.
	prepPool    worker.DynamicWorkerPool
	prepWorkers int

	viewProj      [16]float32
	lightViewProj [16]float32
}

// Scene owns a set of drawable objects together with the camera and
// directional light that frame them. Each frame it packs per-object uniforms
// on the CPU, stages them in one coalesced write, and emits draw calls for
// the capture and lit passes on behalf of the frame orchestrator.
type Scene interface {
	// Name returns the scene's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Active reports whether the scene is rendered.
	//
	// Returns:
	//   - bool: true if active
	Active() bool

	// SetActive sets whether the scene is rendered.
	//
	// Parameters:
	//   - active: true to render the scene
	SetActive(active bool)

	// Camera returns the scene's camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Light returns the scene's directional light.
	//
	// Returns:
	//   - light.DirectionalLight: the light
	Light() light.DirectionalLight

	// Renderer returns the scene's renderer.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// AddObject creates a drawable object from a mesh, uploads its vertex and
	// index buffers, and allocates its per-object uniform bind group.
	//
	// Parameters:
	//   - name: a label for the object
	//   - mesh: the geometry (must not be nil)
	//   - options: transform and shadow casting options
	//
	// Returns:
	//   - uint64: the object's id
	//   - error: an error if GPU allocation fails
	AddObject(name string, mesh *model.Mesh, options ...ObjectOption) (uint64, error)

	// RemoveObject releases an object's GPU resources and drops it from the
	// scene. Removing an unknown id is a no-op.
	//
	// Parameters:
	//   - id: the object id returned by AddObject
	RemoveObject(id uint64)

	// ObjectCount returns the number of objects in the scene.
	//
	// Returns:
	//   - int: the object count
	ObjectCount() int

	// SetTransform replaces an object's position, rotation, and scale.
	//
	// Parameters:
	//   - id: the object id
	//   - position: world position
	//   - rotation: Euler rotation in radians
	//   - scale: per-axis scale
	//
	// Returns:
	//   - error: an error if the id is unknown
	SetTransform(id uint64, position, rotation, scale [3]float32) error

	// PrepareFrame packs every object's frame uniforms in parallel, runs
	// frustum culling against the camera, and stages the uniform uploads in
	// one coalesced buffer write.
	//
	// Parameters:
	//   - technique: the packed per-method shadow uniform slot
	//   - strength: the shadow strength
	PrepareFrame(technique [4]float32, strength float32)

	// DrawCapture submits every shadow caster through the capture pipeline.
	//
	// Parameters:
	//   - pipelineKey: the capture pipeline cache key
	//
	// Returns:
	//   - error: the first draw error encountered
	DrawCapture(pipelineKey string) error

	// DrawLit submits every camera-visible object through the lit pipeline
	// with the shadow resource bundle bound at set 1.
	//
	// Parameters:
	//   - pipelineKey: the lit pipeline cache key
	//   - shadowGroup: the shadow map and sampler bundle
	//
	// Returns:
	//   - error: the first draw error encountered
	DrawLit(pipelineKey string, shadowGroup bind_group_provider.BindGroupProvider) error

	// Release frees the GPU resources of every object in the scene.
	Release()
}

var _ Scene = &scene{}
var _ shadow.Drawer = Scene(nil)

// NewScene creates a Scene with the given camera, light, and renderer. All
// three are required and NewScene panics if any is nil. frameLayout is the
// group-0 layout descriptor of the lit programs, obtained from the shadow
// orchestrator; each object's uniform bind group is created against it.
//
// Parameters:
//   - name: the scene's name
//   - cam: the camera (must not be nil)
//   - lightSrc: the directional light (must not be nil)
//   - r: the renderer (must not be nil)
//   - frameLayout: the lit programs' group-0 layout descriptor
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, lightSrc light.DirectionalLight, r renderer.Renderer, frameLayout wgpu.BindGroupLayoutDescriptor, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if lightSrc == nil {
		panic("scene: NewScene requires a non-nil DirectionalLight")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:                 &sync.RWMutex{},
		name:               name,
		active:             true,
		cam:                cam,
		lightSrc:           lightSrc,
		r:                  r,
		frameLayout:        frameLayout,
		registry:           make(map[uint64]*sceneObject),
		nextID:             1,
		prepWorkers:        max(runtime.NumCPU()-1, 1),
		drawBindGroupsPool: make([]bind_group_provider.BindGroupProvider, 0, 2),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the prep pool after options so WithPrepWorkers can override the default.
	s.prepPool = worker.NewDynamicWorkerPool(s.prepWorkers, 256, 1*time.Second)

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Light() light.DirectionalLight {
	return s.lightSrc
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) AddObject(name string, mesh *model.Mesh, options ...ObjectOption) (uint64, error) {
	if mesh == nil {
		return 0, fmt.Errorf("scene: AddObject requires a non-nil mesh")
	}

	obj := &sceneObject{
		name:        name,
		mesh:        mesh,
		scale:       [3]float32{1, 1, 1},
		castsShadow: true,
		visible:     true,
	}
	for _, option := range options {
		option(obj)
	}

	obj.provider = bind_group_provider.NewBindGroupProvider(name)
	if err := s.r.InitMeshBuffers(obj.provider, mesh.VertexBytes(), mesh.IndexBytes(), len(mesh.Indices)); err != nil {
		return 0, fmt.Errorf("scene: mesh buffers for %q: %w", name, err)
	}
	if err := s.r.InitBindGroup(obj.provider, s.frameLayout, nil, nil); err != nil {
		obj.provider.Release()
		return 0, fmt.Errorf("scene: bind group for %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.registry[id] = obj
	return id, nil
}

func (s *scene) RemoveObject(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if obj, ok := s.registry[id]; ok {
		obj.provider.Release()
		delete(s.registry, id)
	}
}

func (s *scene) ObjectCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) SetTransform(id uint64, position, rotation, scale [3]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.registry[id]
	if !ok {
		return fmt.Errorf("scene: unknown object id %d", id)
	}
	obj.position = position
	obj.rotation = rotation
	obj.scale = scale
	return nil
}

// PrepareFrame runs in two phases. Phase 1 fans per-object matrix and uniform
// packing out across the prep pool; a WaitGroup provides the per-frame
// barrier. Phase 2 coalesces every uniform upload into a single WriteBuffers
// call so the renderer mutex is taken once, not once per object.
func (s *scene) PrepareFrame(technique [4]float32, strength float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cam.ViewProjection(s.viewProj[:])
	s.lightSrc.ViewProjection(s.lightViewProj[:])
	frustum := common.ExtractFrustumFromMatrix(s.viewProj[:])
	lightDir := s.lightSrc.DirectionVec4()
	cameraPos := shadow.PackCameraPos(s.cam.Position(), strength)

	var wg sync.WaitGroup
	taskID := 0
	for _, obj := range s.registry {
		wg.Add(1)
		o := obj
		id := taskID
		taskID++
		s.prepPool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()

				common.BuildModelMatrix(o.modelMatrix[:],
					o.position[0], o.position[1], o.position[2],
					o.rotation[0], o.rotation[1], o.rotation[2],
					o.scale[0], o.scale[1], o.scale[2],
				)

				copy(o.uniforms.Model[:], o.modelMatrix[:])
				copy(o.uniforms.ViewProj[:], s.viewProj[:])
				copy(o.uniforms.LightViewProj[:], s.lightViewProj[:])
				o.uniforms.LightDir = lightDir
				o.uniforms.CameraPos = cameraPos
				o.uniforms.Technique = technique

				center := common.TransformPoint4(o.modelMatrix[:],
					o.mesh.BoundsCenter[0], o.mesh.BoundsCenter[1], o.mesh.BoundsCenter[2])
				radius := o.mesh.BoundsRadius * maxScale(o.scale)
				o.visible = frustum.ContainsSphere(center[0], center[1], center[2], radius)
				return nil, nil
			},
		})
	}
	wg.Wait()

	writes := s.writePool[:0]
	for _, obj := range s.registry {
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: obj.provider,
			Binding:  0,
			Offset:   0,
			Data:     obj.uniforms.Bytes(),
		})
	}
	s.writePool = writes
	if len(writes) > 0 {
		s.r.WriteBuffers(writes)
	}
}

// DrawCapture submits every caster regardless of camera visibility; an
// off-screen object still casts a shadow into the view.
func (s *scene) DrawCapture(pipelineKey string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, obj := range s.registry {
		if !obj.castsShadow {
			continue
		}
		groups := append(s.drawBindGroupsPool[:0], obj.provider)
		if err := s.r.CaptureDrawCall(pipelineKey, obj.provider, 1, groups); err != nil {
			return err
		}
	}
	return nil
}

func (s *scene) DrawLit(pipelineKey string, shadowGroup bind_group_provider.BindGroupProvider) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, obj := range s.registry {
		if !obj.visible {
			continue
		}
		groups := append(s.drawBindGroupsPool[:0], obj.provider, shadowGroup)
		if err := s.r.DrawCall(pipelineKey, obj.provider, 1, groups); err != nil {
			return err
		}
	}
	return nil
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, obj := range s.registry {
		obj.provider.Release()
		delete(s.registry, id)
	}
}

// maxScale returns the largest axis scale, used to bound a transformed sphere.
func maxScale(scale [3]float32) float32 {
	m := scale[0]
	if scale[1] > m {
		m = scale[1]
	}
	if scale[2] > m {
		m = scale[2]
	}
	return m
}
