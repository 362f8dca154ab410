package scene

import (
	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/model"
	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/renderer/bind_group_provider"
	"github.com/NoNameAlien/shadow-algorithms-sub000/engine/shadow"
)

// sceneObject is one drawable instance: a mesh, a transform, and the GPU
// bundle holding its vertex/index buffers and per-object frame uniform buffer.
type sceneObject struct {
	name string
	mesh *model.Mesh

	position [3]float32
	rotation [3]float32
	scale    [3]float32

	castsShadow bool

	// visible is recomputed each frame by the culling prep; capture passes
	// ignore it so off-screen casters still throw shadows into view.
	visible bool

	modelMatrix [16]float32
	uniforms    shadow.FrameUniforms

	provider bind_group_provider.BindGroupProvider
}

// ObjectOption configures an object at creation time.
type ObjectOption func(*sceneObject)

// WithPosition sets the object's world position.
//
// Parameters:
//   - x, y, z: world space coordinates
//
// Returns:
//   - ObjectOption: the option to apply
func WithPosition(x, y, z float32) ObjectOption {
	return func(o *sceneObject) {
		o.position = [3]float32{x, y, z}
	}
}

// WithRotation sets the object's Euler rotation in radians.
//
// Parameters:
//   - x, y, z: rotation about each axis in radians
//
// Returns:
//   - ObjectOption: the option to apply
func WithRotation(x, y, z float32) ObjectOption {
	return func(o *sceneObject) {
		o.rotation = [3]float32{x, y, z}
	}
}

// WithScale sets the object's per-axis scale.
//
// Parameters:
//   - x, y, z: scale factors
//
// Returns:
//   - ObjectOption: the option to apply
func WithScale(x, y, z float32) ObjectOption {
	return func(o *sceneObject) {
		o.scale = [3]float32{x, y, z}
	}
}

// WithShadowCasting controls whether the object renders into capture passes.
// Ground planes typically receive shadows without casting them.
//
// Parameters:
//   - casts: true to render the object into the shadow map
//
// Returns:
//   - ObjectOption: the option to apply
func WithShadowCasting(casts bool) ObjectOption {
	return func(o *sceneObject) {
		o.castsShadow = casts
	}
}
