package light

import (
	"github.com/NoNameAlien/shadow-algorithms-sub000/common"
)

// DirectionalLight models a single sun-style light source. Rays are parallel,
// so the shadow frustum is an orthographic box centered on the scene rather
// than a perspective cone. The light has no position of its own; a virtual eye
// is placed along the negated direction at a fixed distance from the focus
// point when building the view matrix.
type DirectionalLight interface {
	// Direction returns the normalized world-space direction light travels in.
	//
	// Returns:
	//   - [3]float32: the unit direction vector
	Direction() [3]float32

	// SetDirection updates the light direction. The input is normalized; a zero
	// vector is ignored and the previous direction is kept.
	//
	// Parameters:
	//   - x, y, z: the new direction vector components
	SetDirection(x, y, z float32)

	// ViewProjection writes the light's combined ortho-projection * view matrix
	// into out. Depth lands in [0, 1] per the WebGPU clip space convention, so
	// the capture pass output can be compared directly against sampled depth.
	//
	// Parameters:
	//   - out: destination slice (must be at least 16 elements)
	ViewProjection(out []float32)

	// DirectionVec4 returns the direction padded to a vec4 with w = 0, the
	// uniform layout used by all lit shader programs. w = 0 marks the light as
	// directional so shaders never treat it as a position.
	//
	// Returns:
	//   - [4]float32: (dir.x, dir.y, dir.z, 0)
	DirectionVec4() [4]float32
}

// directionalLight is the implementation of the DirectionalLight interface.
type directionalLight struct {
	// direction is the normalized direction light travels in.
	direction [3]float32
	// focus is the world-space point the shadow frustum is centered on.
	focus [3]float32
	// distance is how far back along -direction the virtual eye sits.
	distance float32
	// extent is the half-width of the orthographic shadow frustum. It must
	// cover the shadow-receiving region of the scene.
	extent float32
	// near and far bound the frustum depth range from the virtual eye.
	near, far float32

	// scratch buffers reused across ViewProjection calls to avoid per-frame allocation
	view, proj [16]float32
}

var _ DirectionalLight = &directionalLight{}

// NewDirectionalLight creates a DirectionalLight with the provided options.
// Defaults: direction (-0.5, -1, -0.3) normalized, focus at the origin,
// distance 20, extent 15, near 0.1, far 60.
//
// Parameters:
//   - options: a variadic list of options to configure the light
//
// Returns:
//   - DirectionalLight: the configured light
func NewDirectionalLight(options ...DirectionalLightOption) DirectionalLight {
	l := &directionalLight{
		direction: common.Normalize3(-0.5, -1.0, -0.3),
		focus:     [3]float32{0, 0, 0},
		distance:  20,
		extent:    15,
		near:      0.1,
		far:       60,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *directionalLight) Direction() [3]float32 {
	return l.direction
}

func (l *directionalLight) SetDirection(x, y, z float32) {
	if x == 0 && y == 0 && z == 0 {
		return
	}
	l.direction = common.Normalize3(x, y, z)
}

func (l *directionalLight) DirectionVec4() [4]float32 {
	return [4]float32{l.direction[0], l.direction[1], l.direction[2], 0}
}

func (l *directionalLight) ViewProjection(out []float32) {
	eyeX := l.focus[0] - l.direction[0]*l.distance
	eyeY := l.focus[1] - l.direction[1]*l.distance
	eyeZ := l.focus[2] - l.direction[2]*l.distance

	// A light looking straight down is parallel to the default up vector, which
	// collapses the LookAt basis. Swap to a Z-up reference in that case.
	upX, upY, upZ := float32(0), float32(1), float32(0)
	if l.direction[0] == 0 && l.direction[2] == 0 {
		upX, upY, upZ = 0, 0, 1
	}

	common.LookAt(l.view[:], eyeX, eyeY, eyeZ, l.focus[0], l.focus[1], l.focus[2], upX, upY, upZ)
	common.Ortho(l.proj[:], -l.extent, l.extent, -l.extent, l.extent, l.near, l.far)
	common.Mul4(out, l.proj[:], l.view[:])
}
