package camera

import (
	"math"

	"github.com/NoNameAlien/shadow-algorithms-sub000/common"
)

// Camera is a perspective camera driven by an orbit rig: the eye circles a
// target point at a given distance, parameterized by yaw and pitch. The engine
// only ever consumes the matrices and eye position; input routing to the orbit
// controls lives in the host (see OrbitController).
type Camera interface {
	// ViewProjection writes the combined projection * view matrix into out.
	//
	// Parameters:
	//   - out: destination slice (must be at least 16 elements)
	ViewProjection(out []float32)

	// Position returns the current world-space eye position derived from the
	// orbit parameters.
	//
	// Returns:
	//   - [3]float32: the eye position
	Position() [3]float32

	// SetAspect updates the projection aspect ratio. Called on window resize.
	//
	// Parameters:
	//   - aspect: the new width/height ratio (ignored if not positive)
	SetAspect(aspect float32)

	// Orbit adjusts the yaw and pitch of the orbit rig by the given deltas in
	// radians. Pitch is clamped just shy of the poles to keep the view basis
	// stable.
	//
	// Parameters:
	//   - dYaw: yaw delta in radians
	//   - dPitch: pitch delta in radians
	Orbit(dYaw, dPitch float32)

	// Zoom moves the eye toward (positive delta) or away from (negative delta)
	// the target. Distance is clamped to [minDistance, maxDistance].
	//
	// Parameters:
	//   - delta: zoom amount, typically the scroll wheel delta
	Zoom(delta float32)

	// Pan translates the orbit target in the camera's horizontal plane.
	//
	// Parameters:
	//   - dx: rightward translation in world units
	//   - dz: forward translation in world units
	Pan(dx, dz float32)
}

// pitchLimit keeps the pitch off the poles where the up vector degenerates.
const pitchLimit = float32(math.Pi/2) - 0.05

// camera is the implementation of the Camera interface.
type camera struct {
	target      [3]float32
	yaw, pitch  float32
	distance    float32
	minDistance float32
	maxDistance float32

	fovY, aspect, near, far float32

	view, proj [16]float32
}

var _ Camera = &camera{}

// NewCamera creates a Camera with the provided options.
// Defaults: target at the origin, yaw 0.6, pitch 0.45, distance 14,
// distance clamp [2, 60], 60° vertical FOV, 16:9 aspect, near 0.1, far 200.
//
// Parameters:
//   - options: a variadic list of options to configure the camera
//
// Returns:
//   - Camera: the configured camera
func NewCamera(options ...CameraOption) Camera {
	c := &camera{
		yaw:         0.6,
		pitch:       0.45,
		distance:    14,
		minDistance: 2,
		maxDistance: 60,
		fovY:        float32(math.Pi / 3),
		aspect:      16.0 / 9.0,
		near:        0.1,
		far:         200,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *camera) Position() [3]float32 {
	cp := float32(math.Cos(float64(c.pitch)))
	sp := float32(math.Sin(float64(c.pitch)))
	cy := float32(math.Cos(float64(c.yaw)))
	sy := float32(math.Sin(float64(c.yaw)))

	return [3]float32{
		c.target[0] + c.distance*cp*sy,
		c.target[1] + c.distance*sp,
		c.target[2] + c.distance*cp*cy,
	}
}

func (c *camera) ViewProjection(out []float32) {
	eye := c.Position()
	common.LookAt(c.view[:], eye[0], eye[1], eye[2], c.target[0], c.target[1], c.target[2], 0, 1, 0)
	common.Perspective(c.proj[:], c.fovY, c.aspect, c.near, c.far)
	common.Mul4(out, c.proj[:], c.view[:])
}

func (c *camera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.aspect = aspect
	}
}

func (c *camera) Orbit(dYaw, dPitch float32) {
	c.yaw += dYaw
	c.pitch += dPitch
	if c.pitch > pitchLimit {
		c.pitch = pitchLimit
	}
	if c.pitch < -pitchLimit {
		c.pitch = -pitchLimit
	}
}

func (c *camera) Zoom(delta float32) {
	c.distance -= delta
	if c.distance < c.minDistance {
		c.distance = c.minDistance
	}
	if c.distance > c.maxDistance {
		c.distance = c.maxDistance
	}
}

func (c *camera) Pan(dx, dz float32) {
	cy := float32(math.Cos(float64(c.yaw)))
	sy := float32(math.Sin(float64(c.yaw)))

	// Right and forward vectors projected onto the ground plane.
	c.target[0] += dx*cy - dz*sy
	c.target[2] += -dx*sy - dz*cy
}
