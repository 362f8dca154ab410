package camera

// CameraOption is a functional option used to configure a Camera during construction.
type CameraOption func(*camera)

// WithTarget sets the world-space point the camera orbits around.
//
// Parameters:
//   - x, y, z: the target point
//
// Returns:
//   - CameraOption: a function that sets the orbit target for this camera
func WithTarget(x, y, z float32) CameraOption {
	return func(c *camera) {
		c.target = [3]float32{x, y, z}
	}
}

// WithOrbit sets the initial yaw and pitch of the orbit rig in radians.
//
// Parameters:
//   - yaw: rotation around the vertical axis
//   - pitch: elevation angle, clamped to (-π/2, π/2) on first Orbit call
//
// Returns:
//   - CameraOption: a function that sets the orbit angles for this camera
func WithOrbit(yaw, pitch float32) CameraOption {
	return func(c *camera) {
		c.yaw = yaw
		c.pitch = pitch
	}
}

// WithDistance sets the initial eye distance and its clamp range.
//
// Parameters:
//   - distance: the initial distance from the target
//   - minDistance: the closest allowed zoom
//   - maxDistance: the farthest allowed zoom
//
// Returns:
//   - CameraOption: a function that sets the distance parameters for this camera
func WithDistance(distance, minDistance, maxDistance float32) CameraOption {
	return func(c *camera) {
		if minDistance > 0 && maxDistance > minDistance {
			c.minDistance = minDistance
			c.maxDistance = maxDistance
		}
		if distance > 0 {
			c.distance = distance
		}
	}
}

// WithPerspective sets the projection parameters.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport width/height ratio
//   - near: near clipping plane distance
//   - far: far clipping plane distance
//
// Returns:
//   - CameraOption: a function that sets the projection parameters for this camera
func WithPerspective(fovY, aspect, near, far float32) CameraOption {
	return func(c *camera) {
		if fovY > 0 {
			c.fovY = fovY
		}
		if aspect > 0 {
			c.aspect = aspect
		}
		if far > near && near > 0 {
			c.near = near
			c.far = far
		}
	}
}
