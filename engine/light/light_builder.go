package light

import "github.com/NoNameAlien/shadow-algorithms-sub000/common"

// DirectionalLightOption is a functional option used to configure a DirectionalLight during construction.
type DirectionalLightOption func(*directionalLight)

// WithDirection sets the direction light travels in. The vector is normalized;
// a zero vector leaves the default in place.
//
// Parameters:
//   - x, y, z: the direction vector components
//
// Returns:
//   - DirectionalLightOption: a function that sets the direction for this light
func WithDirection(x, y, z float32) DirectionalLightOption {
	return func(l *directionalLight) {
		if x == 0 && y == 0 && z == 0 {
			return
		}
		l.direction = common.Normalize3(x, y, z)
	}
}

// WithFocus sets the world-space point the shadow frustum is centered on.
//
// Parameters:
//   - x, y, z: the focus point
//
// Returns:
//   - DirectionalLightOption: a function that sets the focus point for this light
func WithFocus(x, y, z float32) DirectionalLightOption {
	return func(l *directionalLight) {
		l.focus = [3]float32{x, y, z}
	}
}

// WithDistance sets how far back along the negated direction the virtual eye
// sits from the focus point.
//
// Parameters:
//   - distance: the eye distance (must be positive to be applied)
//
// Returns:
//   - DirectionalLightOption: a function that sets the eye distance for this light
func WithDistance(distance float32) DirectionalLightOption {
	return func(l *directionalLight) {
		if distance > 0 {
			l.distance = distance
		}
	}
}

// WithExtent sets the half-width of the orthographic shadow frustum. Larger
// extents cover more of the scene at the cost of shadow map texel density.
//
// Parameters:
//   - extent: the frustum half-width (must be positive to be applied)
//
// Returns:
//   - DirectionalLightOption: a function that sets the frustum extent for this light
func WithExtent(extent float32) DirectionalLightOption {
	return func(l *directionalLight) {
		if extent > 0 {
			l.extent = extent
		}
	}
}

// WithDepthRange sets the near and far planes of the shadow frustum, measured
// from the virtual eye.
//
// Parameters:
//   - near: the near plane distance
//   - far: the far plane distance (must exceed near to be applied)
//
// Returns:
//   - DirectionalLightOption: a function that sets the depth range for this light
func WithDepthRange(near, far float32) DirectionalLightOption {
	return func(l *directionalLight) {
		if far > near {
			l.near = near
			l.far = far
		}
	}
}
