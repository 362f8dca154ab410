package camera

// OrbitController converts raw pointer input into orbit rig adjustments.
// The host wires its window callbacks (mouse down/up/move, scroll) to these
// methods; the controller tracks drag state and applies deltas to the camera.
type OrbitController struct {
	cam Camera

	dragging     bool
	lastX, lastY int32

	// RotateSpeed scales pixels of drag to radians of orbit.
	RotateSpeed float32
	// ZoomSpeed scales scroll wheel ticks to world units of zoom.
	ZoomSpeed float32
	// PanSpeed scales key-driven pan steps to world units.
	PanSpeed float32
}

// NewOrbitController creates an OrbitController driving the given camera.
// Panics if cam is nil.
//
// Parameters:
//   - cam: the camera to drive
//
// Returns:
//   - *OrbitController: the controller with default speeds
func NewOrbitController(cam Camera) *OrbitController {
	if cam == nil {
		panic("camera: OrbitController requires a non-nil camera")
	}
	return &OrbitController{
		cam:         cam,
		RotateSpeed: 0.008,
		ZoomSpeed:   1.0,
		PanSpeed:    0.25,
	}
}

// BeginDrag starts a rotation drag at the given cursor position.
func (o *OrbitController) BeginDrag(x, y int32) {
	o.dragging = true
	o.lastX, o.lastY = x, y
}

// EndDrag stops the current rotation drag.
func (o *OrbitController) EndDrag() {
	o.dragging = false
}

// Move processes a cursor move event. Only has an effect mid-drag.
func (o *OrbitController) Move(x, y int32) {
	if !o.dragging {
		return
	}
	dx := float32(x-o.lastX) * o.RotateSpeed
	dy := float32(y-o.lastY) * o.RotateSpeed
	o.lastX, o.lastY = x, y
	o.cam.Orbit(dx, dy)
}

// Scroll processes a scroll wheel event as zoom.
func (o *OrbitController) Scroll(delta float32) {
	o.cam.Zoom(delta * o.ZoomSpeed)
}

// PanStep nudges the orbit target in the camera's ground plane. dx and dz are
// direction signs (-1, 0, 1), typically driven by WASD keys.
func (o *OrbitController) PanStep(dx, dz float32) {
	o.cam.Pan(dx*o.PanSpeed, dz*o.PanSpeed)
}
