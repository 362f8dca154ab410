package camera

import (
	"math"
	"testing"

	"github.com/NoNameAlien/shadow-algorithms-sub000/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionRespectsDistance(t *testing.T) {
	c := NewCamera(WithTarget(1, 2, 3), WithDistance(10, 2, 60))
	p := c.Position()
	dx := float64(p[0] - 1)
	dy := float64(p[1] - 2)
	dz := float64(p[2] - 3)
	assert.InDelta(t, 10, math.Sqrt(dx*dx+dy*dy+dz*dz), 1e-4)
}

func TestOrbitClampsPitch(t *testing.T) {
	c := NewCamera(WithTarget(0, 0, 0), WithDistance(10, 2, 60))

	// Crank the pitch far past vertical; the eye must stay below the pole.
	c.Orbit(0, 100)
	p := c.Position()
	assert.Less(t, p[1], float32(10), "eye never reaches directly overhead")
	assert.Greater(t, p[1], float32(9.9), "but gets close to it")

	c.Orbit(0, -200)
	p = c.Position()
	assert.Greater(t, p[1], float32(-10))
}

func TestZoomClampsDistance(t *testing.T) {
	c := NewCamera(WithTarget(0, 0, 0), WithOrbit(0, 0), WithDistance(10, 2, 20))

	c.Zoom(100)
	p := c.Position()
	assert.InDelta(t, 2, p[2], 1e-5, "zoom in stops at the minimum distance")

	c.Zoom(-100)
	p = c.Position()
	assert.InDelta(t, 20, p[2], 1e-5, "zoom out stops at the maximum distance")
}

func TestPanMovesTarget(t *testing.T) {
	c := NewCamera(WithTarget(0, 0, 0), WithOrbit(0, 0), WithDistance(10, 2, 60))
	c.Pan(0, -3)
	p := c.Position()
	// Yaw 0 looks down -Z from +Z; panning forward pulls the rig along +Z...
	// the eye keeps its distance from the shifted target.
	assert.InDelta(t, 10+3, p[2], 1e-5)
	assert.InDelta(t, 0, p[0], 1e-5)
}

func TestViewProjectionLooksAtTarget(t *testing.T) {
	c := NewCamera(WithTarget(2, 1, -4))
	vp := make([]float32, 16)
	c.ViewProjection(vp)

	// The target projects to the screen center.
	p := common.TransformPoint4(vp, 2, 1, -4)
	require.NotZero(t, p[3])
	assert.InDelta(t, 0, p[0]/p[3], 1e-4)
	assert.InDelta(t, 0, p[1]/p[3], 1e-4)
}

func TestSetAspectIgnoresNonPositive(t *testing.T) {
	c := NewCamera()
	before := make([]float32, 16)
	c.ViewProjection(before)

	c.SetAspect(0)
	c.SetAspect(-2)
	after := make([]float32, 16)
	c.ViewProjection(after)
	assert.Equal(t, before, after)
}

func TestOrbitControllerDragGatesRotation(t *testing.T) {
	c := NewCamera(WithTarget(0, 0, 0), WithOrbit(0, 0), WithDistance(10, 2, 60))
	oc := NewOrbitController(c)

	start := c.Position()

	// Movement without an active drag does nothing.
	oc.Move(100, 100)
	assert.Equal(t, start, c.Position())

	oc.BeginDrag(0, 0)
	oc.Move(50, 0)
	assert.NotEqual(t, start, c.Position())

	oc.EndDrag()
	mid := c.Position()
	oc.Move(500, 500)
	assert.Equal(t, mid, c.Position())
}

func TestOrbitControllerPanicsOnNilCamera(t *testing.T) {
	assert.Panics(t, func() {
		NewOrbitController(nil)
	})
}
