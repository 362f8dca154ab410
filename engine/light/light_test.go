package light

import (
	"math"
	"testing"

	"github.com/NoNameAlien/shadow-algorithms-sub000/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDirectionNormalizes(t *testing.T) {
	l := NewDirectionalLight()
	l.SetDirection(0, -10, 0)
	assert.Equal(t, [3]float32{0, -1, 0}, l.Direction())
}

func TestSetDirectionIgnoresZeroVector(t *testing.T) {
	l := NewDirectionalLight(WithDirection(0, -1, 0))
	l.SetDirection(0, 0, 0)
	assert.Equal(t, [3]float32{0, -1, 0}, l.Direction())
}

func TestDirectionVec4MarksLightAsDirectional(t *testing.T) {
	l := NewDirectionalLight(WithDirection(0, -1, 0))
	assert.Equal(t, [4]float32{0, -1, 0, 0}, l.DirectionVec4())
}

func TestViewProjectionCentersFocusInDepthRange(t *testing.T) {
	l := NewDirectionalLight(
		WithDirection(0, -1, 0),
		WithFocus(0, 0, 0),
		WithDistance(20),
		WithExtent(15),
		WithDepthRange(0.1, 60),
	)

	vp := make([]float32, 16)
	l.ViewProjection(vp)

	// The focus point sits in the middle of the ortho volume: NDC center,
	// depth between the near and far planes.
	p := common.TransformPoint4(vp, 0, 0, 0)
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, 0, p[1], 1e-5)
	assert.Greater(t, p[2], float32(0))
	assert.Less(t, p[2], float32(1))
}

func TestViewProjectionStraightDownDoesNotCollapse(t *testing.T) {
	l := NewDirectionalLight(WithDirection(0, -1, 0))
	vp := make([]float32, 16)
	l.ViewProjection(vp)

	// A degenerate basis would zero out the matrix; a point at the frustum
	// edge must still land at a finite, distinct NDC coordinate.
	p := common.TransformPoint4(vp, 15, 0, 0)
	assert.False(t, math.IsNaN(float64(p[0])))
	assert.InDelta(t, 1, math.Abs(float64(p[0])), 1e-4)
}

func TestViewProjectionDepthOrdering(t *testing.T) {
	l := NewDirectionalLight(
		WithDirection(0, -1, 0),
		WithDistance(20),
		WithDepthRange(0.1, 60),
	)
	vp := make([]float32, 16)
	l.ViewProjection(vp)

	// Light travels down: higher receivers are closer to the light and must
	// get smaller depth values.
	high := common.TransformPoint4(vp, 0, 5, 0)
	low := common.TransformPoint4(vp, 0, -5, 0)
	require.Less(t, high[2], low[2])
	assert.Greater(t, high[2], float32(0))
	assert.Less(t, low[2], float32(1))
}
