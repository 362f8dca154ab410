package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlane(t *testing.T) {
	m := NewPlane(10, 4)
	require.Len(t, m.Vertices, 4)
	require.Len(t, m.Indices, 6)

	for _, v := range m.Vertices {
		assert.Equal(t, float32(0), v.Position[1], "plane lies in XZ")
		assert.Equal(t, [3]float32{0, 1, 0}, v.Normal)
	}
	assert.Equal(t, [2]float32{4, 4}, m.Vertices[2].UV)

	assert.Equal(t, [3]float32{0, 0, 0}, m.BoundsCenter)
	assert.InDelta(t, math.Sqrt(50), float64(m.BoundsRadius), 1e-4)
}

func TestNewCube(t *testing.T) {
	m := NewCube(2)
	require.Len(t, m.Vertices, 24)
	require.Len(t, m.Indices, 36)

	for _, v := range m.Vertices {
		for axis := range 3 {
			assert.LessOrEqual(t, float64(math.Abs(float64(v.Position[axis]))), 1.0+1e-6)
		}
		// Per-face normals are unit axis vectors.
		lenSq := v.Normal[0]*v.Normal[0] + v.Normal[1]*v.Normal[1] + v.Normal[2]*v.Normal[2]
		assert.InDelta(t, 1, lenSq, 1e-6)
	}

	assert.Equal(t, [3]float32{0, 0, 0}, m.BoundsCenter)
	assert.InDelta(t, math.Sqrt(3), float64(m.BoundsRadius), 1e-4)

	for _, idx := range m.Indices {
		assert.Less(t, int(idx), len(m.Vertices))
	}
}

func TestNewSphere(t *testing.T) {
	m := NewSphere(2, 16, 8)
	require.Len(t, m.Vertices, 17*9)
	require.Len(t, m.Indices, 16*8*6)

	for _, v := range m.Vertices {
		r := math.Sqrt(float64(v.Position[0]*v.Position[0] + v.Position[1]*v.Position[1] + v.Position[2]*v.Position[2]))
		assert.InDelta(t, 2, r, 1e-4, "vertices lie on the sphere")

		nLen := math.Sqrt(float64(v.Normal[0]*v.Normal[0] + v.Normal[1]*v.Normal[1] + v.Normal[2]*v.Normal[2]))
		assert.InDelta(t, 1, nLen, 1e-4)
	}

	assert.InDelta(t, 2, float64(m.BoundsRadius), 1e-3)
}

func TestNewSphereClampsSubdivisions(t *testing.T) {
	m := NewSphere(1, 0, 0)
	assert.Len(t, m.Vertices, 4*3) // 3 segments, 2 rings
	assert.Len(t, m.Indices, 3*2*6)
}

func TestMeshByteViews(t *testing.T) {
	m := NewPlane(1, 1)
	assert.Len(t, m.VertexBytes(), len(m.Vertices)*32)
	assert.Len(t, m.IndexBytes(), len(m.Indices)*4)
}
