package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	Identity(m)
	for i := range 4 {
		for j := range 4 {
			want := float32(0)
			if i == j {
				want = 1
			}
			assert.Equal(t, want, m[j*4+i])
		}
	}
}

func TestMul4WithIdentityIsNoOp(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)

	a := make([]float32, 16)
	BuildModelMatrix(a, 1, 2, 3, 0.3, 0.5, 0.7, 2, 2, 2)

	out := make([]float32, 16)
	Mul4(out, id, a)
	assert.Equal(t, a, out)

	Mul4(out, a, id)
	assert.Equal(t, a, out)
}

func TestTransformPoint4AppliesTranslation(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 5, -2, 1, 0, 0, 0, 1, 1, 1)
	p := TransformPoint4(m, 1, 1, 1)
	assert.InDelta(t, 6, p[0], 1e-6)
	assert.InDelta(t, -1, p[1], 1e-6)
	assert.InDelta(t, 2, p[2], 1e-6)
	assert.InDelta(t, 1, p[3], 1e-6)
}

func TestBuildModelMatrixScales(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 0, 0, 0, 0, 0, 0, 2, 3, 4)
	p := TransformPoint4(m, 1, 1, 1)
	assert.InDelta(t, 2, p[0], 1e-6)
	assert.InDelta(t, 3, p[1], 1e-6)
	assert.InDelta(t, 4, p[2], 1e-6)
}

func TestNormalize3(t *testing.T) {
	v := Normalize3(3, 0, 4)
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0, v[1], 1e-6)
	assert.InDelta(t, 0.8, v[2], 1e-6)

	length := math.Hypot(float64(v[0]), math.Hypot(float64(v[1]), float64(v[2])))
	assert.InDelta(t, 1.0, length, 1e-6)
}

func TestInvert4RoundTrip(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 1, 2, 3, 0.4, 0.8, 0.2, 1.5, 1.5, 1.5)

	inv := make([]float32, 16)
	require.True(t, Invert4(inv, m))

	out := make([]float32, 16)
	Mul4(out, m, inv)
	for i := range 4 {
		for j := range 4 {
			want := float32(0)
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, out[j*4+i], 1e-4)
		}
	}
}

func TestInvert4SingularMatrixFails(t *testing.T) {
	zero := make([]float32, 16)
	inv := make([]float32, 16)
	assert.False(t, Invert4(inv, zero))
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	view := make([]float32, 16)
	LookAt(view, 3, 4, 5, 0, 0, 0, 0, 1, 0)
	p := TransformPoint4(view, 3, 4, 5)
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, 0, p[1], 1e-5)
	assert.InDelta(t, 0, p[2], 1e-5)
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := make([]float32, 16)
	Perspective(proj, float32(math.Pi/3), 16.0/9.0, 0.1, 100)

	// A point on the near plane projects to depth 0, far plane to depth 1.
	near := TransformPoint4(proj, 0, 0, -0.1)
	assert.InDelta(t, 0, near[2]/near[3], 1e-5)

	far := TransformPoint4(proj, 0, 0, -100)
	assert.InDelta(t, 1, far[2]/far[3], 1e-4)
}

func TestOrthoDepthRange(t *testing.T) {
	proj := make([]float32, 16)
	Ortho(proj, -10, 10, -10, 10, 0.1, 60)

	near := TransformPoint4(proj, 0, 0, -0.1)
	assert.InDelta(t, 0, near[2], 1e-5)

	far := TransformPoint4(proj, 0, 0, -60)
	assert.InDelta(t, 1, far[2], 1e-5)

	// Extent corners map to clip edges.
	corner := TransformPoint4(proj, 10, 10, -30)
	assert.InDelta(t, 1, corner[0], 1e-5)
	assert.InDelta(t, 1, corner[1], 1e-5)
}

func TestFrustumCulling(t *testing.T) {
	view := make([]float32, 16)
	proj := make([]float32, 16)
	viewProj := make([]float32, 16)
	LookAt(view, 0, 0, 10, 0, 0, 0, 0, 1, 0)
	Perspective(proj, float32(math.Pi/3), 1, 0.1, 100)
	Mul4(viewProj, proj, view)

	f := ExtractFrustumFromMatrix(viewProj)

	assert.True(t, f.ContainsSphere(0, 0, 0, 1), "sphere at the look target")
	assert.False(t, f.ContainsSphere(0, 0, 200, 1), "sphere behind the camera")
	assert.False(t, f.ContainsSphere(500, 0, 0, 1), "sphere far off to the side")

	// A sphere whose center is outside but whose radius reaches in survives.
	assert.True(t, f.ContainsSphere(0, 0, 10.5, 2), "large sphere overlapping the near plane")
}

func TestSliceToBytesLength(t *testing.T) {
	data := []float32{1, 2, 3}
	b := SliceToBytes(data)
	assert.Len(t, b, 12)
	assert.Empty(t, SliceToBytes[float32](nil))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 5, Coalesce(0, 0, 5, 7))
	assert.Equal(t, 0, Coalesce(0, 0))
	assert.Equal(t, "a", Coalesce("", "a"))
}
