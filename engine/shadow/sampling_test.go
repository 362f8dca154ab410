package shadow

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// occluderMap builds a depth map whose left half holds a blocker at the given
// depth and whose right half is empty (far plane).
func occluderMap(size int, blockerDepth float32) *DepthMap {
	dm := NewDepthMap(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size/2; x++ {
			dm.Texels[y*size+x] = blockerDepth
		}
	}
	return dm
}

func TestOutsideFrustumIsFullyLitForEveryMethod(t *testing.T) {
	dm := NewDepthMap(64)
	mm := NewMomentMap(64)

	coords := [][3]float32{
		{-0.1, 0.5, 0.5},
		{1.1, 0.5, 0.5},
		{0.5, -0.1, 0.5},
		{0.5, 1.1, 0.5},
		{0.5, 0.5, -0.1},
		{0.5, 0.5, 1.1},
	}
	for _, c := range coords {
		assert.Equal(t, float32(1), VisibilitySM(dm, c[0], c[1], c[2], 0.001))
		assert.Equal(t, float32(1), VisibilityPCF(dm, c[0], c[1], c[2], 0.001, 2, 16))
		assert.Equal(t, float32(1), VisibilityPCSS(dm, c[0], c[1], c[2], 0.001, 0.05, 16))
		assert.Equal(t, float32(1), VisibilityVSM(mm, c[0], c[1], c[2], 1e-4, 0.2))
	}
}

func TestVisibilitySMHardComparison(t *testing.T) {
	dm := NewDepthMap(64)
	for i := range dm.Texels {
		dm.Texels[i] = 0.4
	}

	// Receiver behind the stored depth is shadowed.
	assert.Equal(t, float32(0), VisibilitySM(dm, 0.5, 0.5, 0.6, 0.001))
	// Receiver in front is lit.
	assert.Equal(t, float32(1), VisibilitySM(dm, 0.5, 0.5, 0.3, 0.001))
	// Bias rescues a receiver exactly at the stored depth.
	assert.Equal(t, float32(1), VisibilitySM(dm, 0.5, 0.5, 0.4, 0.001))
}

func TestVisibilityPCFPartialCoverageAtEdge(t *testing.T) {
	dm := occluderMap(128, 0.3)

	// Deep inside the blocker half: fully shadowed.
	assert.Equal(t, float32(0), VisibilityPCF(dm, 0.25, 0.5, 0.6, 0.001, 2, 16))
	// Deep inside the open half: fully lit.
	assert.Equal(t, float32(1), VisibilityPCF(dm, 0.75, 0.5, 0.6, 0.001, 2, 16))

	// Straddling the edge: some taps land on each side.
	v := VisibilityPCF(dm, 0.5, 0.5, 0.6, 0.001, 4, 32)
	assert.Greater(t, v, float32(0))
	assert.Less(t, v, float32(1))
}

func TestVisibilityPCFSoftensAgainstSM(t *testing.T) {
	dm := occluderMap(128, 0.3)

	// Just inside the lit half near the edge, SM is binary while PCF blends.
	u := float32(0.5) + 1.5/128.0
	sm := VisibilitySM(dm, u, 0.5, 0.6, 0.001)
	pcf := VisibilityPCF(dm, u, 0.5, 0.6, 0.001, 4, 32)
	assert.Equal(t, float32(1), sm)
	assert.Less(t, pcf, float32(1))
	assert.Greater(t, pcf, float32(0))
}

func TestVisibilityPCSSNoBlockersFullyLit(t *testing.T) {
	dm := NewDepthMap(64)
	assert.Equal(t, float32(1), VisibilityPCSS(dm, 0.5, 0.5, 0.5, 0.001, 0.05, 16))
}

func TestVisibilityPCSSBlockerSearchCapsAtEightTaps(t *testing.T) {
	// Blockers placed only at the texels the taps beyond the first eight
	// would hit. The capped search never sees them, so the result must stay
	// fully lit for every configured count.
	size := 256
	dm := NewDepthMap(size)
	u, v := float32(0.5), float32(0.5)
	light := float32(0.05)

	texelOf := func(i int) [2]int {
		su := u + PoissonDisk[i][0]*light
		sv := v + PoissonDisk[i][1]*light
		return [2]int{int(su * float32(size)), int(sv * float32(size))}
	}
	capped := map[[2]int]bool{}
	for i := 0; i < pcssBlockerSearchCap; i++ {
		capped[texelOf(i)] = true
	}
	for i := pcssBlockerSearchCap; i < poissonTableSize; i++ {
		tx := texelOf(i)
		if !capped[tx] {
			dm.Texels[tx[1]*size+tx[0]] = 0.2
		}
	}

	for _, n := range []int{8, 16, 32} {
		assert.Equal(t, float32(1), VisibilityPCSS(dm, u, v, 0.6, 0.001, light, n), "samples %d", n)
	}
}

func TestVisibilityPCSSPenumbraWidensWithBlockerDistance(t *testing.T) {
	size := 256
	near := occluderMap(size, 0.55) // blocker just in front of the receiver
	far := occluderMap(size, 0.1)   // blocker close to the light

	// Sample just inside the lit half; a wider penumbra reaches further,
	// so the distant blocker should darken this point more.
	u := float32(0.5) + 2.0/float32(size)
	vNear := VisibilityPCSS(near, u, 0.5, 0.6, 0.001, 0.05, 16)
	vFar := VisibilityPCSS(far, u, 0.5, 0.6, 0.001, 0.05, 16)
	assert.LessOrEqual(t, vFar, vNear)
	assert.Less(t, vFar, float32(1))
}

func TestChebyshevVisibility(t *testing.T) {
	// Receiver at or in front of the mean depth is fully lit.
	assert.Equal(t, float32(1), ChebyshevVisibility(0.5, 0.26, 0.5, 1e-4, 0))
	assert.Equal(t, float32(1), ChebyshevVisibility(0.5, 0.26, 0.3, 1e-4, 0))

	// Known variance cases: m1 = 0.5, E[d^2] = 0.26 gives variance 0.01;
	// at t = 0.6, pMax = 0.01 / (0.01 + 0.01) = 0.5, and at t = 0.7,
	// pMax = 0.01 / (0.01 + 0.04) = 0.2.
	v := ChebyshevVisibility(0.5, 0.26, 0.6, 1e-6, 0)
	assert.InDelta(t, 0.5, v, 1e-5)
	assert.InDelta(t, 0.2, ChebyshevVisibility(0.5, 0.26, 0.7, 1e-4, 0), 1e-5)

	// Light-bleed reduction shrinks the tail.
	reduced := ChebyshevVisibility(0.5, 0.26, 0.6, 1e-6, 0.4)
	assert.Less(t, reduced, v)

	// Zero variance with a distant receiver collapses toward full shadow
	// once the floor keeps the division finite.
	dark := ChebyshevVisibility(0.2, 0.04, 0.9, 1e-6, 0)
	assert.Less(t, dark, float32(0.001))
}

func TestVisibilityVSMUniformOccluder(t *testing.T) {
	mm := NewMomentMap(32)
	for i := range mm.Texels {
		mm.Texels[i] = [2]float32{0.3, 0.09} // zero variance occluder at 0.3
	}
	// In front: lit. Behind: shadowed hard (variance floored).
	assert.Equal(t, float32(1), VisibilityVSM(mm, 0.5, 0.5, 0.2, 1e-4, 0))
	assert.Less(t, VisibilityVSM(mm, 0.5, 0.5, 0.8, 1e-6, 0), float32(0.01))
}

func TestApplyStrength(t *testing.T) {
	// Strength 0 disables shadowing.
	assert.Equal(t, float32(1), ApplyStrength(0, 0))
	// Strength in (0, 1) mixes toward fully lit.
	assert.InDelta(t, 0.65, ApplyStrength(0.3, 0.5), 1e-6)
	// Strength 1 passes visibility through.
	assert.InDelta(t, 0.25, ApplyStrength(0.25, 1), 1e-6)
	// Above 1 the mixed term darkens by an extra (strength - 1), so even a
	// fully lit fragment dims.
	assert.InDelta(t, 0.25, ApplyStrength(0.5, 1.5), 1e-6)
	assert.InDelta(t, 0.5, ApplyStrength(1, 1.5), 1e-6)
	// Strength 2 blacks everything out.
	assert.Equal(t, float32(0), ApplyStrength(1, 2))
	assert.Equal(t, float32(0), ApplyStrength(0.25, 2))
}

func TestBlurMomentsPreservesUniformRegionsAndSpreadsEdges(t *testing.T) {
	mm := NewMomentMap(32)
	for y := 0; y < 32; y++ {
		for x := 0; x < 16; x++ {
			mm.Texels[y*32+x] = [2]float32{0.3, 0.09}
		}
	}

	blurred := BlurMoments(BlurMoments(mm, 1, 0), 0, 1)

	// Interior of each half is unchanged by a normalized kernel.
	assert.InDelta(t, 0.3, blurred.At(4, 16)[0], 1e-3)
	assert.InDelta(t, 1.0, blurred.At(28, 16)[0], 1e-3)

	// The edge column blends both halves.
	edge := blurred.At(16, 16)[0]
	assert.Greater(t, edge, float32(0.3))
	assert.Less(t, edge, float32(1.0))
}

func TestGaussianWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, w := range GaussianWeights5 {
		sum += float64(w)
	}
	assert.InDelta(t, 1.0, sum, 1e-4)
}

func TestPoissonDiskStaysInsideUnitDisk(t *testing.T) {
	require.Len(t, PoissonDisk, poissonTableSize)
	for i, p := range PoissonDisk {
		r := math.Hypot(float64(p[0]), float64(p[1]))
		assert.LessOrEqual(t, r, 1.0+1e-6, "sample %d", i)
	}
}

func TestPoissonPrefixesStayDistributed(t *testing.T) {
	// The Vogel spiral keeps every prefix roughly centered: the mean of the
	// first n samples should sit near the origin for each supported bucket.
	for _, n := range pcfSampleBuckets {
		var cx, cy float64
		for i := 0; i < n; i++ {
			cx += float64(PoissonDisk[i][0])
			cy += float64(PoissonDisk[i][1])
		}
		cx /= float64(n)
		cy /= float64(n)
		assert.Less(t, math.Hypot(cx, cy), 0.25, "prefix %d", n)
	}
}

func TestPoissonTableWGSL(t *testing.T) {
	src := PoissonTableWGSL()
	assert.True(t, strings.HasPrefix(src, "const POISSON_DISK: array<vec2<f32>, 64>"))
	assert.Equal(t, poissonTableSize, strings.Count(src, "vec2<f32>("))
	assert.True(t, strings.HasSuffix(src, ");"))
}
