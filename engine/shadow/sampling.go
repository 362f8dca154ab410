package shadow

import (
	"fmt"
	"math"
	"strings"
)

// poissonTableSize is the length of the shared Poisson disk. PCF uses a prefix
// of it sized by PCFSamples; PCSS uses fixed prefixes for the blocker search
// and the filter.
const poissonTableSize = 64

// pcssFilterSamples is the tap count of the PCSS filtering stage.
const pcssFilterSamples = 16

// pcssBlockerSearchCap bounds the blocker search at 8 taps no matter what the
// configured count is, keeping the search loop's control flow uniform.
const pcssBlockerSearchCap = 8

// GaussianWeights5 are the normalized 5-tap Gaussian weights used by the VSM
// blur in both the compute shader and the CPU reference.
var GaussianWeights5 = [5]float32{0.06136, 0.24477, 0.38774, 0.24477, 0.06136}

// PoissonDisk is the shared sample pattern: a Vogel spiral, which fills the
// unit disk evenly for any prefix length. Prefix averaging over it stays
// well-distributed, which is what lets one table serve every sample count.
var PoissonDisk = generateVogelDisk(poissonTableSize)

// generateVogelDisk places n points on a Vogel spiral inside the unit disk.
func generateVogelDisk(n int) [][2]float32 {
	const goldenAngle = 2.39996322972865332 // radians
	pts := make([][2]float32, n)
	for i := range pts {
		r := math.Sqrt((float64(i) + 0.5) / float64(n))
		theta := float64(i) * goldenAngle
		pts[i][0] = float32(r * math.Cos(theta))
		pts[i][1] = float32(r * math.Sin(theta))
	}
	return pts
}

// PoissonTableWGSL renders the shared Poisson disk as a WGSL const array
// declaration. Shader programs pull it in through the pre-processor, so the
// GPU pattern is byte-for-byte the pattern the CPU reference uses.
//
// Returns:
//   - string: a WGSL `const POISSON_DISK` declaration
func PoissonTableWGSL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "const POISSON_DISK: array<vec2<f32>, %d> = array<vec2<f32>, %d>(\n", poissonTableSize, poissonTableSize)
	for i, p := range PoissonDisk {
		sep := ","
		if i == len(PoissonDisk)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "    vec2<f32>(%.8f, %.8f)%s\n", p[0], p[1], sep)
	}
	b.WriteString(");")
	return b.String()
}

// DepthMap is a CPU-side shadow depth map: Size x Size texels of light-space
// depth in [0, 1]. The reference visibility functions below evaluate against
// it exactly as the WGSL programs evaluate against the GPU texture.
type DepthMap struct {
	Size   int
	Texels []float32
}

// NewDepthMap creates a DepthMap cleared to the far plane (depth 1).
func NewDepthMap(size int) *DepthMap {
	t := make([]float32, size*size)
	for i := range t {
		t[i] = 1
	}
	return &DepthMap{Size: size, Texels: t}
}

// At returns the stored depth at texel (x, y), clamping coordinates to the
// map edge like a clamp-to-edge sampler.
func (d *DepthMap) At(x, y int) float32 {
	x = clampInt(x, 0, d.Size-1)
	y = clampInt(y, 0, d.Size-1)
	return d.Texels[y*d.Size+x]
}

// sample reads the depth at UV coordinates with nearest filtering.
func (d *DepthMap) sample(u, v float32) float32 {
	x := int(u * float32(d.Size))
	y := int(v * float32(d.Size))
	return d.At(x, y)
}

// MomentMap is a CPU-side VSM moment map: Size x Size texels of
// (E[d], E[d^2]) pairs.
type MomentMap struct {
	Size   int
	Texels [][2]float32
}

// NewMomentMap creates a MomentMap cleared to the far plane moments (1, 1).
func NewMomentMap(size int) *MomentMap {
	t := make([][2]float32, size*size)
	for i := range t {
		t[i] = [2]float32{1, 1}
	}
	return &MomentMap{Size: size, Texels: t}
}

// At returns the moments at texel (x, y) with clamp-to-edge semantics.
func (m *MomentMap) At(x, y int) [2]float32 {
	x = clampInt(x, 0, m.Size-1)
	y = clampInt(y, 0, m.Size-1)
	return m.Texels[y*m.Size+x]
}

// sampleLinear reads the moments at UV coordinates with bilinear filtering,
// matching the linear sampler the lit pass uses on the moment texture.
func (m *MomentMap) sampleLinear(u, v float32) [2]float32 {
	fx := u*float32(m.Size) - 0.5
	fy := v*float32(m.Size) - 0.5
	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	a := m.At(x0, y0)
	b := m.At(x0+1, y0)
	c := m.At(x0, y0+1)
	d := m.At(x0+1, y0+1)

	var out [2]float32
	for i := range 2 {
		top := a[i] + (b[i]-a[i])*tx
		bot := c[i] + (d[i]-c[i])*tx
		out[i] = top + (bot-top)*ty
	}
	return out
}

// outsideMap reports whether the projected coordinate falls outside the shadow
// map. Fragments outside the light frustum are treated as fully lit by every
// technique.
func outsideMap(u, v, depth float32) bool {
	return u < 0 || u > 1 || v < 0 || v > 1 || depth < 0 || depth > 1
}

// VisibilitySM is the reference plain shadow map test: a single biased depth
// comparison yielding 0 (shadowed) or 1 (lit).
//
// Parameters:
//   - dm: the shadow depth map
//   - u, v: shadow map UV of the receiver
//   - depth: receiver depth in light space [0, 1]
//   - bias: depth comparison offset
//
// Returns:
//   - float32: 0 or 1
func VisibilitySM(dm *DepthMap, u, v, depth, bias float32) float32 {
	if outsideMap(u, v, depth) {
		return 1
	}
	if depth-bias > dm.sample(u, v) {
		return 0
	}
	return 1
}

// VisibilityPCF is the reference percentage-closer filter: the mean of biased
// depth comparisons over the first `samples` Poisson taps, scaled to
// radiusTexels.
//
// Parameters:
//   - dm: the shadow depth map
//   - u, v: shadow map UV of the receiver
//   - depth: receiver depth in light space [0, 1]
//   - bias: depth comparison offset
//   - radiusTexels: filter radius in shadow map texels
//   - samples: Poisson tap count, clamped to the table size
//
// Returns:
//   - float32: fraction of taps that passed, in [0, 1]
func VisibilityPCF(dm *DepthMap, u, v, depth, bias, radiusTexels float32, samples int) float32 {
	if outsideMap(u, v, depth) {
		return 1
	}
	samples = clampInt(samples, 1, poissonTableSize)
	texel := 1.0 / float32(dm.Size)

	var lit float32
	for i := range samples {
		su := u + PoissonDisk[i][0]*radiusTexels*texel
		sv := v + PoissonDisk[i][1]*radiusTexels*texel
		if depth-bias <= dm.sample(su, sv) {
			lit++
		}
	}
	return lit / float32(samples)
}

// VisibilityPCSS is the reference percentage-closer soft shadow evaluation:
// a Poisson blocker search estimates the mean occluder depth, the penumbra
// width follows from similar triangles, and a PCF filter at that width
// produces the final visibility. Zero blockers means fully lit.
//
// Parameters:
//   - dm: the shadow depth map
//   - u, v: shadow map UV of the receiver
//   - depth: receiver depth in light space [0, 1]
//   - bias: depth comparison offset
//   - lightSize: emitter size as a fraction of the map extent
//   - blockerSamples: requested tap count of the blocker search; values above
//     pcssBlockerSearchCap are clamped
//
// Returns:
//   - float32: visibility in [0, 1]
func VisibilityPCSS(dm *DepthMap, u, v, depth, bias, lightSize float32, blockerSamples int) float32 {
	if outsideMap(u, v, depth) {
		return 1
	}
	blockerSamples = clampInt(blockerSamples, 1, pcssBlockerSearchCap)

	var blockerSum float32
	blockerCount := 0
	for i := range blockerSamples {
		su := u + PoissonDisk[i][0]*lightSize
		sv := v + PoissonDisk[i][1]*lightSize
		d := dm.sample(su, sv)
		if d < depth-bias {
			blockerSum += d
			blockerCount++
		}
	}
	if blockerCount == 0 {
		return 1
	}

	// Penumbra by similar triangles, converted to texels with a 1-texel floor
	// so the filter never collapses below the map's resolution.
	avgBlocker := blockerSum / float32(blockerCount)
	penumbraTexels := (depth - avgBlocker) / avgBlocker * lightSize * float32(dm.Size)
	if penumbraTexels < 1 {
		penumbraTexels = 1
	}

	return VisibilityPCF(dm, u, v, depth, bias, penumbraTexels, pcssFilterSamples)
}

// ChebyshevVisibility evaluates the one-tailed Chebyshev upper bound on the
// probability that a surface at depth t is lit, given filtered moments, with
// the light-bleed reduction remap applied to the tail.
//
// Parameters:
//   - m1, m2: first and second depth moments (E[d], E[d^2])
//   - t: receiver depth
//   - minVariance: variance floor
//   - lightBleedReduction: tail cutoff in [0, 1)
//
// Returns:
//   - float32: visibility in [0, 1]
func ChebyshevVisibility(m1, m2, t, minVariance, lightBleedReduction float32) float32 {
	if t <= m1 {
		return 1
	}
	variance := m2 - m1*m1
	if variance < minVariance {
		variance = minVariance
	}
	d := t - m1
	pMax := variance / (variance + d*d)
	return linstep(lightBleedReduction, 1, pMax)
}

// VisibilityVSM is the reference variance shadow map evaluation: bilinear
// moment fetch followed by the Chebyshev bound.
//
// Parameters:
//   - mm: the (blurred) moment map
//   - u, v: shadow map UV of the receiver
//   - depth: receiver depth in light space [0, 1]
//   - minVariance: variance floor
//   - lightBleedReduction: tail cutoff in [0, 1)
//
// Returns:
//   - float32: visibility in [0, 1]
func VisibilityVSM(mm *MomentMap, u, v, depth, minVariance, lightBleedReduction float32) float32 {
	if outsideMap(u, v, depth) {
		return 1
	}
	m := mm.sampleLinear(u, v)
	return ChebyshevVisibility(m[0], m[1], depth, minVariance, lightBleedReduction)
}

// ApplyStrength blends raw visibility with the shared strength scalar:
// values in [0, 1] mix the raw output toward fully lit (0 disables shadowing,
// 1 passes it through), and values in (1, 2] darken the whole term by an
// extra (strength - 1) after the mix.
//
// Parameters:
//   - visibility: raw algorithm output in [0, 1]
//   - strength: the strength scalar in [0, 2]
//
// Returns:
//   - float32: the blended light factor in [0, 1]
func ApplyStrength(visibility, strength float32) float32 {
	strength = clampF32(strength, 0, 2)
	mixAmount := strength
	if mixAmount > 1 {
		mixAmount = 1
	}
	f := 1 - mixAmount*(1-visibility)
	if strength > 1 {
		f *= 2 - strength
	}
	return clampF32(f, 0, 1)
}

// BlurMoments applies the separable 5-tap Gaussian to a moment map along one
// axis, matching the compute shader. dx, dy select the axis ((1,0) or (0,1)).
//
// Parameters:
//   - src: source moments
//   - dx, dy: filter axis
//
// Returns:
//   - *MomentMap: the blurred copy
func BlurMoments(src *MomentMap, dx, dy int) *MomentMap {
	dst := NewMomentMap(src.Size)
	for y := 0; y < src.Size; y++ {
		for x := 0; x < src.Size; x++ {
			var sum [2]float32
			for tap := -2; tap <= 2; tap++ {
				w := GaussianWeights5[tap+2]
				m := src.At(x+tap*dx, y+tap*dy)
				sum[0] += m[0] * w
				sum[1] += m[1] * w
			}
			dst.Texels[y*src.Size+x] = sum
		}
	}
	return dst
}

// linstep rescales v from [lo, hi] to [0, 1] with clamping.
func linstep(lo, hi, v float32) float32 {
	return clampF32((v-lo)/(hi-lo), 0, 1)
}
