package shadow

import "fmt"

// Method selects which shadow visibility algorithm the lit pass evaluates.
type Method int

const (
	// MethodSM is plain shadow mapping: a single hard depth comparison.
	MethodSM Method = iota

	// MethodPCF is percentage-closer filtering: a Poisson-disk average of
	// depth comparisons producing fixed-width soft edges.
	MethodPCF

	// MethodPCSS is percentage-closer soft shadows: a blocker search drives a
	// penumbra estimate, so shadows soften with occluder distance.
	MethodPCSS

	// MethodVSM is variance shadow mapping: depth moments filtered through a
	// Gaussian blur, visibility from the Chebyshev upper bound.
	MethodVSM
)

// methodCount bounds Method for validation.
const methodCount = 4

func (m Method) String() string {
	switch m {
	case MethodSM:
		return "SM"
	case MethodPCF:
		return "PCF"
	case MethodPCSS:
		return "PCSS"
	case MethodVSM:
		return "VSM"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Valid reports whether m names a known algorithm.
func (m Method) Valid() bool {
	return m >= 0 && m < methodCount
}

// pcfSampleBuckets are the sample counts the PCF shader loop supports. Inputs
// snap down to the nearest bucket.
var pcfSampleBuckets = [4]int{4, 8, 16, 32}

// pcssBlockerBuckets are the accepted blocker search settings. The search
// itself never runs more than pcssBlockerSearchCap taps.
var pcssBlockerBuckets = [3]int{8, 16, 32}

// Params holds every runtime-adjustable shadow setting. Zero value is not
// usable; start from DefaultParams. All fields can change between frames; the
// engine applies changes at the next frame boundary.
type Params struct {
	// Method selects the active visibility algorithm.
	Method Method

	// MapSize is the shadow map resolution in texels per side. Must be a
	// power of two in [512, 4096].
	MapSize int

	// Bias is the depth comparison offset pushing receivers toward the light,
	// suppressing self-shadow acne. Used by SM, PCF, and PCSS.
	Bias float32

	// PCFRadius is the Poisson disk radius in shadow-map texels.
	PCFRadius float32

	// PCFSamples is the number of Poisson taps averaged per fragment.
	// Snapped to one of {4, 8, 16, 32}.
	PCFSamples int

	// PCSSLightSize is the emitter's apparent size as a fraction of the shadow
	// map extent, in [0.01, 0.2]; larger lights produce wider penumbrae.
	PCSSLightSize float32

	// PCSSBlockerSamples is the configured blocker search tap count, snapped
	// to one of {8, 16, 32}. The search evaluates at most 8 taps regardless,
	// keeping its control flow uniform across fragments.
	PCSSBlockerSamples int

	// VSMMinVariance floors the moment variance to keep the Chebyshev bound
	// numerically stable on flat receivers.
	VSMMinVariance float32

	// VSMLightBleedReduction in [0, 1) rescales the Chebyshev tail to cut
	// light bleeding between overlapping occluders.
	VSMLightBleedReduction float32

	// Strength in [0, 2] scales how dark shadows render. 1 is physical;
	// values above 1 over-darken for stylized output.
	Strength float32
}

// DefaultParams returns the settings the engine starts with: PCF at 2048
// texels with 16 taps.
func DefaultParams() Params {
	return Params{
		Method:                 MethodPCF,
		MapSize:                2048,
		Bias:                   0.0015,
		PCFRadius:              2.0,
		PCFSamples:             16,
		PCSSLightSize:          0.05,
		PCSSBlockerSamples:     16,
		VSMMinVariance:         1e-4,
		VSMLightBleedReduction: 0.2,
		Strength:               1.0,
	}
}

// Normalize returns a copy of p with every field clamped into its supported
// range. Out-of-range values never fail; they snap to the nearest legal
// setting so a UI slider can feed raw values straight through.
//
// Returns:
//   - Params: the clamped copy
//   - error: non-nil only when Method itself is unknown
func (p Params) Normalize() (Params, error) {
	if !p.Method.Valid() {
		return p, fmt.Errorf("shadow: unknown method %d", int(p.Method))
	}

	out := p
	out.MapSize = clampMapSize(p.MapSize)
	out.Bias = clampF32(p.Bias, 0.001, 0.02)
	out.PCFRadius = clampF32(p.PCFRadius, 0.5, 5.0)
	out.PCFSamples = snapPCFSamples(p.PCFSamples)
	out.PCSSLightSize = clampF32(p.PCSSLightSize, 0.01, 0.2)
	out.PCSSBlockerSamples = snapPCSSBlockerSamples(p.PCSSBlockerSamples)
	out.VSMMinVariance = clampF32(p.VSMMinVariance, 1e-6, 1e-3)
	out.VSMLightBleedReduction = clampF32(p.VSMLightBleedReduction, 0, 0.8)
	out.Strength = clampF32(p.Strength, 0, 2)
	return out, nil
}

// clampMapSize snaps to the nearest power of two in [512, 4096].
func clampMapSize(size int) int {
	if size <= 512 {
		return 512
	}
	if size >= 4096 {
		return 4096
	}
	// Snap down to a power of two, then pick whichever neighbor is closer.
	lower := 512
	for lower*2 <= size {
		lower *= 2
	}
	upper := lower * 2
	if size-lower <= upper-size {
		return lower
	}
	return upper
}

// snapPCFSamples snaps down to the nearest supported bucket.
func snapPCFSamples(n int) int {
	best := pcfSampleBuckets[0]
	for _, b := range pcfSampleBuckets {
		if n >= b {
			best = b
		}
	}
	return best
}

// snapPCSSBlockerSamples snaps down to the nearest supported bucket.
func snapPCSSBlockerSamples(n int) int {
	best := pcssBlockerBuckets[0]
	for _, b := range pcssBlockerBuckets {
		if n >= b {
			best = b
		}
	}
	return best
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
