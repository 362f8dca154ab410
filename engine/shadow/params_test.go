package shadow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParamsAreAlreadyNormalized(t *testing.T) {
	p := DefaultParams()
	normalized, err := p.Normalize()
	require.NoError(t, err)
	assert.Equal(t, p, normalized)
}

func TestNormalizeRejectsUnknownMethod(t *testing.T) {
	p := DefaultParams()
	p.Method = Method(99)
	_, err := p.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown method")

	p.Method = Method(-1)
	_, err = p.Normalize()
	require.Error(t, err)
}

func TestNormalizeClampsMapSize(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"below minimum", 100, 512},
		{"above maximum", 16384, 4096},
		{"exact power of two", 1024, 1024},
		{"snaps down when closer to lower", 1100, 1024},
		{"snaps up when closer to upper", 1900, 2048},
		{"zero", 0, 512},
		{"negative", -5, 512},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			p.MapSize = tc.in
			out, err := p.Normalize()
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.MapSize)
		})
	}
}

func TestNormalizeSnapsPCFSamplesDown(t *testing.T) {
	cases := map[int]int{
		0:   4,
		4:   4,
		7:   4,
		8:   8,
		15:  8,
		16:  16,
		31:  16,
		32:  32,
		100: 32,
	}
	for in, want := range cases {
		p := DefaultParams()
		p.PCFSamples = in
		out, err := p.Normalize()
		require.NoError(t, err)
		assert.Equal(t, want, out.PCFSamples, "input %d", in)
	}
}

func TestNormalizeSnapsBlockerSamplesDown(t *testing.T) {
	cases := map[int]int{
		0:   8,
		1:   8,
		8:   8,
		15:  8,
		16:  16,
		31:  16,
		32:  32,
		100: 32,
	}
	for in, want := range cases {
		p := DefaultParams()
		p.PCSSBlockerSamples = in
		out, err := p.Normalize()
		require.NoError(t, err)
		assert.Equal(t, want, out.PCSSBlockerSamples, "input %d", in)
	}
}

func TestNormalizeClampsScalarRanges(t *testing.T) {
	p := DefaultParams()
	p.Bias = 1.0
	p.PCFRadius = -3
	p.PCSSLightSize = 1000
	p.VSMMinVariance = 0
	p.VSMLightBleedReduction = 1.5
	p.Strength = 9

	out, err := p.Normalize()
	require.NoError(t, err)
	assert.InDelta(t, 0.02, out.Bias, 1e-9)
	assert.InDelta(t, 0.5, out.PCFRadius, 1e-9)
	assert.InDelta(t, 0.2, out.PCSSLightSize, 1e-9)
	assert.InDelta(t, 1e-6, out.VSMMinVariance, 1e-12)
	assert.InDelta(t, 0.8, out.VSMLightBleedReduction, 1e-9)
	assert.InDelta(t, 2.0, out.Strength, 1e-9)

	p = DefaultParams()
	p.Bias = 0.0001
	p.PCSSLightSize = 0.001
	p.VSMMinVariance = 1
	out, err = p.Normalize()
	require.NoError(t, err)
	assert.InDelta(t, 0.001, out.Bias, 1e-9)
	assert.InDelta(t, 0.01, out.PCSSLightSize, 1e-9)
	assert.InDelta(t, 1e-3, out.VSMMinVariance, 1e-9)
}

func TestNormalizeLeavesInRangeValuesUntouched(t *testing.T) {
	p := DefaultParams()
	p.Bias = 0.003
	p.Strength = 0.5
	out, err := p.Normalize()
	require.NoError(t, err)
	assert.InDelta(t, 0.003, out.Bias, 1e-9)
	assert.InDelta(t, 0.5, out.Strength, 1e-9)
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "SM", MethodSM.String())
	assert.Equal(t, "PCF", MethodPCF.String())
	assert.Equal(t, "PCSS", MethodPCSS.String())
	assert.Equal(t, "VSM", MethodVSM.String())
	assert.Equal(t, "Method(7)", Method(7).String())
}

func TestMethodValid(t *testing.T) {
	for m := MethodSM; m <= MethodVSM; m++ {
		assert.True(t, m.Valid(), m.String())
	}
	assert.False(t, Method(-1).Valid())
	assert.False(t, Method(4).Valid())
}
