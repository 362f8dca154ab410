package shadow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cfg(m Method, size int, singlePass bool) Configuration {
	return Configuration{Method: m, MapSize: size, SinglePassBlur: singlePass}
}

func TestReconcileIdenticalConfigsNeedNothing(t *testing.T) {
	for m := MethodSM; m <= MethodVSM; m++ {
		c := cfg(m, 2048, false)
		actions := Reconcile(c, c)
		assert.False(t, actions.Any(), m.String())
	}
}

func TestReconcileMapSizeChange(t *testing.T) {
	actions := Reconcile(cfg(MethodPCF, 1024, false), cfg(MethodPCF, 2048, false))
	assert.True(t, actions.ReallocResources)
	assert.True(t, actions.RebuildBindGroups)
	assert.False(t, actions.SwitchPipeline)
}

func TestReconcileMethodSwitchWithinDepthFamily(t *testing.T) {
	// SM, PCF, and PCSS all consume the same depth texture; switching between
	// them swaps the pipeline and rebuilds bind groups without reallocating.
	actions := Reconcile(cfg(MethodSM, 2048, false), cfg(MethodPCSS, 2048, false))
	assert.False(t, actions.ReallocResources)
	assert.True(t, actions.RebuildBindGroups)
	assert.True(t, actions.SwitchPipeline)
}

func TestReconcileCrossingMomentBoundaryReallocates(t *testing.T) {
	toVSM := Reconcile(cfg(MethodPCF, 2048, false), cfg(MethodVSM, 2048, false))
	assert.True(t, toVSM.ReallocResources)
	assert.True(t, toVSM.RebuildBindGroups)
	assert.True(t, toVSM.SwitchPipeline)

	fromVSM := Reconcile(cfg(MethodVSM, 2048, false), cfg(MethodSM, 2048, false))
	assert.True(t, fromVSM.ReallocResources)
	assert.True(t, fromVSM.SwitchPipeline)
}

func TestReconcileBlurModeOnlyMattersForVSM(t *testing.T) {
	vsm := Reconcile(cfg(MethodVSM, 2048, false), cfg(MethodVSM, 2048, true))
	assert.True(t, vsm.RebuildBindGroups)
	assert.False(t, vsm.ReallocResources)
	assert.False(t, vsm.SwitchPipeline)

	pcf := Reconcile(cfg(MethodPCF, 2048, false), cfg(MethodPCF, 2048, true))
	assert.False(t, pcf.Any())
}

func TestConfigurationOf(t *testing.T) {
	p := DefaultParams()
	p.Method = MethodVSM
	p.MapSize = 1024

	c := ConfigurationOf(p, true)
	assert.Equal(t, MethodVSM, c.Method)
	assert.Equal(t, 1024, c.MapSize)
	assert.True(t, c.SinglePassBlur)
}

func TestConfigurationIgnoresFilterOnlyParams(t *testing.T) {
	// Bias, radius, and sample count changes ride through uniforms; two
	// parameter sets differing only in those produce the same configuration.
	a := DefaultParams()
	b := a
	b.Bias = 0.005
	b.PCFRadius = 4
	b.PCFSamples = 32
	b.Strength = 1.5
	assert.Equal(t, ConfigurationOf(a, false), ConfigurationOf(b, false))
}
