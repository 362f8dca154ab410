package shadow

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPassPlanDepthTechniques(t *testing.T) {
	for _, m := range []Method{MethodSM, MethodPCF, MethodPCSS} {
		plan := PassPlan(m, false)
		assert.Equal(t, []Pass{PassCapture, PassLit}, plan, m.String())

		// Blur mode has no effect outside VSM.
		assert.Equal(t, plan, PassPlan(m, true), m.String())
	}
}

func TestPassPlanVSMTwoPassBlur(t *testing.T) {
	plan := PassPlan(MethodVSM, false)
	assert.Equal(t, []Pass{PassCapture, PassBlurH, PassBlurV, PassLit}, plan)
}

func TestPassPlanVSMSinglePassBlur(t *testing.T) {
	plan := PassPlan(MethodVSM, true)
	assert.Equal(t, []Pass{PassCapture, PassBlurH, PassLit}, plan)
}

func TestPassPlanAlwaysCapturesFirstAndShadesLast(t *testing.T) {
	for m := MethodSM; m <= MethodVSM; m++ {
		for _, single := range []bool{false, true} {
			plan := PassPlan(m, single)
			assert.Equal(t, PassCapture, plan[0])
			assert.Equal(t, PassLit, plan[len(plan)-1])
		}
	}
}

func TestParamStagingIsSafeAcrossGoroutines(t *testing.T) {
	// Staging runs on caller goroutines while the render loop drains pending
	// changes each frame. Filter-only changes never touch GPU resources, so
	// the handoff can be exercised without a device; the race detector flags
	// any unguarded access.
	params := DefaultParams()
	o := &Orchestrator{
		params: params,
		cfg:    ConfigurationOf(params, false),
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			p := DefaultParams()
			p.Bias = 0.001 + float32(i%10)*0.0001
			assert.NoError(t, o.SetParams(p))
			_ = o.Params()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			o.applyPending()
		}
	}()
	wg.Wait()

	o.applyPending()
	got := o.Params()
	assert.Equal(t, MethodPCF, got.Method)
	assert.GreaterOrEqual(t, got.Bias, float32(0.001))
}
