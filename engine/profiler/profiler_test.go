package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickDeliversSampleAfterInterval(t *testing.T) {
	p := NewProfiler()
	p.updateInterval = 10 * time.Millisecond

	var got *FrameSample
	p.SetSampleCallback(func(s FrameSample) {
		got = &s
	})

	// First tick lands inside the interval: no sample yet.
	assert.False(t, p.Tick())
	assert.Nil(t, got)

	time.Sleep(15 * time.Millisecond)
	assert.True(t, p.Tick())
	require.NotNil(t, got)
	assert.Greater(t, got.FPS, 0.0)
	assert.Greater(t, got.FrameTimeMs, 0.0)
}

func TestTickResetsWindowAfterSample(t *testing.T) {
	p := NewProfiler()
	p.updateInterval = 5 * time.Millisecond

	time.Sleep(6 * time.Millisecond)
	assert.True(t, p.Tick())
	// Immediately after a sample the window restarts.
	assert.False(t, p.Tick())
}

func TestNilCallbackIsAllowed(t *testing.T) {
	p := NewProfiler()
	p.updateInterval = time.Nanosecond
	p.SetSampleCallback(nil)
	time.Sleep(time.Millisecond)
	assert.NotPanics(t, func() { p.Tick() })
}
