package renderer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceLossClassificationSurvivesWrapping(t *testing.T) {
	// BeginFrame reports a failed swapchain acquire as a device loss; callers
	// match it through any further wrapping.
	acquire := fmt.Errorf("%w: %v", ErrDeviceLost, errors.New("surface outdated"))
	frame := fmt.Errorf("lit frame: %w", acquire)
	assert.True(t, errors.Is(frame, ErrDeviceLost))
	assert.Contains(t, frame.Error(), "surface outdated")
}

func TestResourceAllocationErrorUnwraps(t *testing.T) {
	cause := errors.New("out of memory")
	err := &ResourceAllocationError{Resource: "shadow depth texture", Err: cause}
	assert.Contains(t, err.Error(), "shadow depth texture")
	assert.True(t, errors.Is(err, cause))

	var allocErr *ResourceAllocationError
	require.True(t, errors.As(fmt.Errorf("allocate: %w", err), &allocErr))
	assert.Equal(t, "shadow depth texture", allocErr.Resource)
}

func TestPipelineCompileErrorUnwraps(t *testing.T) {
	cause := errors.New("bad WGSL")
	err := &PipelineCompileError{PipelineKey: "shadow_lit_vsm", Err: cause}
	assert.Contains(t, err.Error(), "shadow_lit_vsm")
	assert.True(t, errors.Is(err, cause))
}
