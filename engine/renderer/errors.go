package renderer

import (
	"errors"
	"fmt"
)

// ErrDeviceLost indicates the GPU device was lost and all GPU resources are invalid.
// Callers should treat this as fatal for the current renderer instance.
var ErrDeviceLost = errors.New("gpu device lost")

// ResourceAllocationError wraps a failure to allocate a GPU resource such as a
// texture, buffer, or sampler. Resource names the allocation that failed so
// callers can log which shadow resource could not be created.
type ResourceAllocationError struct {
	Resource string
	Err      error
}

func (e *ResourceAllocationError) Error() string {
	return fmt.Sprintf("failed to allocate %s: %v", e.Resource, e.Err)
}

func (e *ResourceAllocationError) Unwrap() error {
	return e.Err
}

// PipelineCompileError wraps a failure to create a GPU pipeline, typically a
// shader module compile error or an incompatible bind group layout.
type PipelineCompileError struct {
	PipelineKey string
	Err         error
}

func (e *PipelineCompileError) Error() string {
	return fmt.Sprintf("failed to build pipeline %q: %v", e.PipelineKey, e.Err)
}

func (e *PipelineCompileError) Unwrap() error {
	return e.Err
}
