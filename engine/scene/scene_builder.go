package scene

// SceneBuilderOption configures a scene at creation time.
type SceneBuilderOption func(*scene)

// WithActive sets the scene's initial active state. Scenes start active.
//
// Parameters:
//   - active: true to render the scene
//
// Returns:
//   - SceneBuilderOption: the option to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithPrepWorkers overrides the number of goroutines in the frame prep pool.
// Defaults to NumCPU-1, minimum 1.
//
// Parameters:
//   - workers: the worker count (values below 1 are clamped to 1)
//
// Returns:
//   - SceneBuilderOption: the option to apply
func WithPrepWorkers(workers int) SceneBuilderOption {
	return func(s *scene) {
		s.prepWorkers = max(workers, 1)
	}
}
