package shadow

// Configuration is the structural snapshot of the shadow system: the settings
// whose changes require GPU resource or pipeline work, as opposed to uniform
// values that flow through the per-frame buffer write. Two equal
// Configurations always describe identical GPU state.
type Configuration struct {
	Method         Method
	MapSize        int
	SinglePassBlur bool
}

// ConfigurationOf extracts the structural snapshot from full parameters.
func ConfigurationOf(p Params, singlePassBlur bool) Configuration {
	return Configuration{Method: p.Method, MapSize: p.MapSize, SinglePassBlur: singlePassBlur}
}

// Actions is the rebuild work a configuration change requires. The zero value
// means the frame proceeds with everything it already has.
type Actions struct {
	// ReallocResources: shadow textures must be released and recreated
	// (resolution changed, or the capture target kind changed).
	ReallocResources bool
	// RebuildBindGroups: the lit-pass resource bind group must be recreated
	// (it references views or samplers that changed identity).
	RebuildBindGroups bool
	// SwitchPipeline: the active technique pipeline selection changed.
	SwitchPipeline bool
}

// Any reports whether any rebuild work is required.
func (a Actions) Any() bool {
	return a.ReallocResources || a.RebuildBindGroups || a.SwitchPipeline
}

// Reconcile compares two configuration snapshots and returns the rebuild
// actions that move GPU state from old to new. Pure function: the resource
// and pipeline sets execute the result.
//
// Rules:
//   - Equal snapshots require nothing.
//   - A MapSize change reallocates textures, which invalidates bind groups.
//   - A Method change switches the active pipeline and rebuilds bind groups
//     (each technique binds a different resource set). Crossing the
//     depth/moments boundary additionally reallocates textures.
//   - A SinglePassBlur flip only matters for VSM, where it changes which
//     moment texture the lit pass samples, so bind groups rebuild.
//
// Parameters:
//   - old: the configuration the GPU currently reflects
//   - new: the configuration to move to
//
// Returns:
//   - Actions: the required rebuild set
func Reconcile(old, new Configuration) Actions {
	var a Actions
	if old == new {
		return a
	}

	if old.MapSize != new.MapSize {
		a.ReallocResources = true
		a.RebuildBindGroups = true
	}

	if old.Method != new.Method {
		a.SwitchPipeline = true
		a.RebuildBindGroups = true
		if usesMoments(old.Method) != usesMoments(new.Method) {
			a.ReallocResources = true
		}
	}

	if new.Method == MethodVSM && old.SinglePassBlur != new.SinglePassBlur {
		a.RebuildBindGroups = true
	}

	return a
}

// usesMoments reports whether a method captures depth moments into a color
// target (VSM) rather than a bare depth map.
func usesMoments(m Method) bool {
	return m == MethodVSM
}
