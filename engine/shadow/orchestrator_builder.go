package shadow

// OrchestratorOption configures an Orchestrator before its first allocation.
type OrchestratorOption func(*Orchestrator)

// WithInitialParams sets the starting shadow parameters. They are normalized
// during construction, so out-of-range values clamp the same way SetParams
// clamps them.
//
// Parameters:
//   - p: the initial parameters
//
// Returns:
//   - OrchestratorOption: the option to apply
func WithInitialParams(p Params) OrchestratorOption {
	return func(o *Orchestrator) {
		o.params = p
	}
}

// WithSinglePassBlur makes VSM run only the horizontal half of the moment
// blur. Cheaper and visibly streaky, kept for parity with older builds.
//
// Returns:
//   - OrchestratorOption: the option to apply
func WithSinglePassBlur() OrchestratorOption {
	return func(o *Orchestrator) {
		o.singlePassBlur = true
	}
}
