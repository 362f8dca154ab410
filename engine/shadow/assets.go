package shadow

import _ "embed"

// WGSL programs for the shadow frame graph. Shared fragments (the frame
// uniform block, the lit vertex stage, the Poisson table) are injected through
// the shader pre-processor rather than duplicated per program.

//go:embed assets/depth.wgsl
var depthWGSL string

//go:embed assets/moment.wgsl
var momentWGSL string

//go:embed assets/blur.wgsl
var blurWGSL string

//go:embed assets/lit_stage.wgsl
var litStageWGSL string

//go:embed assets/lit_sm.wgsl
var litSMWGSL string

//go:embed assets/lit_pcf.wgsl
var litPCFWGSL string

//go:embed assets/lit_pcss.wgsl
var litPCSSWGSL string

//go:embed assets/lit_vsm.wgsl
var litVSMWGSL string
