package shadow

// PackTechnique encodes the per-method parameter slot of FrameUniforms.
// The slot's lane meaning depends on the active method:
//
//	SM, PCF: (bias, pcfRadius, pcfSamples, mapSize)
//	PCSS:    (bias, pcssLightSize, pcssBlockerSamples, mapSize)
//	VSM:     (vsmMinVariance, vsmLightBleedReduction, 0, 0)
//
// SM ignores the radius and sample lanes but shares the PCF layout so the two
// techniques can share one uniform writer.
//
// Parameters:
//   - p: normalized shadow parameters
//
// Returns:
//   - [4]float32: the technique slot for the active method
func PackTechnique(p Params) [4]float32 {
	switch p.Method {
	case MethodPCSS:
		return [4]float32{p.Bias, p.PCSSLightSize, float32(p.PCSSBlockerSamples), float32(p.MapSize)}
	case MethodVSM:
		return [4]float32{p.VSMMinVariance, p.VSMLightBleedReduction, 0, 0}
	default: // SM, PCF
		return [4]float32{p.Bias, p.PCFRadius, float32(p.PCFSamples), float32(p.MapSize)}
	}
}

// PackCameraPos packs the eye position with the shadow strength riding the w
// lane, matching the FrameUniforms contract.
//
// Parameters:
//   - pos: world-space eye position
//   - strength: the shared shadow strength scalar in [0, 2]
//
// Returns:
//   - [4]float32: (pos.x, pos.y, pos.z, strength)
func PackCameraPos(pos [3]float32, strength float32) [4]float32 {
	return [4]float32{pos[0], pos[1], pos[2], strength}
}
