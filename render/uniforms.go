// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// Shader parameter names. Programs look parameters up by these exact
// strings, so they must not change.
const (
	UniformPhase        = "_Phase"
	UniformGrainTex     = "_GrainTex"
	UniformGrainParams1 = "_Grain_Params1"
	UniformGrainParams2 = "_Grain_Params2"
	UniformAutoExposure = "_AutoExposure"

	UniformPaletteColorCount = "_PaletteColorCount"
	UniformPaletteHeight     = "_PaletteHeight"
	UniformPaletteTex        = "_PaletteTex"
	UniformPatternSize       = "_PatternSize"
	UniformPatternTex        = "_PatternTex"

	// UniformInverseView is the global camera-to-world matrix.
	UniformInverseView = "_InverseView"
)

// Texture names shared with the host.
const (
	CameraColorTexture      = "_CameraColorTexture"
	AfterPostProcessTexture = "_AfterPostProcessTexture"
	BlitPassTexture         = "_BlitPassTexture"
	NoiseLUTTexture         = "_NoiseLutTexture"
	TemporaryColorTexture   = "_TemporaryColorTexture"
)
