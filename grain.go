// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dither

import (
	"github.com/gogpu/dither/recording"
	"github.com/gogpu/dither/render"
)

const grainIntensityScale = 20

// GrainParams are the grain program parameters of one frame.
type GrainParams struct {
	// Params1 is (luminance contribution, intensity * 20).
	Params1 [2]float32
	// Params2 is (width / 192 / size, height / 192 / size, offset x, offset y).
	Params2 [4]float32
}

// ComputeGrainParams derives the grain program parameters from the settings,
// the frame size and the noise parameters.
func ComputeGrainParams(g Grain, width, height int, noise NoiseParams) GrainParams {
	return GrainParams{
		Params1: [2]float32{g.LuminanceContribution, g.Intensity * grainIntensityScale},
		Params2: [4]float32{
			float32(width) / NoiseLUTSize / g.Size,
			float32(height) / NoiseLUTSize / g.Size,
			noise.OffsetX,
			noise.OffsetY,
		},
	}
}

// GrainStage blends grain from the lookup texture into an intermediate
// color temporary.
type GrainStage struct {
	// TempName is the name of the intermediate temporary.
	TempName string
}

// Record binds the grain parameters, allocates the intermediate temporary
// with desc and blits src into it. The caller releases the returned
// temporary.
func (s GrainStage) Record(rec *recording.Recorder, src, lut render.Target, desc render.TextureDescriptor, filter render.FilterMode, p GrainParams) (render.Target, error) {
	rec.SetParam(render.ProgramGrain, render.UniformGrainTex, recording.TextureValue(lut))
	rec.SetParam(render.ProgramGrain, render.UniformGrainParams1, recording.VectorValue(p.Params1[0], p.Params1[1], 0, 0))
	rec.SetParam(render.ProgramGrain, render.UniformGrainParams2, recording.VectorValue(p.Params2[0], p.Params2[1], p.Params2[2], p.Params2[3]))
	rec.SetParam(render.ProgramGrain, render.UniformAutoExposure, recording.TextureValue(render.TextureTarget(render.WhiteTexture())))

	desc.DepthBits = 0
	desc.Label = s.TempName
	tmp, err := rec.AcquireTemporary(s.TempName, desc, filter)
	if err != nil {
		return render.Target{}, err
	}
	rec.Blit(src, tmp, render.ProgramGrain, 0)
	return tmp, nil
}
