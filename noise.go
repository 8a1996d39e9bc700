// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dither

import (
	"math/rand/v2"

	"github.com/gogpu/dither/recording"
	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
)

// Noise lookup texture layout.
const (
	NoiseLUTSize   = 192
	NoiseLUTFormat = gputypes.TextureFormatRGBA16Float
)

const (
	staticNoiseTime = 4
	phaseDivisor    = 20
)

// RandSource produces uniform samples in [0, 1).
type RandSource interface {
	Float32() float32
}

type globalRand struct{}

func (globalRand) Float32() float32 { return rand.Float32() }

// NoiseParams are the per-frame noise parameters.
type NoiseParams struct {
	Time             float32
	Phase            float32
	OffsetX, OffsetY float32
}

// ComputeNoiseParams returns the noise parameters of one frame. Static noise
// uses time 4 and no offset. Animated noise draws time and both offsets
// independently from rng. Phase is time / 20.
func ComputeNoiseParams(animated bool, rng RandSource) NoiseParams {
	p := NoiseParams{Time: staticNoiseTime}
	if animated {
		if rng == nil {
			rng = globalRand{}
		}
		p.Time = rng.Float32()
		p.OffsetX = rng.Float32()
		p.OffsetY = rng.Float32()
	}
	p.Phase = p.Time / phaseDivisor
	return p
}

// NoiseStage generates the noise lookup texture.
type NoiseStage struct {
	// LUTName is the name of the lookup temporary.
	LUTName string
	// Colored selects the colored generator pass.
	Colored bool
}

// Pass returns the generator pass index: 1 for colored noise, 0 otherwise.
func (s NoiseStage) Pass() int {
	if s.Colored {
		return 1
	}
	return 0
}

// Descriptor returns the lookup texture descriptor.
func (s NoiseStage) Descriptor() render.TextureDescriptor {
	d := render.DefaultTextureDescriptor(NoiseLUTSize, NoiseLUTSize, NoiseLUTFormat)
	d.Label = s.LUTName
	return d
}

// Record allocates the lookup texture, binds the phase and fills the texture.
// The caller releases the returned temporary.
func (s NoiseStage) Record(rec *recording.Recorder, params NoiseParams) (render.Target, error) {
	lut, err := rec.AcquireTemporary(s.LUTName, s.Descriptor(), render.FilterBilinear)
	if err != nil {
		return render.Target{}, err
	}
	rec.SetParam(render.ProgramNoiseLUT, render.UniformPhase, recording.FloatValue(params.Phase))
	rec.Blit(render.NoTarget(), lut, render.ProgramNoiseLUT, s.Pass())
	return lut, nil
}
