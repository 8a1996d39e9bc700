// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dither

import (
	"github.com/gogpu/dither/recording"
	"github.com/gogpu/dither/render"
)

// DitherBindings are the dither program parameters, bound without any
// unit conversion.
type DitherBindings struct {
	PaletteColorCount int
	PaletteHeight     int
	PaletteTexture    render.Texture
	PatternSize       int
	PatternTexture    render.Texture
}

// BindingsFor returns the dither bindings of d. d must have passed validation.
func BindingsFor(d Dithering) DitherBindings {
	pattern := d.EffectivePattern()
	return DitherBindings{
		PaletteColorCount: d.Palette.MixedColorCount(),
		PaletteHeight:     d.Palette.Height(),
		PaletteTexture:    d.Palette.Texture(),
		PatternSize:       pattern.Width(),
		PatternTexture:    pattern,
	}
}

// DitherStage quantizes the intermediate buffer into the destination.
type DitherStage struct {
	// PassIndex is the dither program pass, already clamped.
	PassIndex int
}

// Record binds the palette and pattern and blits src into dst.
func (s DitherStage) Record(rec *recording.Recorder, src, dst render.Target, b DitherBindings) {
	rec.SetParam(render.ProgramDither, render.UniformPaletteColorCount, recording.FloatValue(float32(b.PaletteColorCount)))
	rec.SetParam(render.ProgramDither, render.UniformPaletteHeight, recording.FloatValue(float32(b.PaletteHeight)))
	rec.SetParam(render.ProgramDither, render.UniformPaletteTex, recording.TextureValue(render.TextureTarget(b.PaletteTexture)))
	rec.SetParam(render.ProgramDither, render.UniformPatternSize, recording.FloatValue(float32(b.PatternSize)))
	rec.SetParam(render.ProgramDither, render.UniformPatternTex, recording.TextureValue(render.TextureTarget(b.PatternTexture)))
	rec.Blit(src, dst, render.ProgramDither, s.PassIndex)
}
