// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/gogpu/dither/palette"
	"github.com/gogpu/dither/recording"
	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
)

func newGray(w, h int, v float32) *render.Image {
	img := render.NewImage(w, h, gputypes.TextureFormatRGBA8Unorm)
	img.Fill(render.Color{R: v, G: v, B: v, A: 1})
	return img
}

func mustSet(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// bindDither binds a palette and pattern on the executor.
func bindDither(t *testing.T, e *Executor, pal *palette.Palette, pat *palette.Pattern) {
	t.Helper()
	const p = render.ProgramDither
	mustSet(t, e.SetParam(p, render.UniformPaletteColorCount, recording.FloatValue(float32(pal.MixedColorCount()))))
	mustSet(t, e.SetParam(p, render.UniformPaletteHeight, recording.FloatValue(float32(pal.Height()))))
	mustSet(t, e.SetParam(p, render.UniformPaletteTex, recording.TextureValue(render.TextureTarget(pal.Texture()))))
	mustSet(t, e.SetParam(p, render.UniformPatternSize, recording.FloatValue(float32(pat.Size()))))
	mustSet(t, e.SetParam(p, render.UniformPatternTex, recording.TextureValue(render.TextureTarget(pat.Texture()))))
}

func blackWhite(t *testing.T) *palette.Palette {
	t.Helper()
	pal, err := palette.FromHex("#000000", "#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	return pal
}

func bayer(t *testing.T, n int) *palette.Pattern {
	t.Helper()
	pat, err := palette.Bayer(n)
	if err != nil {
		t.Fatal(err)
	}
	return pat
}

func allFinite(img *render.Image) bool {
	for _, v := range img.Pix() {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}
