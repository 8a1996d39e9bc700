// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
)

func testLUT() *render.Image {
	lut := render.NewImage(192, 192, gputypes.TextureFormatRGBA16Float)
	runNoiseLUT(lut, 0.2, true)
	return lut
}

func TestGrainZeroIntensityIsPassThrough(t *testing.T) {
	src := render.NewImage(24, 16, gputypes.TextureFormatRGBA32Float)
	for y := 0; y < 16; y++ {
		for x := 0; x < 24; x++ {
			src.Set(x, y, render.Color{R: float32(x) / 24, G: float32(y) / 16, B: 0.5, A: 1})
		}
	}
	dst := render.NewImage(24, 16, gputypes.TextureFormatRGBA32Float)

	runGrain(src, dst, grainParams{
		lut:      testLUT(),
		exposure: render.WhiteTexture(),
		params1:  [4]float32{0.8, 0},
		params2:  [4]float32{24.0 / 192, 16.0 / 192, 0.3, 0.6},
	})

	for i, v := range src.Pix() {
		if dst.Pix()[i] != v {
			t.Fatalf("pix[%d] = %v, want %v", i, dst.Pix()[i], v)
		}
	}
}

func TestGrainChangesPixels(t *testing.T) {
	src := render.NewImage(32, 32, gputypes.TextureFormatRGBA32Float)
	src.Fill(render.Color{R: 0.4, G: 0.4, B: 0.4, A: 1})
	dst := render.NewImage(32, 32, gputypes.TextureFormatRGBA32Float)

	runGrain(src, dst, grainParams{
		lut:      testLUT(),
		exposure: render.WhiteTexture(),
		params1:  [4]float32{0.8, 10},
		params2:  [4]float32{32.0 / 192, 32.0 / 192, 0, 0},
	})

	changed := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			c := dst.At(x, y)
			if c.R != 0.4 {
				changed++
			}
			if c.A != 1 {
				t.Fatalf("alpha (%d,%d) = %v, want 1", x, y, c.A)
			}
		}
	}
	if changed < 32*32/2 {
		t.Errorf("grain changed only %d of %d pixels", changed, 32*32)
	}
}

func TestGrainBoundaryFinite(t *testing.T) {
	src := render.NewImage(64, 64, gputypes.TextureFormatRGBA8Unorm)
	src.Fill(render.Color{R: 1, G: 0.5, B: 0, A: 1})
	dst := render.NewImage(64, 64, gputypes.TextureFormatRGBA16Float)

	// intensity 1, size 0.3
	runGrain(src, dst, grainParams{
		lut:      testLUT(),
		exposure: render.WhiteTexture(),
		params1:  [4]float32{1, 20},
		params2:  [4]float32{64.0 / 192 / 0.3, 64.0 / 192 / 0.3, 0.99, 0.99},
	})

	if !allFinite(dst) {
		t.Error("grain output contains NaN or Inf")
	}
}

func TestSampleBilinearRepeatWraps(t *testing.T) {
	img := render.NewImage(2, 1, gputypes.TextureFormatRGBA32Float)
	img.Set(0, 0, render.Color{R: 0})
	img.Set(1, 0, render.Color{R: 1})

	// The right edge blends the last texel with the first.
	if got := sampleBilinearRepeat(img, 1, 0.5).R; got != 0.5 {
		t.Errorf("sample at u=1 = %v, want 0.5", got)
	}
	if got := sampleBilinearRepeat(img, 0.75, 0.5).R; got != 1 {
		t.Errorf("sample at texel center = %v, want 1", got)
	}
	a, b := sampleBilinearRepeat(img, 0.3, 0.5), sampleBilinearRepeat(img, 1.3, 0.5)
	if math32.Abs(a.R-b.R) > 1e-5 {
		t.Errorf("repeat mismatch: %v vs %v", a.R, b.R)
	}
}
