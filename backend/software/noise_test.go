// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
)

func TestNoiseLUTMonochrome(t *testing.T) {
	lut := render.NewImage(32, 32, gputypes.TextureFormatRGBA16Float)
	runNoiseLUT(lut, 0.2, false)

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			c := lut.At(x, y)
			if c.R != c.G || c.G != c.B {
				t.Fatalf("pixel (%d,%d) = %+v, want equal channels", x, y, c)
			}
		}
	}
}

func TestNoiseLUTColored(t *testing.T) {
	lut := render.NewImage(32, 32, gputypes.TextureFormatRGBA16Float)
	runNoiseLUT(lut, 0.2, true)

	differ := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			c := lut.At(x, y)
			if c.R != c.G || c.G != c.B {
				differ++
			}
		}
	}
	if differ < 32*32/2 {
		t.Errorf("only %d of %d texels have decorrelated channels", differ, 32*32)
	}
}

func TestNoiseLUTCenteredAndBounded(t *testing.T) {
	lut := render.NewImage(64, 64, gputypes.TextureFormatRGBA16Float)
	runNoiseLUT(lut, 0.2, false)

	if !allFinite(lut) {
		t.Fatal("noise contains NaN or Inf")
	}

	var sum float32
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := lut.At(x, y).R
			if math32.Abs(v) > 1 {
				t.Fatalf("noise (%d,%d) = %v, want |v| <= 1", x, y, v)
			}
			sum += v
		}
	}
	if mean := sum / (64 * 64); math32.Abs(mean) > 0.05 {
		t.Errorf("mean = %v, want close to 0", mean)
	}
}

func TestNoiseLUTDeterministic(t *testing.T) {
	a := render.NewImage(16, 16, gputypes.TextureFormatRGBA16Float)
	b := render.NewImage(16, 16, gputypes.TextureFormatRGBA16Float)
	runNoiseLUT(a, 0.2, true)
	runNoiseLUT(b, 0.2, true)

	for i, v := range a.Pix() {
		if b.Pix()[i] != v {
			t.Fatalf("pix[%d] differs: %v vs %v", i, v, b.Pix()[i])
		}
	}
}

func TestNoiseLUTPhaseChangesNoise(t *testing.T) {
	a := render.NewImage(16, 16, gputypes.TextureFormatRGBA16Float)
	b := render.NewImage(16, 16, gputypes.TextureFormatRGBA16Float)
	runNoiseLUT(a, 0.2, false)
	runNoiseLUT(b, 0.7, false)

	same := 0
	for i, v := range a.Pix() {
		if i%4 != 3 && b.Pix()[i] == v {
			same++
		}
	}
	if same > len(a.Pix())/8 {
		t.Errorf("%d channel values unchanged across phases", same)
	}
}
