// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestImageSetQuantizesUnorm8(t *testing.T) {
	m := NewImage(1, 1, gputypes.TextureFormatRGBA8Unorm)
	m.Set(0, 0, Color{R: 0.5, G: 0.1, B: 1.2, A: -1})

	got := m.At(0, 0)
	want := Color{R: 128.0 / 255, G: 26.0 / 255, B: 1, A: 0}
	if got != want {
		t.Errorf("At(0,0) = %+v, want %+v", got, want)
	}
}

func TestImageSetKeepsFloat(t *testing.T) {
	m := NewImage(1, 1, gputypes.TextureFormatRGBA16Float)
	c := Color{R: 0.5, G: 1.75, B: -0.25, A: 1}
	m.Set(0, 0, c)
	if got := m.At(0, 0); got != c {
		t.Errorf("At(0,0) = %+v, want %+v", got, c)
	}
}

func TestImageOutOfBounds(t *testing.T) {
	m := NewImage(2, 2, gputypes.TextureFormatRGBA32Float)
	m.Set(-1, 0, White)
	m.Set(2, 2, White)
	for _, v := range m.Pix() {
		if v != 0 {
			t.Fatalf("out-of-bounds Set modified pixels: %v", m.Pix())
		}
	}
	if got := m.At(5, 5); got != (Color{}) {
		t.Errorf("At(5,5) = %+v, want zero", got)
	}
}

func TestImageRoundTripGo(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 128, B: 0, A: 255})

	m := ImageFromGo(src, gputypes.TextureFormatRGBA8Unorm)
	if m.Width() != 3 || m.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", m.Width(), m.Height())
	}

	out := m.ToNRGBA()
	if got := out.NRGBAAt(1, 1); got != (color.NRGBA{R: 255, G: 128, B: 0, A: 255}) {
		t.Errorf("round trip = %v", got)
	}
}

func TestImageCopyFrom(t *testing.T) {
	src := NewImage(2, 1, gputypes.TextureFormatRGBA32Float)
	src.Set(1, 0, Color{R: 0.3, A: 1})

	dst := NewImage(2, 1, gputypes.TextureFormatRGBA32Float)
	if err := dst.CopyFrom(src); err != nil {
		t.Fatalf("CopyFrom() error = %v", err)
	}
	if dst.At(1, 0) != src.At(1, 0) {
		t.Errorf("CopyFrom() pixel = %+v, want %+v", dst.At(1, 0), src.At(1, 0))
	}

	if err := NewImage(3, 3, gputypes.TextureFormatRGBA32Float).CopyFrom(src); err == nil {
		t.Error("CopyFrom() with mismatched size succeeded")
	}
}

func TestLuminance(t *testing.T) {
	if got := White.Luminance(); got < 0.9999 || got > 1.0001 {
		t.Errorf("White.Luminance() = %v, want 1", got)
	}
	if got := (Color{}).Luminance(); got != 0 {
		t.Errorf("black luminance = %v, want 0", got)
	}
}

func TestWhiteTexture(t *testing.T) {
	w := WhiteTexture()
	if w.Width() != 1 || w.Height() != 1 {
		t.Fatalf("size = %dx%d", w.Width(), w.Height())
	}
	if w.At(0, 0) != White {
		t.Errorf("pixel = %+v, want white", w.At(0, 0))
	}
}
