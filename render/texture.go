// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
)

// Texture is a two-dimensional surface with a pixel format.
//
// Textures passed to the pass (palette, pattern, external buffers) are owned
// by the caller and are only read. Executors type-assert the concrete type
// they can bind: *Image for the software executor, GPU textures for wgpu.
type Texture interface {
	Width() int
	Height() int
	Format() gputypes.TextureFormat
}

// Color is a straight-alpha RGBA color with float32 components.
type Color struct {
	R, G, B, A float32
}

// White is the neutral exposure color.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// Luminance returns the Rec. 709 relative luminance of c.
func (c Color) Luminance() float32 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// Image is a CPU-resident RGBA texture with float32 channels.
//
// The storage format is informational for float formats. For 8-bit unorm
// formats Set rounds each channel to the nearest representable value, so an
// Image behaves like the GPU texture it stands in for.
type Image struct {
	width, height int
	format        gputypes.TextureFormat
	pix           []float32
}

// NewImage creates a zeroed image. It panics if width or height is negative.
func NewImage(width, height int, format gputypes.TextureFormat) *Image {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("render: negative image size %dx%d", width, height))
	}
	return &Image{
		width:  width,
		height: height,
		format: format,
		pix:    make([]float32, width*height*4),
	}
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.height }

// Format returns the nominal pixel format.
func (m *Image) Format() gputypes.TextureFormat { return m.format }

// Pix returns the raw channel data, four float32 per pixel, row-major.
func (m *Image) Pix() []float32 { return m.pix }

// Stride returns the number of float32 values per row.
func (m *Image) Stride() int { return m.width * 4 }

// At returns the color at (x, y). Out-of-bounds reads return transparent black.
func (m *Image) At(x, y int) Color {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return Color{}
	}
	i := (y*m.width + x) * 4
	return Color{R: m.pix[i], G: m.pix[i+1], B: m.pix[i+2], A: m.pix[i+3]}
}

// Set stores c at (x, y). Out-of-bounds writes are ignored.
func (m *Image) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	if IsUnorm8(m.format) {
		c = Color{R: quantize8(c.R), G: quantize8(c.G), B: quantize8(c.B), A: quantize8(c.A)}
	}
	i := (y*m.width + x) * 4
	m.pix[i] = c.R
	m.pix[i+1] = c.G
	m.pix[i+2] = c.B
	m.pix[i+3] = c.A
}

// Fill sets every pixel to c.
func (m *Image) Fill(c Color) {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			m.Set(x, y, c)
		}
	}
}

// Clear zeroes all pixels.
func (m *Image) Clear() {
	clear(m.pix)
}

// Clone returns a deep copy of m.
func (m *Image) Clone() *Image {
	c := &Image{width: m.width, height: m.height, format: m.format}
	c.pix = append([]float32(nil), m.pix...)
	return c
}

// CopyFrom copies the pixels of src into m. Both images must have the same size.
func (m *Image) CopyFrom(src *Image) error {
	if src.width != m.width || src.height != m.height {
		return fmt.Errorf("render: copy %dx%d into %dx%d", src.width, src.height, m.width, m.height)
	}
	if !IsUnorm8(m.format) {
		copy(m.pix, src.pix)
		return nil
	}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			m.Set(x, y, src.At(x, y))
		}
	}
	return nil
}

// ImageFromGo converts a standard library image into an Image of the given
// format. The conversion goes through non-premultiplied 16-bit channels.
func ImageFromGo(src image.Image, format gputypes.TextureFormat) *Image {
	b := src.Bounds()
	nrgba := image.NewNRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(nrgba, nrgba.Bounds(), src, b.Min, xdraw.Src)

	m := NewImage(b.Dx(), b.Dy(), format)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			c := nrgba.NRGBA64At(x, y)
			m.Set(x, y, Color{
				R: float32(c.R) / 0xffff,
				G: float32(c.G) / 0xffff,
				B: float32(c.B) / 0xffff,
				A: float32(c.A) / 0xffff,
			})
		}
	}
	return m
}

// ToNRGBA converts m to an 8-bit non-premultiplied image, clamping each
// channel to [0, 1].
func (m *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			c := m.At(x, y)
			out.SetNRGBA(x, y, color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)})
		}
	}
	return out
}

// IsUnorm8 reports whether format stores 8-bit normalized channels.
func IsUnorm8(format gputypes.TextureFormat) bool {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb,
		gputypes.TextureFormatR8Unorm:
		return true
	}
	return false
}

func quantize8(v float32) float32 {
	return float32(to8(v)) / 255
}

func to8(v float32) uint8 {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}

var whiteTexture = func() *Image {
	m := NewImage(1, 1, gputypes.TextureFormatRGBA8Unorm)
	m.Set(0, 0, White)
	return m
}()

// WhiteTexture returns the shared 1x1 opaque white texture. It is bound as
// the neutral exposure input of the grain program and must not be modified.
func WhiteTexture() *Image { return whiteTexture }
