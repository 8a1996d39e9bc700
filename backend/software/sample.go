// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/dither/render"
)

// sampleNearest reads img at normalized coordinates (u, v) with clamping.
func sampleNearest(img *render.Image, u, v float32) render.Color {
	x := int(math32.Floor(u * float32(img.Width())))
	y := int(math32.Floor(v * float32(img.Height())))
	x = min(max(x, 0), img.Width()-1)
	y = min(max(y, 0), img.Height()-1)
	return img.At(x, y)
}

// sampleBilinearRepeat reads img at normalized coordinates (u, v) with
// bilinear filtering and repeat addressing.
func sampleBilinearRepeat(img *render.Image, u, v float32) render.Color {
	w, h := img.Width(), img.Height()
	fx := u*float32(w) - 0.5
	fy := v*float32(h) - 0.5
	x0 := math32.Floor(fx)
	y0 := math32.Floor(fy)
	tx := fx - x0
	ty := fy - y0

	ix, iy := int(x0), int(y0)
	c00 := img.At(wrap(ix, w), wrap(iy, h))
	c10 := img.At(wrap(ix+1, w), wrap(iy, h))
	c01 := img.At(wrap(ix, w), wrap(iy+1, h))
	c11 := img.At(wrap(ix+1, w), wrap(iy+1, h))

	return lerpColor(lerpColor(c00, c10, tx), lerpColor(c01, c11, tx), ty)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func lerpColor(a, b render.Color, t float32) render.Color {
	return render.Color{
		R: lerp(a.R, b.R, t),
		G: lerp(a.G, b.G, t),
		B: lerp(a.B, b.B, t),
		A: lerp(a.A, b.A, t),
	}
}

func saturate(v float32) float32 {
	return math32.Min(math32.Max(v, 0), 1)
}
