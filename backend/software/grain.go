// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/dither/render"
)

type grainParams struct {
	lut      *render.Image
	exposure *render.Image
	params1  [4]float32 // luminance contribution, intensity scale
	params2  [4]float32 // lut scale xy, lut offset xy
	workers  *workerPool
}

// runGrain blends grain into dst from src.
//
// The lookup texture is sampled at uv * params2.xy + params2.zw with
// bilinear filtering and repeat addressing. The grain response falls off on
// bright pixels: lum = mix(1, 1 - sqrt(luminance(saturate(c))), params1.x),
// and the color becomes c + c * grain * params1.y * lum.
func runGrain(src, dst *render.Image, p grainParams) {
	exposure := p.exposure.At(0, 0).R
	w, h := dst.Width(), dst.Height()
	p.workers.rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			v := (float32(y) + 0.5) / float32(h)
			for x := 0; x < w; x++ {
				u := (float32(x) + 0.5) / float32(w)

				c := sampleNearest(src, u, v)
				c.R *= exposure
				c.G *= exposure
				c.B *= exposure

				g := sampleBilinearRepeat(p.lut, u*p.params2[0]+p.params2[2], v*p.params2[1]+p.params2[3])

				sat := render.Color{R: saturate(c.R), G: saturate(c.G), B: saturate(c.B)}
				lum := lerp(1, 1-math32.Sqrt(sat.Luminance()), p.params1[0])
				k := p.params1[1] * lum

				c.R += c.R * g.R * k
				c.G += c.G * g.G * k
				c.B += c.B * g.B * k
				dst.Set(x, y, c)
			}
		}
	})
}
