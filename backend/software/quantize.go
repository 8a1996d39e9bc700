// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"github.com/gogpu/dither/render"
)

type ditherParams struct {
	palette    *render.Image
	colorCount int
	rows       int
	pattern    *render.Image
	size       int
	workers    *workerPool
}

// entries returns the palette rows limited to the bound color count.
func (p ditherParams) entries() [][]render.Color {
	rows := min(p.rows, p.palette.Height())
	count := min(p.colorCount, p.palette.Width())
	out := make([][]render.Color, rows)
	for y := range out {
		out[y] = make([]render.Color, count)
		for x := range out[y] {
			out[y][x] = p.palette.At(x, y)
		}
	}
	return out
}

// runOrdered dithers src into dst with the threshold pattern.
//
// Each row of the palette is a mix group ordered dark to light. For every
// pixel the closest segment between two neighbouring entries of a group is
// found; t is the position of the color along it. The lighter entry is
// written when t exceeds the pattern threshold, the darker one otherwise.
func runOrdered(src, dst *render.Image, p ditherParams) {
	groups := p.entries()
	size := max(p.size, 1)
	w, h := dst.Width(), dst.Height()
	p.workers.rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			v := (float32(y) + 0.5) / float32(h)
			for x := 0; x < w; x++ {
				u := (float32(x) + 0.5) / float32(w)
				c := sampleNearest(src, u, v)
				c = render.Color{R: saturate(c.R), G: saturate(c.G), B: saturate(c.B), A: c.A}

				lo, hi, t := closestSegment(groups, c)
				threshold := p.pattern.At(x%size%p.pattern.Width(), y%size%p.pattern.Height()).R

				out := lo
				if t > threshold {
					out = hi
				}
				out.A = c.A
				dst.Set(x, y, out)
			}
		}
	})
}

// runNearest maps every pixel of src to the nearest palette entry.
func runNearest(src, dst *render.Image, p ditherParams) {
	groups := p.entries()
	w, h := dst.Width(), dst.Height()
	p.workers.rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			v := (float32(y) + 0.5) / float32(h)
			for x := 0; x < w; x++ {
				u := (float32(x) + 0.5) / float32(w)
				c := sampleNearest(src, u, v)

				best, bestDist := render.Color{}, float32(-1)
				for _, g := range groups {
					for _, e := range g {
						if d := dist2(e, c); bestDist < 0 || d < bestDist {
							best, bestDist = e, d
						}
					}
				}
				best.A = c.A
				dst.Set(x, y, best)
			}
		}
	})
}

// closestSegment returns the neighbouring palette entries whose segment lies
// closest to c, and the position of c projected onto it in [0, 1].
func closestSegment(groups [][]render.Color, c render.Color) (lo, hi render.Color, t float32) {
	bestDist := float32(-1)
	for _, g := range groups {
		if len(g) == 1 {
			if d := dist2(g[0], c); bestDist < 0 || d < bestDist {
				lo, hi, t, bestDist = g[0], g[0], 0, d
			}
			continue
		}
		for i := 0; i+1 < len(g); i++ {
			a, b := g[i], g[i+1]
			ab := render.Color{R: b.R - a.R, G: b.G - a.G, B: b.B - a.B}
			den := ab.R*ab.R + ab.G*ab.G + ab.B*ab.B
			var s float32
			if den > 0 {
				s = saturate(((c.R-a.R)*ab.R + (c.G-a.G)*ab.G + (c.B-a.B)*ab.B) / den)
			}
			p := render.Color{R: a.R + ab.R*s, G: a.G + ab.G*s, B: a.B + ab.B*s}
			if d := dist2(p, c); bestDist < 0 || d < bestDist {
				lo, hi, t, bestDist = a, b, s, d
			}
		}
	}
	return lo, hi, t
}

func dist2(a, b render.Color) float32 {
	dr, dg, db := a.R-b.R, a.G-b.G, a.B-b.B
	return dr*dr + dg*dg + db*db
}
