// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/dither/render"
)

// Per-channel phase multipliers of the noise generator. The monochrome pass
// uses the first one for all channels.
var channelPhase = [3]float32{0.07, 0.11, 0.13}

// hash returns a pseudo-random value in [0, 1) for the lattice point (x, y)
// shifted by seed.
func hash(x, y, seed float32) float32 {
	x += seed
	y += seed
	return fract(math32.Sin(x*12.9898+y*78.233) * 43758.5453)
}

func fract(v float32) float32 {
	return v - math32.Floor(v)
}

// grainChannel computes one channel of the noise lookup texture.
//
// Raw noise is first high-passed (3x3 kernel, weights 1/2/-12, zero sum)
// to remove low frequencies, then smoothed with a 3x3 tent filter so
// grain clumps over neighbouring texels. The result is signed and centered
// on zero.
func grainChannel(size int, seed float32) []float32 {
	const pad = 2
	n := size + 2*pad

	raw := make([]float32, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			raw[y*n+x] = hash(float32(x-pad)+0.5, float32(y-pad)+0.5, seed)
		}
	}

	highPass := make([]float32, n*n)
	for y := 1; y < n-1; y++ {
		for x := 1; x < n-1; x++ {
			highPass[y*n+x] = convolve3(raw, n, x, y, 1, 2, -12) / 24
		}
	}

	out := make([]float32, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			out[y*size+x] = convolve3(highPass, n, x+pad, y+pad, 1, 2, 4) / 16
		}
	}
	return out
}

// convolve3 applies a symmetric 3x3 kernel with corner weight a, edge
// weight b and center weight c around (x, y).
func convolve3(src []float32, stride, x, y int, a, b, c float32) float32 {
	at := func(dx, dy int) float32 { return src[(y+dy)*stride+x+dx] }
	return a*(at(-1, -1)+at(1, -1)+at(-1, 1)+at(1, 1)) +
		b*(at(0, -1)+at(-1, 0)+at(1, 0)+at(0, 1)) +
		c*at(0, 0)
}

// runNoiseLUT fills dst with grain noise. Pass 0 writes the same noise to
// every channel, pass 1 decorrelates the channels.
func runNoiseLUT(dst *render.Image, phase float32, colored bool) {
	// The generator is square; a non-square target gets its largest square.
	size := min(dst.Width(), dst.Height())
	p := fract(phase)

	var ch [3][]float32
	ch[0] = grainChannel(size, channelPhase[0]*p)
	if colored {
		ch[1] = grainChannel(size, channelPhase[1]*p)
		ch[2] = grainChannel(size, channelPhase[2]*p)
	} else {
		ch[1], ch[2] = ch[0], ch[0]
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := y*size + x
			dst.Set(x, y, render.Color{R: ch[0][i], G: ch[1][i], B: ch[2][i], A: 1})
		}
	}
}
