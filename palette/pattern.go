// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package palette

import (
	"fmt"

	"github.com/gogpu/dither/render"
)

// Pattern is a square threshold texture for ordered dithering.
type Pattern struct {
	tex render.Texture
}

// NewPattern creates a pattern from a square threshold matrix.
func NewPattern(thresholds [][]float32) (*Pattern, error) {
	n := len(thresholds)
	if n == 0 {
		return nil, ErrEmpty
	}
	img := render.NewImage(n, n, TextureFormat)
	for y, row := range thresholds {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrNotSquare, y, len(row), n)
		}
		for x, v := range row {
			img.Set(x, y, render.Color{R: v, G: v, B: v, A: 1})
		}
	}
	return &Pattern{tex: img}, nil
}

// PatternFromTexture wraps a square threshold texture.
func PatternFromTexture(tex render.Texture) (*Pattern, error) {
	if tex == nil || tex.Width() == 0 {
		return nil, ErrEmpty
	}
	if tex.Width() != tex.Height() {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, tex.Width(), tex.Height())
	}
	return &Pattern{tex: tex}, nil
}

// Bayer returns the n x n Bayer ordered-dithering pattern. n must be a
// power of two of at least 2. Thresholds are (rank + 0.5) / n².
func Bayer(n int) (*Pattern, error) {
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("palette: bayer size %d is not a power of two >= 2", n)
	}
	return NewPattern(BayerMatrix(n))
}

// BayerMatrix returns the normalized Bayer threshold matrix of size n, which
// must be a power of two.
func BayerMatrix(n int) [][]float32 {
	rank := [][]int{{0}}
	for size := 1; size < n; size *= 2 {
		next := make([][]int, size*2)
		for y := range next {
			next[y] = make([]int, size*2)
		}
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				v := 4 * rank[y][x]
				next[y][x] = v
				next[y][x+size] = v + 2
				next[y+size][x] = v + 3
				next[y+size][x+size] = v + 1
			}
		}
		rank = next
	}

	area := float32(n * n)
	out := make([][]float32, n)
	for y := range out {
		out[y] = make([]float32, n)
		for x := range out[y] {
			out[y][x] = (float32(rank[y][x]) + 0.5) / area
		}
	}
	return out
}

// Texture returns the pattern texture.
func (p *Pattern) Texture() render.Texture { return p.tex }

// Size returns the pattern edge length in texels.
func (p *Pattern) Size() int { return p.tex.Width() }
