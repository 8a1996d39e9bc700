// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package palette

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
)

// Errors returned by palette and pattern constructors.
var (
	ErrEmpty        = errors.New("palette: no colors")
	ErrRaggedGroups = errors.New("palette: mix groups differ in length")
	ErrNotSquare    = errors.New("palette: pattern is not square")
	ErrInvalidHex   = errors.New("palette: invalid hex color")
	ErrUnknown      = errors.New("palette: unknown preset")
)

// TextureFormat is the format of textures built by this package.
const TextureFormat = gputypes.TextureFormatRGBA32Float

// Palette is a set of mix groups stored as a texture.
type Palette struct {
	tex   render.Texture
	mixed int
}

// New creates a single-group palette. Colors are sorted by luminance.
func New(colors ...render.Color) (*Palette, error) {
	return NewGrouped([][]render.Color{colors})
}

// NewGrouped creates a palette with one texture row per group. Every group
// must have the same number of colors; each group is sorted by luminance.
func NewGrouped(groups [][]render.Color) (*Palette, error) {
	if len(groups) == 0 || len(groups[0]) == 0 {
		return nil, ErrEmpty
	}
	width := len(groups[0])
	img := render.NewImage(width, len(groups), TextureFormat)
	for y, g := range groups {
		if len(g) != width {
			return nil, fmt.Errorf("%w: group %d has %d colors, want %d", ErrRaggedGroups, y, len(g), width)
		}
		sorted := append([]render.Color(nil), g...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Luminance() < sorted[j].Luminance()
		})
		for x, c := range sorted {
			img.Set(x, y, c)
		}
	}
	return &Palette{tex: img, mixed: width}, nil
}

// FromTexture wraps a texture laid out as mix groups. mixedColorCount is
// the number of meaningful entries per row and may not exceed the width.
func FromTexture(tex render.Texture, mixedColorCount int) (*Palette, error) {
	if tex == nil || tex.Width() == 0 || tex.Height() == 0 || mixedColorCount <= 0 {
		return nil, ErrEmpty
	}
	if mixedColorCount > tex.Width() {
		return nil, fmt.Errorf("palette: %d mixed colors exceed texture width %d", mixedColorCount, tex.Width())
	}
	return &Palette{tex: tex, mixed: mixedColorCount}, nil
}

// Texture returns the palette texture.
func (p *Palette) Texture() render.Texture { return p.tex }

// MixedColorCount returns the number of colors per mix group.
func (p *Palette) MixedColorCount() int { return p.mixed }

// Height returns the number of mix groups.
func (p *Palette) Height() int { return p.tex.Height() }

// Groups returns the palette colors when the texture is CPU resident.
func (p *Palette) Groups() ([][]render.Color, bool) {
	img, ok := p.tex.(*render.Image)
	if !ok {
		return nil, false
	}
	groups := make([][]render.Color, img.Height())
	for y := range groups {
		groups[y] = make([]render.Color, p.mixed)
		for x := range groups[y] {
			groups[y][x] = img.At(x, y)
		}
	}
	return groups, true
}
