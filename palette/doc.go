// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package palette provides the color palettes and threshold patterns consumed
// by the dither program.
//
// A Palette is a texture of mix groups: each row holds MixedColorCount
// colors ordered from dark to light, and the texture height is the number of
// groups. A Pattern is a square texture whose red channel holds ordered
// dithering thresholds in (0, 1).
//
// Both are externally owned assets: the pass binds them read-only and never
// modifies or releases them.
package palette
