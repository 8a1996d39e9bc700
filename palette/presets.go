// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package palette

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gogpu/dither/render"
)

var presets = map[string][]string{
	"bw":      {"#000000", "#ffffff"},
	"gameboy": {"#0f380f", "#306230", "#8bac0f", "#9bbc0f"},
	"cga":     {"#000000", "#55ffff", "#ff55ff", "#ffffff"},
	"pico8": {
		"#000000", "#1d2b53", "#7e2553", "#008751",
		"#ab5236", "#5f574f", "#c2c3c7", "#fff1e8",
		"#ff004d", "#ffa300", "#ffec27", "#00e436",
		"#29adff", "#83769c", "#ff77a8", "#ffccaa",
	},
}

// Preset returns the built-in palette with the given name.
func Preset(name string) (*Palette, error) {
	hexes, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, name)
	}
	return FromHex(hexes...)
}

// Presets returns the names of the built-in palettes in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromHex creates a single-group palette from hex colors.
func FromHex(hexes ...string) (*Palette, error) {
	colors := make([]render.Color, len(hexes))
	for i, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		colors[i] = c
	}
	return New(colors...)
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func ParseHex(s string) (render.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return render.Color{}, fmt.Errorf("%w %q", ErrInvalidHex, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return render.Color{}, fmt.Errorf("%w %q", ErrInvalidHex, s)
	}
	return render.Color{
		R: float32(v>>24&0xff) / 255,
		G: float32(v>>16&0xff) / 255,
		B: float32(v>>8&0xff) / 255,
		A: float32(v&0xff) / 255,
	}, nil
}
