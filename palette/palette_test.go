// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package palette

import (
	"errors"
	"testing"

	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
)

func TestNewSortsByLuminance(t *testing.T) {
	white := render.Color{R: 1, G: 1, B: 1, A: 1}
	black := render.Color{A: 1}
	gray := render.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}

	p, err := New(white, black, gray)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.MixedColorCount() != 3 {
		t.Errorf("MixedColorCount() = %d, want 3", p.MixedColorCount())
	}
	if p.Height() != 1 {
		t.Errorf("Height() = %d, want 1", p.Height())
	}

	groups, ok := p.Groups()
	if !ok {
		t.Fatal("Groups() not available for CPU palette")
	}
	want := []render.Color{black, gray, white}
	for i, c := range groups[0] {
		if c != want[i] {
			t.Errorf("group[0][%d] = %+v, want %+v", i, c, want[i])
		}
	}
}

func TestNewGrouped(t *testing.T) {
	p, err := NewGrouped([][]render.Color{
		{{A: 1}, {R: 1, A: 1}},
		{{A: 1}, {B: 1, A: 1}},
		{{A: 1}, {G: 1, A: 1}},
	})
	if err != nil {
		t.Fatalf("NewGrouped() error = %v", err)
	}
	if p.MixedColorCount() != 2 || p.Height() != 3 {
		t.Errorf("MixedColorCount, Height = %d, %d; want 2, 3", p.MixedColorCount(), p.Height())
	}
	if p.Texture().Format() != TextureFormat {
		t.Errorf("Format() = %v, want %v", p.Texture().Format(), TextureFormat)
	}
}

func TestNewGroupedErrors(t *testing.T) {
	tests := []struct {
		name   string
		groups [][]render.Color
		want   error
	}{
		{"nil", nil, ErrEmpty},
		{"empty group", [][]render.Color{{}}, ErrEmpty},
		{"ragged", [][]render.Color{{{}, {}}, {{}}}, ErrRaggedGroups},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrouped(tt.groups)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewGrouped() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromTexture(t *testing.T) {
	tex := render.NewImage(16, 4, gputypes.TextureFormatRGBA8Unorm)

	p, err := FromTexture(tex, 16)
	if err != nil {
		t.Fatalf("FromTexture() error = %v", err)
	}
	if p.MixedColorCount() != 16 || p.Height() != 4 {
		t.Errorf("MixedColorCount, Height = %d, %d; want 16, 4", p.MixedColorCount(), p.Height())
	}

	if _, err := FromTexture(tex, 17); err == nil {
		t.Error("FromTexture() accepted more mixed colors than the width")
	}
	if _, err := FromTexture(nil, 1); !errors.Is(err, ErrEmpty) {
		t.Errorf("FromTexture(nil) error = %v, want ErrEmpty", err)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want render.Color
		err  bool
	}{
		{"#ffffff", render.Color{R: 1, G: 1, B: 1, A: 1}, false},
		{"000", render.Color{A: 1}, false},
		{"#ff000080", render.Color{R: 1, A: 128.0 / 255}, false},
		{"#12", render.Color{}, true},
		{"#gggggg", render.Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.err {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.err)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidHex) {
					t.Errorf("error = %v, want ErrInvalidHex", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	for _, name := range Presets() {
		p, err := Preset(name)
		if err != nil {
			t.Errorf("Preset(%q) error = %v", name, err)
			continue
		}
		if p.MixedColorCount() < 2 {
			t.Errorf("Preset(%q) has %d colors", name, p.MixedColorCount())
		}
	}

	if _, err := Preset("nope"); !errors.Is(err, ErrUnknown) {
		t.Errorf("Preset(nope) error = %v, want ErrUnknown", err)
	}
	if p, err := Preset("PICO8"); err != nil || p.MixedColorCount() != 16 {
		t.Errorf("Preset(PICO8) = %v, %v; want 16 colors", p, err)
	}
}
