// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dither

import (
	"testing"

	"github.com/gogpu/dither/palette"
	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
)

// programSet reports fixed pass counts.
type programSet map[render.ProgramID]int

func (p programSet) PassCount(id render.ProgramID) int { return p[id] }

var fullPrograms = programSet{
	render.ProgramNoiseLUT: 2,
	render.ProgramGrain:    1,
	render.ProgramDither:   2,
}

// validSettings returns default settings with a black/white palette and a
// 2x2 Bayer pattern.
func validSettings(t *testing.T) Settings {
	t.Helper()
	pal, err := palette.FromHex("#000000", "#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	pat, err := palette.Bayer(2)
	if err != nil {
		t.Fatal(err)
	}
	s := DefaultSettings()
	s.Dithering.Palette = pal
	s.Dithering.Pattern = pat
	return s
}

func newFrame(w, h int) *FrameContext {
	return &FrameContext{
		Width:  w,
		Height: h,
		Format: gputypes.TextureFormatRGBA8Unorm,
		Color:  render.NewImage(w, h, gputypes.TextureFormatRGBA8Unorm),
	}
}

// spyLookup counts named texture lookups.
type spyLookup struct {
	textures map[string]render.Texture
	calls    int
}

func (s *spyLookup) LookupTexture(name string) (render.Texture, bool) {
	s.calls++
	tex, ok := s.textures[name]
	return tex, ok
}

// spyHost records host negotiation.
type spyHost struct {
	caps       Capabilities
	color      render.Texture
	inputs     []render.Input
	colorCalls int
}

func (h *spyHost) ConfigureInput(in render.Input) { h.inputs = append(h.inputs, in) }

func (h *spyHost) Capabilities() Capabilities { return h.caps }

func (h *spyHost) ColorTarget() render.Texture {
	h.colorCalls++
	return h.color
}

// seqRand replays fixed samples.
type seqRand struct {
	values []float32
	i      int
}

func (r *seqRand) Float32() float32 {
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}
