// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dither

import (
	"github.com/gogpu/dither/palette"
	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
)

// Parameter ranges.
const (
	MinGrainSize = 0.3
	MaxGrainSize = 3
)

// Settings is the complete configuration of a pass.
type Settings struct {
	// Event is where the host schedules the pass.
	Event ScheduleEvent

	// SetInverseViewMatrix publishes the frame's camera-to-world matrix as
	// the global "_InverseView" before the stages run.
	SetInverseViewMatrix bool

	// RequireDepthNormals asks the host for the depth-normals input at Setup.
	RequireDepthNormals bool

	// Source and Destination select the surfaces read and written.
	Source      BufferRef
	Destination BufferRef

	// OverrideFormat is the format of a self-allocated named destination.
	// TextureFormatUndefined keeps the frame format.
	OverrideFormat gputypes.TextureFormat

	// FilterMode is the sampling filter of the intermediate and destination
	// temporaries.
	FilterMode render.FilterMode

	// PassIndex selects the dither program pass: 0 ordered dithering with
	// the pattern, 1 nearest palette color. Out-of-range values are clamped
	// when the pass is configured.
	PassIndex int

	Dithering Dithering
}

// Dithering groups the look parameters.
type Dithering struct {
	// Palette is required.
	Palette *palette.Palette

	// Pattern wins over PatternTexture when both are set.
	Pattern        *palette.Pattern
	PatternTexture render.Texture

	Grain Grain
}

// Grain configures the film grain layer.
type Grain struct {
	// Colored selects per-channel noise instead of monochrome noise.
	Colored bool

	// Intensity is the grain strength in [0, 1]. 0 disables the grain
	// contribution without skipping the stage.
	Intensity float32

	// Size is the grain size in [0.3, 3]; larger values stretch the noise.
	Size float32

	// LuminanceContribution in [0, 1] reduces grain on bright pixels.
	LuminanceContribution float32

	// Animated draws new noise parameters every frame.
	Animated bool
}

// DefaultSettings returns settings scheduled after rendering, reading and
// writing the current color buffer, with colored grain. Palette and pattern
// must still be set.
func DefaultSettings() Settings {
	return Settings{
		Event:       AfterRendering,
		Source:      CurrentColor(),
		Destination: CurrentColor(),
		Dithering: Dithering{
			Grain: Grain{
				Colored:               true,
				Intensity:             0.5,
				Size:                  1,
				LuminanceContribution: 0.8,
			},
		},
	}
}

// EffectivePattern returns the threshold texture in use: the pattern's
// texture if a pattern is set, otherwise the raw pattern texture.
func (d Dithering) EffectivePattern() render.Texture {
	if d.Pattern != nil {
		return d.Pattern.Texture()
	}
	return d.PatternTexture
}

// Validate checks the settings. It returns a *ConfigError or an
// *OutOfRangeError; values are never clamped.
func (s *Settings) Validate() error {
	if err := s.Source.validate("source"); err != nil {
		return err
	}
	if err := s.Destination.validate("destination"); err != nil {
		return err
	}
	if int(s.Event) >= len(scheduleEventNames) {
		return &ConfigError{Field: "event", Reason: s.Event.String()}
	}

	d := &s.Dithering
	if d.Palette == nil {
		return &ConfigError{Field: "dithering.palette", Reason: "not set"}
	}
	if tex := d.Palette.Texture(); tex == nil || tex.Width() == 0 || tex.Height() == 0 {
		return &ConfigError{Field: "dithering.palette", Reason: "empty texture"}
	}
	pattern := d.EffectivePattern()
	if pattern == nil {
		return &ConfigError{Field: "dithering.pattern", Reason: "neither pattern nor pattern texture is set"}
	}
	if pattern.Width() == 0 {
		return &ConfigError{Field: "dithering.pattern", Reason: "empty texture"}
	}

	g := d.Grain
	if err := checkRange("dithering.grain.intensity", g.Intensity, 0, 1); err != nil {
		return err
	}
	if err := checkRange("dithering.grain.size", g.Size, MinGrainSize, MaxGrainSize); err != nil {
		return err
	}
	return checkRange("dithering.grain.luminance_contribution", g.LuminanceContribution, 0, 1)
}

func checkRange(field string, v, lo, hi float32) error {
	if v != v || v < lo || v > hi {
		return &OutOfRangeError{Field: field, Value: v, Min: lo, Max: hi}
	}
	return nil
}
