// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/dither"
	"github.com/gogpu/dither/palette"
	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned for files that decode but describe no valid
// settings.
var ErrInvalid = errors.New("config: invalid settings")

// CurrentColor is the buffer reference naming the current color buffer.
const CurrentColor = "current"

// File is the decoded form of a settings file.
type File struct {
	Event                string    `toml:"event"`
	SetInverseViewMatrix bool      `toml:"set_inverse_view_matrix"`
	RequireDepthNormals  bool      `toml:"require_depth_normals"`
	Source               string    `toml:"source"`
	Destination          string    `toml:"destination"`
	OverrideFormat       string    `toml:"override_format"`
	Filter               string    `toml:"filter"`
	PassIndex            int       `toml:"pass_index"`
	Dithering            Dithering `toml:"dithering"`
}

// Dithering is the [dithering] table.
type Dithering struct {
	// Palette lists hex colors. Preset names a built-in palette and is
	// used when Palette is empty.
	Palette []string `toml:"palette"`
	Preset  string   `toml:"preset"`
	Pattern string   `toml:"pattern"`
	Grain   Grain    `toml:"grain"`
}

// Grain is the [dithering.grain] table. Nil fields keep their defaults.
type Grain struct {
	Colored               *bool    `toml:"colored"`
	Intensity             *float32 `toml:"intensity"`
	Size                  *float32 `toml:"size"`
	LuminanceContribution *float32 `toml:"luminance_contribution"`
	Animated              bool     `toml:"animated"`
}

// Load reads and decodes the settings file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a settings file. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("config: line %d, column %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	return &f, nil
}

// Settings converts the file into pass settings. Range checks are left to
// the pass; Settings only rejects values it cannot interpret.
func (f *File) Settings() (dither.Settings, error) {
	s := dither.DefaultSettings()

	if f.Event != "" {
		e, err := dither.ParseScheduleEvent(f.Event)
		if err != nil {
			return s, err
		}
		s.Event = e
	}
	s.SetInverseViewMatrix = f.SetInverseViewMatrix
	s.RequireDepthNormals = f.RequireDepthNormals
	s.Source = bufferRef(f.Source)
	s.Destination = bufferRef(f.Destination)
	s.PassIndex = f.PassIndex

	if f.OverrideFormat != "" {
		format, err := ParseFormat(f.OverrideFormat)
		if err != nil {
			return s, err
		}
		s.OverrideFormat = format
	}
	if f.Filter != "" {
		filter, err := ParseFilter(f.Filter)
		if err != nil {
			return s, err
		}
		s.FilterMode = filter
	}

	d := &f.Dithering
	switch {
	case len(d.Palette) > 0:
		pal, err := palette.FromHex(d.Palette...)
		if err != nil {
			return s, fmt.Errorf("%w: palette: %w", ErrInvalid, err)
		}
		s.Dithering.Palette = pal
	case d.Preset != "":
		pal, err := palette.Preset(d.Preset)
		if err != nil {
			return s, fmt.Errorf("%w: preset: %w", ErrInvalid, err)
		}
		s.Dithering.Palette = pal
	}
	if d.Pattern != "" {
		pat, err := ParsePattern(d.Pattern)
		if err != nil {
			return s, err
		}
		s.Dithering.Pattern = pat
	}

	g := &s.Dithering.Grain
	if d.Grain.Colored != nil {
		g.Colored = *d.Grain.Colored
	}
	if d.Grain.Intensity != nil {
		g.Intensity = *d.Grain.Intensity
	}
	if d.Grain.Size != nil {
		g.Size = *d.Grain.Size
	}
	if d.Grain.LuminanceContribution != nil {
		g.LuminanceContribution = *d.Grain.LuminanceContribution
	}
	g.Animated = d.Grain.Animated
	return s, nil
}

func bufferRef(name string) dither.BufferRef {
	if name == "" || strings.EqualFold(name, CurrentColor) {
		return dither.CurrentColor()
	}
	return dither.NamedTexture(name)
}

// ParsePattern parses a threshold pattern name of the form "bayerN".
func ParsePattern(name string) (*palette.Pattern, error) {
	rest, ok := strings.CutPrefix(strings.ToLower(name), "bayer")
	if !ok {
		return nil, fmt.Errorf("%w: unknown pattern %q", ErrInvalid, name)
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: bad size", ErrInvalid, name)
	}
	pat, err := palette.Bayer(n)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalid, name, err)
	}
	return pat, nil
}

// formats lists the texture formats a destination may be overridden to.
var formats = []gputypes.TextureFormat{
	gputypes.TextureFormatRGBA8Unorm,
	gputypes.TextureFormatRGBA8UnormSrgb,
	gputypes.TextureFormatBGRA8Unorm,
	gputypes.TextureFormatBGRA8UnormSrgb,
	gputypes.TextureFormatRGBA16Float,
	gputypes.TextureFormatRGBA32Float,
}

// ParseFormat parses a color texture format name. Matching ignores case,
// '-' and '_', so "rgba16float" and "RGBA16Float" are equivalent.
func ParseFormat(name string) (gputypes.TextureFormat, error) {
	key := normalize(name)
	for _, f := range formats {
		if normalize(f.String()) == key {
			return f, nil
		}
	}
	return gputypes.TextureFormatUndefined, fmt.Errorf("%w: unsupported format %q", ErrInvalid, name)
}

// ParseFilter parses "point" or "bilinear".
func ParseFilter(name string) (render.FilterMode, error) {
	for _, f := range []render.FilterMode{render.FilterPoint, render.FilterBilinear} {
		if normalize(f.String()) == normalize(name) {
			return f, nil
		}
	}
	return render.FilterPoint, fmt.Errorf("%w: unknown filter %q", ErrInvalid, name)
}

func normalize(s string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
}
