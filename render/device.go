// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host renderer implements DeviceHandle and passes it to the wgpu
// executor, which then records into the host's device and queue instead of
// creating its own.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, so any host in the
// gpucontext ecosystem can be passed directly.
type DeviceHandle = gpucontext.DeviceProvider

// ErrInvalidDescriptor is returned for descriptors with non-positive size or
// an undefined format.
var ErrInvalidDescriptor = errors.New("render: invalid texture descriptor")

// TextureDescriptor describes a frame-scoped temporary texture.
type TextureDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Width and Height are the texture size in pixels.
	Width, Height int

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// DepthBits is the depth buffer precision. The pass always requests 0.
	DepthBits int
}

// Validate checks that the descriptor can be allocated.
func (d TextureDescriptor) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidDescriptor, d.Width, d.Height)
	}
	if d.Format == gputypes.TextureFormatUndefined {
		return fmt.Errorf("%w: undefined format", ErrInvalidDescriptor)
	}
	return nil
}

// DefaultTextureDescriptor returns a descriptor for a color texture
// without depth.
func DefaultTextureDescriptor(width, height int, format gputypes.TextureFormat) TextureDescriptor {
	return TextureDescriptor{
		Width:  width,
		Height: height,
		Format: format,
	}
}

// FilterMode selects how a texture is sampled between texel centers.
type FilterMode uint8

const (
	// FilterPoint samples the nearest texel.
	FilterPoint FilterMode = iota
	// FilterBilinear interpolates the four nearest texels.
	FilterBilinear
)

// String returns the filter mode name.
func (f FilterMode) String() string {
	switch f {
	case FilterPoint:
		return "Point"
	case FilterBilinear:
		return "Bilinear"
	default:
		return fmt.Sprintf("FilterMode(%d)", f)
	}
}

// GPU returns the matching gputypes filter mode.
func (f FilterMode) GPU() gputypes.FilterMode {
	if f == FilterBilinear {
		return gputypes.FilterModeLinear
	}
	return gputypes.FilterModeNearest
}
