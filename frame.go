// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dither

import (
	"fmt"

	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
)

// FrameContext is the host's description of the frame being rendered.
type FrameContext struct {
	// Width, Height and Format describe the camera color buffer.
	Width, Height int
	Format        gputypes.TextureFormat

	// Color is the current color buffer. Hosts that cannot expose it per
	// frame report so through Capabilities and return it from
	// Host.ColorTarget instead.
	Color render.Texture

	// CameraToWorld is the camera-to-world matrix, column-major. Optional.
	CameraToWorld *[16]float32

	// PostProcessing reports whether the host post-processing stack ran
	// for this camera.
	PostProcessing bool

	// Textures resolves named host textures.
	Textures render.TextureLookup
}

// Descriptor returns the descriptor of a color temporary matching the frame,
// without depth.
func (f *FrameContext) Descriptor() render.TextureDescriptor {
	return render.DefaultTextureDescriptor(f.Width, f.Height, f.Format)
}

func (f *FrameContext) validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrInvalidFrame)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidFrame, f.Width, f.Height)
	}
	if f.Format == gputypes.TextureFormatUndefined {
		return fmt.Errorf("%w: undefined format", ErrInvalidFrame)
	}
	return nil
}

// Capabilities describes what the host provides.
type Capabilities struct {
	// FrameColor reports that FrameContext.Color carries the current color
	// buffer. When false the pass asks Host.ColorTarget.
	FrameColor bool
}

// Host is the renderer that schedules the pass.
type Host interface {
	// ConfigureInput requests extra frame inputs.
	ConfigureInput(in render.Input)

	// Capabilities reports what the host provides per frame.
	Capabilities() Capabilities

	// ColorTarget returns the current color buffer for hosts without
	// the FrameColor capability.
	ColorTarget() render.Texture
}
