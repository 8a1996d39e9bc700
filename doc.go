// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package dither implements a per-frame film grain and palette dithering
// post-processing pass.
//
// Each frame the pass takes the host's rendered color buffer, composites a
// film grain layer onto it from a freshly generated noise lookup texture,
// and re-quantizes the result to a palette with an ordered dithering pattern.
// The output goes to the configured destination buffer.
//
// # Overview
//
// The pass is pure orchestration. It records an explicit command sequence
// (package recording) that an executor (package backend) runs:
//
//  1. Resolve the source and destination references into surfaces
//  2. Generate the 192x192 noise lookup texture
//  3. Blend grain from the lookup texture into an intermediate buffer
//  4. Dither the intermediate buffer into the destination
//  5. Release every frame temporary
//
// # Quick Start
//
//	pal, _ := palette.Preset("gameboy")
//	pat, _ := palette.Bayer(4)
//
//	settings := dither.DefaultSettings()
//	settings.Dithering.Palette = pal
//	settings.Dithering.Pattern = pat
//
//	exec := software.New()
//	pass, err := dither.NewPass("Dithering", exec, settings)
//	if err != nil {
//	    return err
//	}
//
//	seq, err := pass.Execute(&dither.FrameContext{
//	    Width: 320, Height: 240,
//	    Format: gputypes.TextureFormatRGBA8Unorm,
//	    Color:  frame,
//	})
//	if err != nil {
//	    return err
//	}
//	return seq.Playback(ctx, exec)
//
// # Buffer References
//
// Source and destination are BufferRef values: the current color buffer,
// a host texture known by name, or an externally owned texture. When the
// pass is scheduled after rendering with post-processing enabled, the current
// color buffer is replaced by the post-processed buffer "_AfterPostProcessTexture"
// (see EffectiveRef).
//
// # Logging
//
// The package is silent by default. Call SetLogger to enable structured
// logging through log/slog.
package dither
