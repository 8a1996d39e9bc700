// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dither

import (
	"github.com/gogpu/dither/render"
)

// EffectiveRef applies the post-processing rebinding to ref.
//
// When the pass runs after rendering and post-processing is enabled, the
// current color buffer is stale: the final image lives in the texture
// "_AfterPostProcessTexture", so CurrentColor is rebound to it. In every
// other case an explicit reference to that texture is mapped back to
// CurrentColor. The function is pure and idempotent; Settings are never
// modified.
func EffectiveRef(ref BufferRef, event ScheduleEvent, postProcessing bool) BufferRef {
	if event == AfterRendering && postProcessing {
		if ref.kind == BufferCurrentColor {
			return NamedTexture(render.AfterPostProcessTexture)
		}
		return ref
	}
	if ref.kind == BufferNamed && ref.name == render.AfterPostProcessTexture {
		return CurrentColor()
	}
	return ref
}

// Resolver turns buffer references into concrete targets. Each variant
// takes exactly one resolution path.
type Resolver struct {
	host Host
	caps Capabilities
}

// NewResolver creates a resolver. host may be nil, in which case the frame
// is expected to carry the current color buffer.
func NewResolver(host Host) *Resolver {
	r := &Resolver{host: host, caps: Capabilities{FrameColor: true}}
	if host != nil {
		r.caps = host.Capabilities()
	}
	return r
}

// Resolve resolves a source reference.
func (r *Resolver) Resolve(ref BufferRef, frame *FrameContext) (render.Target, error) {
	switch ref.kind {
	case BufferCurrentColor:
		tex := r.currentColor(frame)
		if tex == nil {
			return render.Target{}, &ResourceError{Role: "source", Ref: ref}
		}
		return render.TextureTarget(tex), nil
	case BufferNamed:
		if frame.Textures != nil {
			if tex, ok := frame.Textures.LookupTexture(ref.name); ok && tex != nil {
				return render.NamedTextureTarget(ref.name, tex), nil
			}
		}
		return render.Target{}, &ResourceError{Role: "source", Ref: ref}
	case BufferExternal:
		if ref.tex == nil {
			return render.Target{}, &ResourceError{Role: "source", Ref: ref}
		}
		return render.TextureTarget(ref.tex), nil
	}
	return render.Target{}, &ResourceError{Role: "source", Ref: ref}
}

// ResolveDestination resolves a destination reference. A named destination
// the host does not know is returned as a temporary target with allocate
// set; the caller owns its allocation and release.
func (r *Resolver) ResolveDestination(ref BufferRef, frame *FrameContext) (target render.Target, allocate bool, err error) {
	if ref.kind == BufferNamed {
		if frame.Textures != nil {
			if tex, ok := frame.Textures.LookupTexture(ref.name); ok && tex != nil {
				return render.NamedTextureTarget(ref.name, tex), false, nil
			}
		}
		return render.TemporaryTarget(ref.name), true, nil
	}
	target, err = r.Resolve(ref, frame)
	if err != nil {
		if re, ok := err.(*ResourceError); ok {
			re.Role = "destination"
		}
		return render.Target{}, false, err
	}
	return target, false, nil
}

func (r *Resolver) currentColor(frame *FrameContext) render.Texture {
	if r.caps.FrameColor || r.host == nil {
		return frame.Color
	}
	return r.host.ColorTarget()
}
