// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dither

import (
	"fmt"

	"github.com/gogpu/dither/render"
)

// BufferKind identifies the active variant of a BufferRef.
type BufferKind uint8

const (
	// BufferCurrentColor is the host's current color buffer for the frame.
	BufferCurrentColor BufferKind = iota
	// BufferNamed is a host texture known by a global name.
	BufferNamed
	// BufferExternal is a texture handle owned by the caller.
	BufferExternal
)

// String returns the kind name.
func (k BufferKind) String() string {
	switch k {
	case BufferCurrentColor:
		return "CurrentColor"
	case BufferNamed:
		return "NamedTexture"
	case BufferExternal:
		return "ExternalBuffer"
	default:
		return fmt.Sprintf("BufferKind(%d)", k)
	}
}

// BufferRef is an abstract reference to a color surface. Exactly one variant
// is active; the zero value refers to the current color buffer.
type BufferRef struct {
	kind BufferKind
	name string
	tex  render.Texture
}

// CurrentColor refers to the host's current color buffer.
func CurrentColor() BufferRef { return BufferRef{} }

// NamedTexture refers to the host texture published under name.
func NamedTexture(name string) BufferRef {
	return BufferRef{kind: BufferNamed, name: name}
}

// ExternalBuffer refers to a caller-owned texture. The pass never releases it.
func ExternalBuffer(tex render.Texture) BufferRef {
	return BufferRef{kind: BufferExternal, tex: tex}
}

// Kind returns the active variant.
func (r BufferRef) Kind() BufferKind { return r.kind }

// Name returns the texture name of a NamedTexture reference.
func (r BufferRef) Name() string { return r.name }

// Texture returns the handle of an ExternalBuffer reference.
func (r BufferRef) Texture() render.Texture { return r.tex }

// String formats the reference for logs.
func (r BufferRef) String() string {
	switch r.kind {
	case BufferNamed:
		return fmt.Sprintf("NamedTexture(%q)", r.name)
	case BufferExternal:
		if r.tex == nil {
			return "ExternalBuffer(<nil>)"
		}
		return fmt.Sprintf("ExternalBuffer(%dx%d)", r.tex.Width(), r.tex.Height())
	default:
		return r.kind.String()
	}
}

func (r BufferRef) validate(field string) error {
	switch r.kind {
	case BufferCurrentColor:
		return nil
	case BufferNamed:
		if r.name == "" {
			return &ConfigError{Field: field, Reason: "named texture without a name"}
		}
	case BufferExternal:
		if r.tex == nil {
			return &ConfigError{Field: field, Reason: "external buffer without a texture"}
		}
	default:
		return &ConfigError{Field: field, Reason: "unknown buffer kind " + r.kind.String()}
	}
	return nil
}
