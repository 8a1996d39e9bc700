// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"sort"
	"sync"
)

// TargetKind identifies what a Target refers to.
type TargetKind uint8

const (
	// TargetNone is the empty source of generator blits.
	TargetNone TargetKind = iota
	// TargetTexture refers to a texture owned outside the command sequence.
	TargetTexture
	// TargetTemporary refers to a frame temporary by name.
	TargetTemporary
)

// String returns the kind name.
func (k TargetKind) String() string {
	switch k {
	case TargetNone:
		return "None"
	case TargetTexture:
		return "Texture"
	case TargetTemporary:
		return "Temporary"
	default:
		return fmt.Sprintf("TargetKind(%d)", k)
	}
}

// Target is a concrete surface a blit reads from or writes to.
//
// A Target is a plain value. Temporaries are referenced by name and only
// exist between the GetTemporary and ReleaseTemporary commands that bracket
// them; textures are referenced directly and are never released.
type Target struct {
	Kind    TargetKind
	Name    string
	Texture Texture
}

// NoTarget returns the empty target.
func NoTarget() Target { return Target{} }

// TextureTarget returns a target referring to tex.
func TextureTarget(tex Texture) Target {
	return Target{Kind: TargetTexture, Texture: tex}
}

// NamedTextureTarget returns a target referring to a host texture that is
// known under name.
func NamedTextureTarget(name string, tex Texture) Target {
	return Target{Kind: TargetTexture, Name: name, Texture: tex}
}

// TemporaryTarget returns a target referring to the frame temporary name.
func TemporaryTarget(name string) Target {
	return Target{Kind: TargetTemporary, Name: name}
}

// IsTemporary reports whether t refers to a frame temporary.
func (t Target) IsTemporary() bool { return t.Kind == TargetTemporary }

// String returns a short description used in logs and errors.
func (t Target) String() string {
	switch t.Kind {
	case TargetNone:
		return "none"
	case TargetTemporary:
		return "temporary " + t.Name
	case TargetTexture:
		if t.Name != "" {
			return "texture " + t.Name
		}
		if t.Texture != nil {
			return fmt.Sprintf("texture %dx%d %s", t.Texture.Width(), t.Texture.Height(), t.Texture.Format())
		}
		return "texture <nil>"
	default:
		return t.Kind.String()
	}
}

// TextureLookup finds host textures by their global name.
type TextureLookup interface {
	LookupTexture(name string) (Texture, bool)
}

// NamedTextures is a concurrency-safe table of host textures keyed by name.
// Hosts register the textures their other passes publish; the pass resolves
// named references against it.
type NamedTextures struct {
	mu       sync.RWMutex
	textures map[string]Texture
}

// NewNamedTextures creates an empty table.
func NewNamedTextures() *NamedTextures {
	return &NamedTextures{textures: make(map[string]Texture)}
}

// Set publishes tex under name, replacing any previous texture.
func (n *NamedTextures) Set(name string, tex Texture) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.textures[name] = tex
}

// Delete removes name from the table.
func (n *NamedTextures) Delete(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.textures, name)
}

// LookupTexture returns the texture published under name.
func (n *NamedTextures) LookupTexture(name string) (Texture, bool) {
	if n == nil {
		return nil, false
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	tex, ok := n.textures[name]
	return tex, ok
}

// Names returns the published names in sorted order.
func (n *NamedTextures) Names() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	names := make([]string, 0, len(n.textures))
	for name := range n.textures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
