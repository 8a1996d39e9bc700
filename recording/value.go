// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"fmt"

	"github.com/gogpu/dither/render"
)

// ValueKind identifies the active field of a Value.
type ValueKind uint8

const (
	ValueFloat ValueKind = iota
	ValueVector
	ValueMatrix
	ValueTexture
)

var valueKindNames = [...]string{
	ValueFloat:   "Float",
	ValueVector:  "Vector",
	ValueMatrix:  "Matrix",
	ValueTexture: "Texture",
}

// String returns the kind name.
func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "Unknown"
}

// Value is a shader parameter value. Exactly one field, selected by Kind, is
// meaningful.
type Value struct {
	Kind    ValueKind
	Float   float32
	Vector  [4]float32
	Matrix  [16]float32
	Texture render.Target
}

// FloatValue returns a scalar parameter.
func FloatValue(v float32) Value {
	return Value{Kind: ValueFloat, Float: v}
}

// VectorValue returns a four-component vector parameter.
func VectorValue(x, y, z, w float32) Value {
	return Value{Kind: ValueVector, Vector: [4]float32{x, y, z, w}}
}

// MatrixValue returns a column-major 4x4 matrix parameter.
func MatrixValue(m [16]float32) Value {
	return Value{Kind: ValueMatrix, Matrix: m}
}

// TextureValue returns a texture parameter.
func TextureValue(t render.Target) Value {
	return Value{Kind: ValueTexture, Texture: t}
}

// String formats the active field.
func (v Value) String() string {
	switch v.Kind {
	case ValueFloat:
		return fmt.Sprintf("%g", v.Float)
	case ValueVector:
		return fmt.Sprintf("(%g, %g, %g, %g)", v.Vector[0], v.Vector[1], v.Vector[2], v.Vector[3])
	case ValueMatrix:
		return fmt.Sprintf("mat4%v", v.Matrix)
	case ValueTexture:
		return v.Texture.String()
	default:
		return v.Kind.String()
	}
}
