// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "fmt"

// ProgramID identifies one of the shader programs the pass drives.
type ProgramID uint8

const (
	// ProgramNoiseLUT fills the noise lookup texture.
	// Pass 0 writes monochrome noise, pass 1 colored noise.
	ProgramNoiseLUT ProgramID = iota
	// ProgramGrain composites grain from the lookup texture onto a color buffer.
	ProgramGrain
	// ProgramDither re-quantizes a color buffer to a palette.
	// Pass 0 is ordered dithering with a threshold pattern, pass 1 maps to the
	// nearest palette color.
	ProgramDither

	programCount
)

// Programs lists every program in declaration order.
var Programs = [...]ProgramID{ProgramNoiseLUT, ProgramGrain, ProgramDither}

var programNames = [...]string{
	ProgramNoiseLUT: "NoiseLUT",
	ProgramGrain:    "Grain",
	ProgramDither:   "Dither",
}

// String returns the program name.
func (p ProgramID) String() string {
	if p < programCount {
		return programNames[p]
	}
	return fmt.Sprintf("ProgramID(%d)", p)
}

// ProgramSet is implemented by executors to report which programs they can
// run. PassCount returns 0 for programs that are not available.
type ProgramSet interface {
	PassCount(p ProgramID) int
}

// Input is a set of extra frame inputs a pass asks the host to produce.
type Input uint8

// InputNone requests nothing.
const InputNone Input = 0

const (
	// InputDepth requests the scene depth texture.
	InputDepth Input = 1 << iota
	// InputNormal requests the depth-normals texture.
	InputNormal
	// InputColor requests an opaque color copy.
	InputColor
	// InputMotion requests motion vectors.
	InputMotion
)

// Has reports whether all bits of flag are set in in.
func (in Input) Has(flag Input) bool { return in&flag == flag }
