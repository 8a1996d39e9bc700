// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/dither/render"
	"github.com/gogpu/naga"
)

// ErrShaderCompile is returned when a program fails WGSL validation.
var ErrShaderCompile = errors.New("wgpu: shader compilation failed")

//go:embed shaders/fullscreen.wgsl
var fullscreenWGSL string

//go:embed shaders/noise_lut.wgsl
var noiseLUTWGSL string

//go:embed shaders/grain.wgsl
var grainWGSL string

//go:embed shaders/dither.wgsl
var ditherWGSL string

// programShader describes the WGSL module of a program.
type programShader struct {
	source string
	// entries holds the fragment entry point of each pass.
	entries []string
}

var programShaders = [...]programShader{
	render.ProgramNoiseLUT: {source: noiseLUTWGSL, entries: []string{"fs_mono", "fs_colored"}},
	render.ProgramGrain:    {source: grainWGSL, entries: []string{"fs_main"}},
	render.ProgramDither:   {source: ditherWGSL, entries: []string{"fs_ordered", "fs_nearest"}},
}

// ShaderSource returns the complete WGSL source of a program.
func ShaderSource(id render.ProgramID) string {
	if int(id) >= len(programShaders) {
		return ""
	}
	return fullscreenWGSL + "\n" + programShaders[id].source
}

// compiled caches the validation result of every program. Sources are
// embedded, so the result never changes within a process.
var compiled struct {
	once sync.Once
	errs [len(programShaders)]error
}

// validatePrograms compiles every program with naga and returns the
// per-program errors.
func validatePrograms() [len(programShaders)]error {
	compiled.once.Do(func() {
		for id := range programShaders {
			if _, err := naga.Compile(ShaderSource(render.ProgramID(id))); err != nil {
				compiled.errs[id] = fmt.Errorf("%w: %s: %w", ErrShaderCompile, render.ProgramID(id), err)
			}
		}
	})
	return compiled.errs
}
