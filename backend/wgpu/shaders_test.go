// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/gogpu/dither/render"
	"github.com/gogpu/naga"
)

func TestShaderSourcesContainEntryPoints(t *testing.T) {
	for _, id := range render.Programs {
		t.Run(id.String(), func(t *testing.T) {
			src := ShaderSource(id)
			if len(src) < 200 {
				t.Fatalf("%s shader source suspiciously short: %d bytes", id, len(src))
			}
			required := append([]string{"@vertex", "@fragment", "vs_main"}, programShaders[id].entries...)
			for _, s := range required {
				if !strings.Contains(src, s) {
					t.Errorf("%s shader missing %q", id, s)
				}
			}
		})
	}
}

func TestShaderSourceUnknownProgram(t *testing.T) {
	if src := ShaderSource(render.ProgramID(42)); src != "" {
		t.Errorf("ShaderSource(42) = %d bytes, want empty", len(src))
	}
}

func TestShaderBindingsMatchLayouts(t *testing.T) {
	for _, id := range render.Programs {
		src := programShaders[id].source
		for i := range programLayouts[id].bindings {
			decl := "@binding(" + string(rune('0'+i)) + ")"
			if !strings.Contains(src, decl) {
				t.Errorf("%s shader missing %s", id, decl)
			}
		}
	}
}

// TestShadersCompileToSPIRV verifies every program compiles with naga.
func TestShadersCompileToSPIRV(t *testing.T) {
	for _, id := range render.Programs {
		t.Run(id.String(), func(t *testing.T) {
			spirv, err := naga.Compile(ShaderSource(id))
			if err != nil {
				msg := err.Error()
				if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
					t.Skipf("naga feature gap: %v", err)
				}
				t.Fatalf("compile %s: %v", id, err)
			}
			if len(spirv) < 20 {
				t.Fatalf("SPIR-V too short: %d bytes", len(spirv))
			}
			if magic := binary.LittleEndian.Uint32(spirv); magic != 0x07230203 {
				t.Errorf("SPIR-V magic = %#x, want 0x07230203", magic)
			}
		})
	}
}
