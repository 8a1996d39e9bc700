// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/dither/recording"
	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

type bindingKind uint8

const (
	bindUniform bindingKind = iota
	// bindTexture is read with textureLoad.
	bindTexture
	// bindFilteredTexture is read with textureSample.
	bindFilteredTexture
	bindSampler
)

// binding is one entry of a program's bind group 0. For textures and
// samplers param names the texture parameter; an empty param is the blit
// source.
type binding struct {
	kind  bindingKind
	param string
}

// programLayout mirrors the resource declarations of a program's WGSL.
type programLayout struct {
	uniformSize uint64
	bindings    []binding
}

var programLayouts = [...]programLayout{
	render.ProgramNoiseLUT: {
		uniformSize: 16,
		bindings:    []binding{{kind: bindUniform}},
	},
	render.ProgramGrain: {
		uniformSize: 32,
		bindings: []binding{
			{kind: bindUniform},
			{kind: bindTexture},
			{kind: bindFilteredTexture, param: render.UniformGrainTex},
			{kind: bindSampler, param: render.UniformGrainTex},
			{kind: bindTexture, param: render.UniformAutoExposure},
		},
	},
	render.ProgramDither: {
		uniformSize: 16,
		bindings: []binding{
			{kind: bindUniform},
			{kind: bindTexture},
			{kind: bindTexture, param: render.UniformPaletteTex},
			{kind: bindTexture, param: render.UniformPatternTex},
		},
	},
}

// layoutEntries returns the bind group layout entries of l.
func (l programLayout) layoutEntries() []gputypes.BindGroupLayoutEntry {
	entries := make([]gputypes.BindGroupLayoutEntry, len(l.bindings))
	for i, b := range l.bindings {
		e := gputypes.BindGroupLayoutEntry{
			Binding:    uint32(i), //nolint:gosec // small index
			Visibility: gputypes.ShaderStageFragment,
		}
		switch b.kind {
		case bindUniform:
			e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
		case bindTexture:
			e.Texture = &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			}
		case bindFilteredTexture:
			e.Texture = &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			}
		case bindSampler:
			e.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
		}
		entries[i] = e
	}
	return entries
}

// program holds the device objects shared by every pass of a program.
type program struct {
	id         render.ProgramID
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
}

func createProgram(device hal.Device, id render.ProgramID) (*program, error) {
	p := &program{id: id}
	label := "dither_" + id.String()

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: hal.ShaderSource{WGSL: ShaderSource(id)},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s shader: %w", id, err)
	}
	p.shader = shader

	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   label + "_bind_layout",
		Entries: programLayouts[id].layoutEntries(),
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create %s bind group layout: %w", id, err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create %s pipeline layout: %w", id, err)
	}
	p.pipeLayout = pipeLayout
	return p, nil
}

func (p *program) destroy(device hal.Device) {
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
	}
}

// pipelineKey identifies a render pipeline: one per program pass and
// attachment format.
type pipelineKey struct {
	program render.ProgramID
	pass    int
	format  gputypes.TextureFormat
}

// pipelineCache creates render pipelines on demand.
type pipelineCache struct {
	pipelines map[pipelineKey]hal.RenderPipeline
	hits      uint64
	misses    uint64
}

func newPipelineCache() *pipelineCache {
	return &pipelineCache{pipelines: make(map[pipelineKey]hal.RenderPipeline)}
}

func (c *pipelineCache) get(device hal.Device, p *program, pass int, format gputypes.TextureFormat) (hal.RenderPipeline, error) {
	key := pipelineKey{program: p.id, pass: pass, format: format}
	if pipeline, ok := c.pipelines[key]; ok {
		c.hits++
		return pipeline, nil
	}

	entry := programShaders[p.id].entries[pass]
	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("dither_%s_%s_%s", p.id, entry, format),
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: entry,
			Targets: []gputypes.ColorTargetState{
				{Format: format, WriteMask: gputypes.ColorWriteMaskAll},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline: %w", entry, err)
	}
	c.pipelines[key] = pipeline
	c.misses++
	return pipeline, nil
}

func (c *pipelineCache) destroyAll(device hal.Device) {
	for _, pipeline := range c.pipelines {
		device.DestroyRenderPipeline(pipeline)
	}
	c.pipelines = make(map[pipelineKey]hal.RenderPipeline)
}

// uniformBlock packs the uniform parameters of a program in WGSL layout.
func uniformBlock(id render.ProgramID, params map[string]recording.Value) ([]byte, error) {
	buf := make([]byte, programLayouts[id].uniformSize)
	put := func(offset int, v float32) {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
	}
	float := func(name string) (float32, error) {
		v, ok := params[name]
		if !ok || v.Kind != recording.ValueFloat {
			return 0, fmt.Errorf("%w: %s/%s", ErrUnboundParameter, id, name)
		}
		return v.Float, nil
	}
	vector := func(name string) ([4]float32, error) {
		v, ok := params[name]
		if !ok || v.Kind != recording.ValueVector {
			return [4]float32{}, fmt.Errorf("%w: %s/%s", ErrUnboundParameter, id, name)
		}
		return v.Vector, nil
	}

	switch id {
	case render.ProgramNoiseLUT:
		phase, err := float(render.UniformPhase)
		if err != nil {
			return nil, err
		}
		put(0, phase)

	case render.ProgramGrain:
		for i, name := range []string{render.UniformGrainParams1, render.UniformGrainParams2} {
			v, err := vector(name)
			if err != nil {
				return nil, err
			}
			for j, f := range v {
				put(i*16+j*4, f)
			}
		}

	case render.ProgramDither:
		for i, name := range []string{render.UniformPaletteColorCount, render.UniformPaletteHeight, render.UniformPatternSize} {
			f, err := float(name)
			if err != nil {
				return nil, err
			}
			put(i*4, f)
		}
	}
	return buf, nil
}
