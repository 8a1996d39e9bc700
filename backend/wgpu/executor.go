// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/dither/backend"
	"github.com/gogpu/dither/recording"
	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Executor errors.
var (
	ErrNilDevice          = errors.New("wgpu: device or queue is nil")
	ErrNotBegun           = errors.New("wgpu: no sequence in progress")
	ErrUnknownTemporary   = errors.New("wgpu: unknown temporary")
	ErrUnsupportedTexture = errors.New("wgpu: unsupported texture")
	ErrUnboundParameter   = errors.New("wgpu: parameter not bound")
	ErrUnknownProgram     = errors.New("wgpu: unknown program pass")
)

// Stats counts executor activity.
type Stats struct {
	Allocated      int
	Released       int
	Blits          int
	Sequences      int
	Uploads        int
	Readbacks      int
	PipelineMisses uint64
}

// Executor plays dither command sequences on a HAL device.
//
// Executor is safe for concurrent use; sequences are serialized.
type Executor struct {
	mu sync.Mutex

	device   hal.Device
	queue    hal.Queue
	closer   func()
	released bool

	programs  [len(programShaders)]*program
	pipelines *pipelineCache
	samplers  [2]hal.Sampler // indexed by render.FilterMode

	// Sequence state.
	label   string
	encoder hal.CommandEncoder
	temps   map[string]*surface
	uploads map[*render.Image]*surface
	wrapped map[*Texture]*surface
	params  map[render.ProgramID]map[string]recording.Value
	globals map[string]recording.Value
	garbage []func()

	stats Stats
}

var (
	_ recording.Executor = (*Executor)(nil)
	_ backend.Releaser   = (*Executor)(nil)
)

// NewExecutor creates an executor on a device the caller owns.
//
// It returns an error wrapping ErrShaderCompile when a program fails WGSL
// validation.
func NewExecutor(device hal.Device, queue hal.Queue) (*Executor, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	errs := validatePrograms()
	if err := errors.Join(errs[:]...); err != nil {
		return nil, err
	}

	e := &Executor{
		device:    device,
		queue:     queue,
		pipelines: newPipelineCache(),
	}
	if err := e.init(); err != nil {
		e.Release()
		return nil, err
	}
	return e, nil
}

func (e *Executor) init() error {
	for i := range e.samplers {
		filter := render.FilterMode(i) //nolint:gosec // two filter modes
		s, err := e.device.CreateSampler(&hal.SamplerDescriptor{
			Label:        "dither_sampler_" + filter.String(),
			AddressModeU: gputypes.AddressModeRepeat,
			AddressModeV: gputypes.AddressModeRepeat,
			AddressModeW: gputypes.AddressModeRepeat,
			MagFilter:    filter.GPU(),
			MinFilter:    filter.GPU(),
			MipmapFilter: gputypes.FilterModeNearest,
		})
		if err != nil {
			return fmt.Errorf("create sampler: %w", err)
		}
		e.samplers[i] = s
	}

	for _, id := range render.Programs {
		p, err := createProgram(e.device, id)
		if err != nil {
			return err
		}
		e.programs[id] = p
	}
	return nil
}

// PassCount implements render.ProgramSet.
func (e *Executor) PassCount(id render.ProgramID) int {
	if int(id) >= len(e.programs) || e.programs[id] == nil {
		return 0
	}
	return len(programShaders[id].entries)
}

// Begin implements recording.Executor.
func (e *Executor) Begin(_ context.Context, label string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.released {
		return backend.ErrReleased
	}
	if e.encoder != nil {
		return fmt.Errorf("wgpu: sequence %q still in progress", e.label)
	}

	enc, err := e.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := enc.BeginEncoding(label); err != nil {
		enc.Destroy()
		return fmt.Errorf("begin encoding: %w", err)
	}

	e.label = label
	e.encoder = enc
	e.temps = make(map[string]*surface)
	e.uploads = make(map[*render.Image]*surface)
	e.wrapped = make(map[*Texture]*surface)
	e.params = make(map[render.ProgramID]map[string]recording.Value)
	e.globals = make(map[string]recording.Value)
	e.garbage = e.garbage[:0]
	return nil
}

// GetTemporary implements recording.Executor.
func (e *Executor) GetTemporary(name string, desc render.TextureDescriptor, filter render.FilterMode) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.encoder == nil {
		return ErrNotBegun
	}
	if _, ok := e.temps[name]; ok {
		return fmt.Errorf("%w: %s", recording.ErrTemporaryInUse, name)
	}
	s, err := createSurface(e.device, name, desc.Width, desc.Height, desc.Format)
	if err != nil {
		return err
	}
	s.filter = filter
	e.temps[name] = s
	e.stats.Allocated++
	return nil
}

// ReleaseTemporary implements recording.Executor. The texture is destroyed
// once the sequence has been submitted.
func (e *Executor) ReleaseTemporary(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.temps[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTemporary, name)
	}
	delete(e.temps, name)
	e.later(func() { s.destroy(e.device) })
	e.stats.Released++
	return nil
}

// SetGlobal implements recording.Executor.
func (e *Executor) SetGlobal(name string, v recording.Value) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.encoder == nil {
		return ErrNotBegun
	}
	e.globals[name] = v
	return nil
}

// SetParam implements recording.Executor.
func (e *Executor) SetParam(id render.ProgramID, name string, v recording.Value) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.encoder == nil {
		return ErrNotBegun
	}
	m := e.params[id]
	if m == nil {
		m = make(map[string]recording.Value)
		e.params[id] = m
	}
	m[name] = v
	return nil
}

// Blit implements recording.Executor. It encodes one fullscreen draw of the
// program pass into dst.
func (e *Executor) Blit(src, dst render.Target, id render.ProgramID, pass int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.encoder == nil {
		return ErrNotBegun
	}
	if pass < 0 || pass >= e.PassCount(id) {
		return fmt.Errorf("%w: %s/%d", ErrUnknownProgram, id, pass)
	}
	prog := e.programs[id]

	out, err := e.surface(dst)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	pipeline, err := e.pipelines.get(e.device, prog, pass, out.format)
	if err != nil {
		return err
	}
	group, err := e.bindGroup(prog, src)
	if err != nil {
		return err
	}

	rp := e.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: fmt.Sprintf("%s_%s_%d", e.label, id, pass),
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       out.view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
		}},
	})
	rp.SetPipeline(pipeline)
	rp.SetBindGroup(0, group, nil)
	rp.Draw(3, 1, 0, 0)
	rp.End()

	out.written = true
	e.stats.Blits++
	return nil
}

// bindGroup creates the bind group of one draw: a fresh uniform buffer and
// the bound textures.
func (e *Executor) bindGroup(prog *program, src render.Target) (hal.BindGroup, error) {
	layout := programLayouts[prog.id]
	params := e.params[prog.id]

	data, err := uniformBlock(prog.id, params)
	if err != nil {
		return nil, err
	}
	ub, err := e.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "dither_uniforms",
		Size:  layout.uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}
	e.later(func() { e.device.DestroyBuffer(ub) })
	if err := e.queue.WriteBuffer(ub, 0, data); err != nil {
		return nil, fmt.Errorf("write uniforms: %w", err)
	}

	entries := make([]gputypes.BindGroupEntry, len(layout.bindings))
	for i, b := range layout.bindings {
		slot := uint32(i) //nolint:gosec // small index
		switch b.kind {
		case bindUniform:
			entries[i] = gputypes.BindGroupEntry{Binding: slot, Resource: gputypes.BufferBinding{
				Buffer: ub.NativeHandle(), Offset: 0, Size: layout.uniformSize,
			}}
		case bindTexture, bindFilteredTexture:
			s, err := e.textureBinding(prog.id, b.param, src)
			if err != nil {
				return nil, err
			}
			entries[i] = gputypes.BindGroupEntry{Binding: slot, Resource: gputypes.TextureViewBinding{
				TextureView: s.view.NativeHandle(),
			}}
		case bindSampler:
			s, err := e.textureBinding(prog.id, b.param, src)
			if err != nil {
				return nil, err
			}
			entries[i] = gputypes.BindGroupEntry{Binding: slot, Resource: gputypes.SamplerBinding{
				Sampler: e.samplers[s.filter].NativeHandle(),
			}}
		}
	}

	group, err := e.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "dither_" + prog.id.String() + "_bind",
		Layout:  prog.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	e.later(func() { e.device.DestroyBindGroup(group) })
	return group, nil
}

func (e *Executor) textureBinding(id render.ProgramID, param string, src render.Target) (*surface, error) {
	if param == "" {
		s, err := e.surface(src)
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		return s, nil
	}
	v, ok := e.params[id][param]
	if !ok || v.Kind != recording.ValueTexture {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnboundParameter, id, param)
	}
	return e.surface(v.Texture)
}

// surface returns the device texture of t, uploading CPU images on first
// use within the sequence.
func (e *Executor) surface(t render.Target) (*surface, error) {
	switch t.Kind {
	case render.TargetTemporary:
		s, ok := e.temps[t.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTemporary, t.Name)
		}
		return s, nil

	case render.TargetTexture:
		switch tex := t.Texture.(type) {
		case *render.Image:
			if tex == nil {
				break
			}
			if s, ok := e.uploads[tex]; ok {
				return s, nil
			}
			s, err := uploadImage(e.device, e.queue, tex)
			if err != nil {
				return nil, err
			}
			e.uploads[tex] = s
			e.stats.Uploads++
			return s, nil

		case *Texture:
			if tex == nil {
				break
			}
			if s, ok := e.wrapped[tex]; ok {
				return s, nil
			}
			s := &surface{
				tex:    tex.tex,
				view:   tex.view,
				width:  uint32(tex.width),  //nolint:gosec // texture sizes fit uint32
				height: uint32(tex.height), //nolint:gosec // texture sizes fit uint32
				format: tex.format,
			}
			e.wrapped[tex] = s
			return s, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTexture, t)
	}
	return nil, fmt.Errorf("wgpu: no surface for %s", t)
}

// End implements recording.Executor. It submits the sequence, waits for
// the device, copies written CPU images back and frees the sequence
// resources.
func (e *Executor) End() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.encoder == nil {
		return ErrNotBegun
	}
	enc := e.encoder
	e.encoder = nil

	var errs []error
	var readbacks []*readback
	for _, s := range e.uploads {
		if s.written {
			rb, err := encodeReadback(e.device, enc, s)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			readbacks = append(readbacks, rb)
		}
	}

	cmd, err := enc.EndEncoding()
	if err != nil {
		errs = append(errs, fmt.Errorf("end encoding: %w", err))
	} else {
		if _, err := e.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
			errs = append(errs, fmt.Errorf("submit: %w", err))
		} else if err := e.device.WaitIdle(); err != nil {
			errs = append(errs, fmt.Errorf("wait for GPU: %w", err))
		} else {
			for _, rb := range readbacks {
				if err := rb.finish(e.device); err != nil {
					errs = append(errs, err)
				}
				e.stats.Readbacks++
			}
			readbacks = nil
		}
		e.device.FreeCommandBuffer(cmd)
	}
	for _, rb := range readbacks {
		e.device.DestroyBuffer(rb.buffer)
	}
	enc.Destroy()

	if n := len(e.temps); n > 0 {
		backend.Logger().Warn("wgpu: temporaries alive at end of sequence", "label", e.label, "count", n)
		for _, s := range e.temps {
			s.destroy(e.device)
		}
	}
	for _, s := range e.uploads {
		s.destroy(e.device)
	}
	for _, f := range e.garbage {
		f()
	}
	e.garbage = e.garbage[:0]
	e.temps, e.uploads, e.wrapped = nil, nil, nil

	e.stats.Sequences++
	e.stats.PipelineMisses = e.pipelines.misses
	backend.Logger().Debug("wgpu: sequence done",
		"label", e.label,
		"blits", e.stats.Blits,
		"readbacks", e.stats.Readbacks)
	return errors.Join(errs...)
}

// later runs f once the sequence has been submitted and completed.
func (e *Executor) later(f func()) {
	e.garbage = append(e.garbage, f)
}

// Global returns the value of a global set in the current or last
// sequence.
func (e *Executor) Global(name string) (recording.Value, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.globals[name]
	return v, ok
}

// Live returns the number of temporaries currently allocated.
func (e *Executor) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.temps)
}

// Stats returns a snapshot of the executor counters.
func (e *Executor) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Release destroys the device objects of the executor, and the device
// itself when the executor opened it. Release is idempotent.
func (e *Executor) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.released {
		return
	}
	e.released = true

	if e.encoder != nil {
		e.encoder.DiscardEncoding()
		e.encoder.Destroy()
		e.encoder = nil
	}
	e.pipelines.destroyAll(e.device)
	for i, p := range e.programs {
		if p != nil {
			p.destroy(e.device)
			e.programs[i] = nil
		}
	}
	for i, s := range e.samplers {
		if s != nil {
			e.device.DestroySampler(s)
			e.samplers[i] = nil
		}
	}
	if e.closer != nil {
		e.closer()
		e.closer = nil
	}
}
