// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dither

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/dither/recording"
	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
)

// minPasses is the number of passes each program must provide.
var minPasses = [...]struct {
	program render.ProgramID
	passes  int
}{
	{render.ProgramNoiseLUT, 2},
	{render.ProgramGrain, 1},
	{render.ProgramDither, 1},
}

// Pass is the per-frame grain and dithering pass.
//
// A Pass is safe for concurrent use: Configure may be called from another
// goroutine while frames are recorded. Frames of one pass are recorded
// one at a time.
type Pass struct {
	name     string
	programs render.ProgramSet
	rng      RandSource
	logger   *slog.Logger

	mu        sync.Mutex
	settings  Settings
	passIndex int
	resolver  *Resolver
	state     FrameState
	reached   FrameState
	warned    bool
	held      map[*recording.Recorder][]string
}

// NewPass creates a pass named name for the executor programs.
//
// It returns an error wrapping ErrShaderBinding when a program is missing,
// or ErrConfiguration / ErrOutOfRange when settings are invalid.
func NewPass(name string, programs render.ProgramSet, settings Settings, opts ...PassOption) (*Pass, error) {
	if programs == nil {
		return nil, fmt.Errorf("%w: no program set", ErrShaderBinding)
	}
	for _, m := range minPasses {
		if n := programs.PassCount(m.program); n < m.passes {
			return nil, fmt.Errorf("%w: %s has %d passes, want at least %d", ErrShaderBinding, m.program, n, m.passes)
		}
	}
	if name == "" {
		name = "Dithering"
	}

	o := defaultPassOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pass{
		name:     name,
		programs: programs,
		rng:      o.rng,
		logger:   o.logger,
		resolver: NewResolver(nil),
		held:     make(map[*recording.Recorder][]string),
	}
	if err := p.validate(&settings); err != nil {
		return nil, err
	}
	p.apply(settings)
	return p, nil
}

// Name returns the pass name.
func (p *Pass) Name() string { return p.name }

// Settings returns a copy of the active settings.
func (p *Pass) Settings() Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// PassIndex returns the clamped dither pass index.
func (p *Pass) PassIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.passIndex
}

// State returns the frame state of the pass.
func (p *Pass) State() FrameState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Reached returns the last stage completed by the most recent frame before
// its temporaries were released.
func (p *Pass) Reached() FrameState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reached
}

// Configure replaces the settings. Invalid settings are rejected and the
// previous settings stay active; the rejection is logged once until a
// valid configuration is applied.
func (p *Pass) Configure(settings Settings) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.validate(&settings); err != nil {
		if !p.warned {
			p.log().Warn("dither: configuration rejected", "pass", p.name, "err", err)
			p.warned = true
		}
		return err
	}
	p.warned = false
	p.apply(settings)
	return nil
}

// Setup negotiates with the host: it declares the extra inputs the pass
// needs and records the host capabilities.
func (p *Pass) Setup(host Host) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.resolver = NewResolver(host)
	if host != nil && p.settings.RequireDepthNormals {
		host.ConfigureInput(render.InputNormal)
	}
}

// Execute records a complete frame. Every temporary, including a
// self-allocated destination, is released at the end of the returned
// sequence.
func (p *Pass) Execute(frame *FrameContext) (*recording.Sequence, error) {
	rec := recording.NewRecorder(p.name)
	err := p.Record(rec, frame)
	p.ReleaseResources(rec)
	if err != nil {
		return nil, err
	}
	return rec.Finish(), nil
}

// Record records the frame into a host recorder. The noise lookup texture
// and the intermediate buffer are released before Record returns. A
// self-allocated destination stays held so later host passes can read it;
// release it with ReleaseResources at the end of the frame.
func (p *Pass) Record(rec *recording.Recorder, frame *FrameContext) (err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state = StateIdle
	p.reached = StateIdle
	defer func() {
		p.reached = p.state
		p.state = StateReleased
		if err != nil {
			p.log().Warn("dither: frame skipped", "pass", p.name, "stage", p.reached, "err", err)
		}
	}()

	if err := frame.validate(); err != nil {
		return err
	}
	s := &p.settings

	src, err := p.resolver.Resolve(EffectiveRef(s.Source, s.Event, frame.PostProcessing), frame)
	if err != nil {
		return err
	}
	dst, allocate, err := p.resolver.ResolveDestination(EffectiveRef(s.Destination, s.Event, frame.PostProcessing), frame)
	if err != nil {
		return err
	}
	if allocate && !p.holds(rec, dst.Name) {
		desc := frame.Descriptor()
		if s.OverrideFormat != gputypes.TextureFormatUndefined {
			desc.Format = s.OverrideFormat
		}
		if _, err := rec.AcquireTemporary(dst.Name, desc, s.FilterMode); err != nil {
			return fmt.Errorf("dither: destination: %w", err)
		}
		p.held[rec] = append(p.held[rec], dst.Name)
	}
	p.state = StateTargetsResolved

	if s.SetInverseViewMatrix && frame.CameraToWorld != nil {
		rec.SetGlobal(render.UniformInverseView, recording.MatrixValue(*frame.CameraToWorld))
	}

	noise := NoiseStage{LUTName: p.tempName(render.NoiseLUTTexture), Colored: s.Dithering.Grain.Colored}
	params := ComputeNoiseParams(s.Dithering.Grain.Animated, p.rng)
	lut, err := noise.Record(rec, params)
	if err != nil {
		return err
	}
	defer releaseInto(rec, lut.Name, &err)
	p.state = StateLutGenerated

	grain := GrainStage{TempName: p.tempName(render.TemporaryColorTexture)}
	gp := ComputeGrainParams(s.Dithering.Grain, frame.Width, frame.Height, params)
	tmp, err := grain.Record(rec, src, lut, frame.Descriptor(), s.FilterMode, gp)
	if err != nil {
		return err
	}
	defer releaseInto(rec, tmp.Name, &err)
	p.state = StateGrainApplied

	DitherStage{PassIndex: p.passIndex}.Record(rec, tmp, dst, BindingsFor(s.Dithering))
	p.state = StateDithered

	p.log().Debug("dither: frame recorded",
		"pass", p.name,
		"src", src.String(),
		"dst", dst.String(),
		"phase", params.Phase,
		"commands", rec.Len())
	return nil
}

// ReleaseResources releases every temporary this pass still holds on rec.
// It is safe to call after aborted frames and more than once.
func (p *Pass) ReleaseResources(rec *recording.Recorder) {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := p.held[rec]
	delete(p.held, rec)
	for i := len(names) - 1; i >= 0; i-- {
		if err := rec.ReleaseTemporary(names[i]); err != nil {
			p.log().Debug("dither: release", "pass", p.name, "err", err)
		}
	}
}

func releaseInto(rec *recording.Recorder, name string, err *error) {
	if rerr := rec.ReleaseTemporary(name); rerr != nil {
		*err = errors.Join(*err, rerr)
	}
}

func (p *Pass) holds(rec *recording.Recorder, name string) bool {
	for _, n := range p.held[rec] {
		if n == name {
			return true
		}
	}
	return false
}

func (p *Pass) tempName(base string) string {
	return base + "_" + p.name
}

// validate checks settings against the pass. Called with p.mu held or
// before the pass is shared.
func (p *Pass) validate(s *Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	own := []string{p.tempName(render.NoiseLUTTexture), p.tempName(render.TemporaryColorTexture)}
	for _, ref := range []struct {
		field string
		ref   BufferRef
	}{{"source", s.Source}, {"destination", s.Destination}} {
		if ref.ref.kind != BufferNamed {
			continue
		}
		for _, name := range own {
			if ref.ref.name == name {
				return &ConfigError{Field: ref.field, Reason: "aliases frame temporary " + name}
			}
		}
	}
	return nil
}

func (p *Pass) apply(s Settings) {
	p.settings = s
	n := p.programs.PassCount(render.ProgramDither)
	p.passIndex = min(max(s.PassIndex, 0), n-1)
}

func (p *Pass) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return Logger()
}
