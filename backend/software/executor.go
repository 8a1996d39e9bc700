// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/dither/backend"
	"github.com/gogpu/dither/recording"
	"github.com/gogpu/dither/render"
)

// Executor errors.
var (
	ErrUnknownTemporary   = errors.New("software: unknown temporary")
	ErrUnsupportedTexture = errors.New("software: texture is not a *render.Image")
	ErrUnboundParameter   = errors.New("software: parameter not bound")
	ErrUnknownProgram     = errors.New("software: unknown program pass")
)

var passCounts = map[render.ProgramID]int{
	render.ProgramNoiseLUT: 2,
	render.ProgramGrain:    1,
	render.ProgramDither:   2,
}

func init() {
	backend.Register(backend.NameSoftware, func() recording.Executor {
		return New()
	})
}

// Stats counts executor work since creation.
type Stats struct {
	Allocated int
	Released  int
	Blits     int
	Sequences int
}

// Executor runs frame sequences on the CPU.
//
// Executor is safe for concurrent use, but sequences are executed one at a
// time.
type Executor struct {
	mu      sync.Mutex
	pool    *Pool
	workers *workerPool
	temps   map[string]*render.Image
	params  map[render.ProgramID]map[string]recording.Value
	globals map[string]recording.Value
	label   string
	stats   Stats
}

// Option configures an Executor.
type Option func(*Executor)

// WithWorkers sets the number of goroutines a blit is spread across. A
// value of 1 runs every blit on the calling goroutine; 0 or less uses
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Executor) {
		e.workers.close()
		e.workers = nil
		if n != 1 {
			e.workers = newWorkerPool(n)
		}
	}
}

// New creates a software executor. Call Release to stop its workers.
func New(opts ...Option) *Executor {
	e := &Executor{
		pool:    NewPool(4),
		temps:   make(map[string]*render.Image),
		params:  make(map[render.ProgramID]map[string]recording.Value),
		globals: make(map[string]recording.Value),
		workers: newWorkerPool(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Release stops the blit workers. Later blits run on the calling
// goroutine.
func (e *Executor) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.workers.close()
}

// PassCount implements render.ProgramSet.
func (e *Executor) PassCount(p render.ProgramID) int {
	return passCounts[p]
}

// Begin implements recording.Executor. Parameters of previous sequences are
// discarded.
func (e *Executor) Begin(_ context.Context, label string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.label = label
	clear(e.params)
	clear(e.globals)
	if n := len(e.temps); n > 0 {
		backend.Logger().Warn("software: temporaries alive at begin", "label", label, "count", n)
	}
	return nil
}

// GetTemporary implements recording.Executor.
func (e *Executor) GetTemporary(name string, desc render.TextureDescriptor, _ render.FilterMode) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.temps[name]; ok {
		return fmt.Errorf("%w: %s", recording.ErrTemporaryInUse, name)
	}
	e.temps[name] = e.pool.Get(desc.Width, desc.Height, desc.Format)
	e.stats.Allocated++
	return nil
}

// ReleaseTemporary implements recording.Executor.
func (e *Executor) ReleaseTemporary(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	img, ok := e.temps[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTemporary, name)
	}
	delete(e.temps, name)
	e.pool.Put(img)
	e.stats.Released++
	return nil
}

// SetGlobal implements recording.Executor.
func (e *Executor) SetGlobal(name string, v recording.Value) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.globals[name] = v
	return nil
}

// SetParam implements recording.Executor.
func (e *Executor) SetParam(program render.ProgramID, name string, v recording.Value) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m := e.params[program]
	if m == nil {
		m = make(map[string]recording.Value)
		e.params[program] = m
	}
	m[name] = v
	return nil
}

// Blit implements recording.Executor.
func (e *Executor) Blit(src, dst render.Target, program render.ProgramID, pass int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if pass < 0 || pass >= passCounts[program] {
		return fmt.Errorf("%w: %s/%d", ErrUnknownProgram, program, pass)
	}
	out, err := e.image(dst)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}

	switch program {
	case render.ProgramNoiseLUT:
		phase, err := e.float(program, render.UniformPhase)
		if err != nil {
			return err
		}
		runNoiseLUT(out, phase, pass == 1)

	case render.ProgramGrain:
		in, err := e.image(src)
		if err != nil {
			return fmt.Errorf("source: %w", err)
		}
		p, err := e.grainParams()
		if err != nil {
			return err
		}
		runGrain(in, out, p)

	case render.ProgramDither:
		in, err := e.image(src)
		if err != nil {
			return fmt.Errorf("source: %w", err)
		}
		p, err := e.ditherParams()
		if err != nil {
			return err
		}
		if pass == 0 {
			runOrdered(in, out, p)
		} else {
			runNearest(in, out, p)
		}
	}

	e.stats.Blits++
	return nil
}

// End implements recording.Executor.
func (e *Executor) End() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stats.Sequences++
	backend.Logger().Debug("software: sequence done",
		"label", e.label,
		"live", len(e.temps),
		"allocated", e.stats.Allocated,
		"released", e.stats.Released)
	return nil
}

// Live returns the number of temporaries currently allocated.
func (e *Executor) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.temps)
}

// Stats returns the work counters.
func (e *Executor) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Temporary returns the image backing a live temporary. It is intended for
// tests and debugging views.
func (e *Executor) Temporary(name string) (*render.Image, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	img, ok := e.temps[name]
	return img, ok
}

// Global returns a bound global parameter.
func (e *Executor) Global(name string) (recording.Value, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.globals[name]
	return v, ok
}

func (e *Executor) image(t render.Target) (*render.Image, error) {
	switch t.Kind {
	case render.TargetTemporary:
		img, ok := e.temps[t.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTemporary, t.Name)
		}
		return img, nil
	case render.TargetTexture:
		img, ok := t.Texture.(*render.Image)
		if !ok || img == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedTexture, t)
		}
		return img, nil
	default:
		return nil, fmt.Errorf("software: no surface for %s", t)
	}
}

func (e *Executor) param(program render.ProgramID, name string, kind recording.ValueKind) (recording.Value, error) {
	v, ok := e.params[program][name]
	if !ok {
		return recording.Value{}, fmt.Errorf("%w: %s.%s", ErrUnboundParameter, program, name)
	}
	if v.Kind != kind {
		return recording.Value{}, fmt.Errorf("software: %s.%s is %s, want %s", program, name, v.Kind, kind)
	}
	return v, nil
}

func (e *Executor) float(program render.ProgramID, name string) (float32, error) {
	v, err := e.param(program, name, recording.ValueFloat)
	return v.Float, err
}

func (e *Executor) vector(program render.ProgramID, name string) ([4]float32, error) {
	v, err := e.param(program, name, recording.ValueVector)
	return v.Vector, err
}

func (e *Executor) texture(program render.ProgramID, name string) (*render.Image, error) {
	v, err := e.param(program, name, recording.ValueTexture)
	if err != nil {
		return nil, err
	}
	img, err := e.image(v.Texture)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", program, name, err)
	}
	return img, nil
}

func (e *Executor) grainParams() (grainParams, error) {
	const p = render.ProgramGrain
	var gp grainParams
	var err error
	if gp.lut, err = e.texture(p, render.UniformGrainTex); err != nil {
		return gp, err
	}
	if gp.exposure, err = e.texture(p, render.UniformAutoExposure); err != nil {
		return gp, err
	}
	if gp.params1, err = e.vector(p, render.UniformGrainParams1); err != nil {
		return gp, err
	}
	gp.params2, err = e.vector(p, render.UniformGrainParams2)
	gp.workers = e.workers
	return gp, err
}

func (e *Executor) ditherParams() (ditherParams, error) {
	const p = render.ProgramDither
	var dp ditherParams
	var err error
	if dp.palette, err = e.texture(p, render.UniformPaletteTex); err != nil {
		return dp, err
	}
	if dp.pattern, err = e.texture(p, render.UniformPatternTex); err != nil {
		return dp, err
	}
	count, err := e.float(p, render.UniformPaletteColorCount)
	if err != nil {
		return dp, err
	}
	rows, err := e.float(p, render.UniformPaletteHeight)
	if err != nil {
		return dp, err
	}
	size, err := e.float(p, render.UniformPatternSize)
	if err != nil {
		return dp, err
	}
	dp.colorCount, dp.rows, dp.size = int(count), int(rows), int(size)
	dp.workers = e.workers
	return dp, nil
}
