// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dither

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/dither/recording"
	"github.com/gogpu/dither/render"
)

func newTestPass(t *testing.T, s Settings, opts ...PassOption) *Pass {
	t.Helper()
	p, err := NewPass("", fullPrograms, s, opts...)
	if err != nil {
		t.Fatalf("NewPass() error = %v", err)
	}
	return p
}

func commandTypes(seq *recording.Sequence) []recording.CommandType {
	var types []recording.CommandType
	for _, c := range seq.Commands() {
		types = append(types, c.Type())
	}
	return types
}

func TestNewPassMissingProgram(t *testing.T) {
	s := validSettings(t)
	if _, err := NewPass("x", nil, s); !errors.Is(err, ErrShaderBinding) {
		t.Errorf("NewPass(nil programs) error = %v, want ErrShaderBinding", err)
	}

	partial := programSet{render.ProgramNoiseLUT: 2, render.ProgramGrain: 1}
	if _, err := NewPass("x", partial, s); !errors.Is(err, ErrShaderBinding) {
		t.Errorf("NewPass(no dither) error = %v, want ErrShaderBinding", err)
	}

	mono := programSet{render.ProgramNoiseLUT: 1, render.ProgramGrain: 1, render.ProgramDither: 2}
	if _, err := NewPass("x", mono, s); !errors.Is(err, ErrShaderBinding) {
		t.Errorf("NewPass(one noise pass) error = %v, want ErrShaderBinding", err)
	}
}

func TestNewPassInvalidSettings(t *testing.T) {
	if _, err := NewPass("x", fullPrograms, DefaultSettings()); !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewPass(no palette) error = %v, want ErrConfiguration", err)
	}
}

func TestNewPassDefaultName(t *testing.T) {
	p := newTestPass(t, validSettings(t))
	if p.Name() != "Dithering" {
		t.Errorf("Name() = %q, want Dithering", p.Name())
	}
	if p.State() != StateIdle {
		t.Errorf("State() = %v, want Idle", p.State())
	}
}

func TestConfigureKeepsPreviousSettings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := validSettings(t)
	s.Dithering.Grain.Intensity = 0.3
	p := newTestPass(t, s, WithLogger(logger))

	bad := s
	bad.Dithering.Grain.Intensity = 1.5
	for i := 0; i < 3; i++ {
		if err := p.Configure(bad); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Configure(bad) error = %v, want ErrOutOfRange", err)
		}
	}
	if got := p.Settings().Dithering.Grain.Intensity; got != 0.3 {
		t.Errorf("intensity after rejection = %v, want 0.3", got)
	}
	if n := strings.Count(buf.String(), "configuration rejected"); n != 1 {
		t.Errorf("rejection logged %d times, want 1", n)
	}

	good := s
	good.Dithering.Grain.Intensity = 0.9
	if err := p.Configure(good); err != nil {
		t.Fatalf("Configure(good) error = %v", err)
	}
	if got := p.Settings().Dithering.Grain.Intensity; got != 0.9 {
		t.Errorf("intensity = %v, want 0.9", got)
	}

	// A valid configuration re-arms the warning.
	_ = p.Configure(bad)
	if n := strings.Count(buf.String(), "configuration rejected"); n != 2 {
		t.Errorf("rejection logged %d times, want 2", n)
	}
}

func TestConfigureRejectsAliasedTemporary(t *testing.T) {
	s := validSettings(t)
	p := newTestPass(t, s)

	s.Source = NamedTexture(render.NoiseLUTTexture + "_Dithering")
	if err := p.Configure(s); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Configure(aliased source) error = %v, want ErrConfiguration", err)
	}

	s.Source = CurrentColor()
	s.Destination = NamedTexture(render.TemporaryColorTexture + "_Dithering")
	if err := p.Configure(s); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Configure(aliased destination) error = %v, want ErrConfiguration", err)
	}
}

func TestPassIndexClamp(t *testing.T) {
	tests := []struct {
		index    int
		programs programSet
		want     int
	}{
		{0, fullPrograms, 0},
		{1, fullPrograms, 1},
		{5, fullPrograms, 1},
		{-3, fullPrograms, 0},
		{1, programSet{render.ProgramNoiseLUT: 2, render.ProgramGrain: 1, render.ProgramDither: 1}, 0},
	}
	for _, tt := range tests {
		s := validSettings(t)
		s.PassIndex = tt.index
		p, err := NewPass("x", tt.programs, s)
		if err != nil {
			t.Fatal(err)
		}
		if got := p.PassIndex(); got != tt.want {
			t.Errorf("PassIndex(%d) = %d, want %d", tt.index, got, tt.want)
		}
		if got := p.Settings().PassIndex; got != tt.index {
			t.Errorf("Settings().PassIndex = %d, want %d unchanged", got, tt.index)
		}
	}
}

func TestSetupDeclaresInputs(t *testing.T) {
	s := validSettings(t)
	p := newTestPass(t, s)
	host := &spyHost{caps: Capabilities{FrameColor: true}}
	p.Setup(host)
	if len(host.inputs) != 0 {
		t.Errorf("inputs = %v, want none", host.inputs)
	}

	s.RequireDepthNormals = true
	if err := p.Configure(s); err != nil {
		t.Fatal(err)
	}
	p.Setup(host)
	if len(host.inputs) != 1 || !host.inputs[0].Has(render.InputNormal) {
		t.Errorf("inputs = %v, want [Normal]", host.inputs)
	}
}

func TestExecuteCommandOrder(t *testing.T) {
	p := newTestPass(t, validSettings(t))
	seq, err := p.Execute(newFrame(32, 16))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := []recording.CommandType{
		recording.CmdGetTemporary, // noise lookup
		recording.CmdSetParam,
		recording.CmdBlit,
		recording.CmdSetParam, // grain
		recording.CmdSetParam,
		recording.CmdSetParam,
		recording.CmdSetParam,
		recording.CmdGetTemporary,
		recording.CmdBlit,
		recording.CmdSetParam, // dither
		recording.CmdSetParam,
		recording.CmdSetParam,
		recording.CmdSetParam,
		recording.CmdSetParam,
		recording.CmdBlit,
		recording.CmdReleaseTemporary,
		recording.CmdReleaseTemporary,
	}
	got := commandTypes(seq)
	if len(got) != len(want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %v, want %v", i, got[i], want[i])
		}
	}

	cmds := seq.Commands()
	if rel := cmds[15].(recording.ReleaseTemporaryCommand); rel.Name != render.TemporaryColorTexture+"_Dithering" {
		t.Errorf("first release = %q, want intermediate", rel.Name)
	}
	if rel := cmds[16].(recording.ReleaseTemporaryCommand); rel.Name != render.NoiseLUTTexture+"_Dithering" {
		t.Errorf("second release = %q, want noise lookup", rel.Name)
	}

	if acquired, released := seq.Temporaries(); acquired != 2 || released != 2 {
		t.Errorf("Temporaries() = %d, %d; want 2, 2", acquired, released)
	}
	if p.State() != StateReleased || p.Reached() != StateDithered {
		t.Errorf("state = %v, reached = %v; want Released, Dithered", p.State(), p.Reached())
	}
}

func TestExecuteMissingSource(t *testing.T) {
	s := validSettings(t)
	s.Source = NamedTexture("_Missing")
	p := newTestPass(t, s)

	seq, err := p.Execute(newFrame(8, 8))
	if !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("Execute() error = %v, want ErrResourceNotFound", err)
	}
	if seq != nil {
		t.Errorf("Execute() returned a sequence for a skipped frame")
	}
	if p.Reached() != StateIdle || p.State() != StateReleased {
		t.Errorf("state = %v, reached = %v; want Released, Idle", p.State(), p.Reached())
	}
}

func TestExecuteInvalidFrame(t *testing.T) {
	p := newTestPass(t, validSettings(t))
	if _, err := p.Execute(nil); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("Execute(nil) error = %v, want ErrInvalidFrame", err)
	}
	if _, err := p.Execute(newFrame(0, 8)); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("Execute(0x8) error = %v, want ErrInvalidFrame", err)
	}
}

func TestRecordReleasesOnFailure(t *testing.T) {
	p := newTestPass(t, validSettings(t))
	rec := recording.NewRecorder("host")

	// Occupy the lookup name so the noise stage fails.
	lutName := render.NoiseLUTTexture + "_Dithering"
	if _, err := rec.AcquireTemporary(lutName, render.DefaultTextureDescriptor(1, 1, NoiseLUTFormat), render.FilterPoint); err != nil {
		t.Fatal(err)
	}

	err := p.Record(rec, newFrame(8, 8))
	if !errors.Is(err, recording.ErrTemporaryInUse) {
		t.Fatalf("Record() error = %v, want ErrTemporaryInUse", err)
	}
	if p.Reached() != StateTargetsResolved {
		t.Errorf("Reached() = %v, want TargetsResolved", p.Reached())
	}
	if held := rec.Held(); len(held) != 1 || held[0] != lutName {
		t.Errorf("held = %v, want only the host's %s", held, lutName)
	}
}

func TestRecordAllocatesNamedDestination(t *testing.T) {
	s := validSettings(t)
	s.Destination = NamedTexture("_Dithered")
	p := newTestPass(t, s)

	rec := recording.NewRecorder("host")
	frame := newFrame(16, 16)
	frame.Textures = render.NewNamedTextures()
	if err := p.Record(rec, frame); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if !rec.IsHeld("_Dithered") {
		t.Fatal("destination released before ReleaseResources")
	}
	if held := rec.Held(); len(held) != 1 {
		t.Errorf("held = %v, want only the destination", held)
	}

	// A second frame on the same recorder reuses the held destination.
	if err := p.Record(rec, frame); err != nil {
		t.Fatalf("second Record() error = %v", err)
	}

	p.ReleaseResources(rec)
	p.ReleaseResources(rec)
	if rec.IsHeld("_Dithered") {
		t.Error("destination still held after ReleaseResources")
	}

	seq := rec.Finish()
	if acquired, released := seq.Temporaries(); acquired != released {
		t.Errorf("Temporaries() = %d, %d; want balanced", acquired, released)
	}
}

func TestExecuteOverrideFormat(t *testing.T) {
	s := validSettings(t)
	s.Destination = NamedTexture("_Dithered")
	s.OverrideFormat = NoiseLUTFormat
	p := newTestPass(t, s)

	seq, err := p.Execute(newFrame(16, 16))
	if err != nil {
		t.Fatal(err)
	}
	get := seq.Commands()[0].(recording.GetTemporaryCommand)
	if get.Name != "_Dithered" || get.Desc.Format != NoiseLUTFormat {
		t.Errorf("destination = %+v, want _Dithered with override format", get)
	}
	if acquired, released := seq.Temporaries(); acquired != 3 || released != 3 {
		t.Errorf("Temporaries() = %d, %d; want 3, 3", acquired, released)
	}
}

func TestInverseViewMatrix(t *testing.T) {
	s := validSettings(t)
	s.SetInverseViewMatrix = true
	p := newTestPass(t, s)

	frame := newFrame(8, 8)
	var m [16]float32
	for i := range m {
		m[i] = float32(i)
	}
	frame.CameraToWorld = &m

	seq, err := p.Execute(frame)
	if err != nil {
		t.Fatal(err)
	}
	g, ok := seq.Commands()[0].(recording.SetGlobalCommand)
	if !ok || g.Name != render.UniformInverseView || g.Value.Matrix != m {
		t.Errorf("first command = %v, want _InverseView global", seq.Commands()[0])
	}

	s.SetInverseViewMatrix = false
	if err := p.Configure(s); err != nil {
		t.Fatal(err)
	}
	seq, err = p.Execute(frame)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range seq.Commands() {
		if c.Type() == recording.CmdSetGlobal {
			t.Errorf("unexpected global %v", c)
		}
	}
}

func TestAnimatedPhaseUsesRand(t *testing.T) {
	s := validSettings(t)
	s.Dithering.Grain.Animated = true
	p := newTestPass(t, s, WithRand(&seqRand{values: []float32{0.4}}))

	seq, err := p.Execute(newFrame(8, 8))
	if err != nil {
		t.Fatal(err)
	}
	param := seq.Commands()[1].(recording.SetParamCommand)
	if param.Name != render.UniformPhase || param.Value.Float != float32(0.4)/20 {
		t.Errorf("phase = %v, want %v", param.Value, float32(0.4)/20)
	}
}
