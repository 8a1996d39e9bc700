// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/dither/render"
)

// Errors returned by the Recorder.
var (
	// ErrTemporaryInUse is returned when a temporary name is acquired twice.
	ErrTemporaryInUse = errors.New("recording: temporary already held")

	// ErrTemporaryNotHeld is returned when releasing a name that is not held.
	ErrTemporaryNotHeld = errors.New("recording: temporary not held")
)

// Recorder captures frame commands. Use Finish to obtain an immutable
// Sequence.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	label    string
	commands []Command
	held     []string
	acquired int
}

// NewRecorder creates an empty Recorder. The label names the sequence in
// executor debug output.
func NewRecorder(label string) *Recorder {
	return &Recorder{
		label:    label,
		commands: make([]Command, 0, 16),
	}
}

// AcquireTemporary records the allocation of a frame temporary and returns
// a target referring to it. The name stays held until released.
func (r *Recorder) AcquireTemporary(name string, desc render.TextureDescriptor, filter render.FilterMode) (render.Target, error) {
	if name == "" {
		return render.Target{}, fmt.Errorf("recording: empty temporary name")
	}
	if r.IsHeld(name) {
		return render.Target{}, fmt.Errorf("%w: %s", ErrTemporaryInUse, name)
	}
	if err := desc.Validate(); err != nil {
		return render.Target{}, fmt.Errorf("recording: temporary %s: %w", name, err)
	}
	if desc.Label == "" {
		desc.Label = name
	}
	r.commands = append(r.commands, GetTemporaryCommand{Name: name, Desc: desc, Filter: filter})
	r.held = append(r.held, name)
	r.acquired++
	return render.TemporaryTarget(name), nil
}

// ReleaseTemporary records the release of a held temporary.
func (r *Recorder) ReleaseTemporary(name string) error {
	i := slices.Index(r.held, name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTemporaryNotHeld, name)
	}
	r.held = slices.Delete(r.held, i, i+1)
	r.commands = append(r.commands, ReleaseTemporaryCommand{Name: name})
	return nil
}

// IsHeld reports whether name is currently held.
func (r *Recorder) IsHeld(name string) bool {
	return slices.Contains(r.held, name)
}

// Held returns the held temporary names in acquisition order.
func (r *Recorder) Held() []string {
	return slices.Clone(r.held)
}

// SetGlobal records a global parameter binding.
func (r *Recorder) SetGlobal(name string, v Value) {
	r.commands = append(r.commands, SetGlobalCommand{Name: name, Value: v})
}

// SetParam records a per-program parameter binding.
func (r *Recorder) SetParam(program render.ProgramID, name string, v Value) {
	r.commands = append(r.commands, SetParamCommand{Program: program, Name: name, Value: v})
}

// Blit records a full-screen blit.
func (r *Recorder) Blit(src, dst render.Target, program render.ProgramID, pass int) {
	r.commands = append(r.commands, BlitCommand{Src: src, Dst: dst, Program: program, Pass: pass})
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int { return len(r.commands) }

// Finish releases every temporary still held, newest first, and returns the
// immutable Sequence. The Recorder should not be used afterwards.
func (r *Recorder) Finish() *Sequence {
	for i := len(r.held) - 1; i >= 0; i-- {
		r.commands = append(r.commands, ReleaseTemporaryCommand{Name: r.held[i]})
	}
	r.held = nil
	return &Sequence{
		label:    r.label,
		commands: r.commands,
		acquired: r.acquired,
	}
}
