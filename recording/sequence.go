// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/dither/render"
)

// Executor runs recorded commands. Executors are created through the
// backend registry or directly from their packages.
//
// # Implementation Contract
//
// Each executor must:
//  1. Report its programs and their pass counts through PassCount
//  2. Own every temporary between GetTemporary and ReleaseTemporary
//  3. Keep parameters bound until they are overwritten or End is called
//  4. Never release textures it did not allocate
type Executor interface {
	render.ProgramSet

	// Begin starts a sequence. label is the sequence label.
	Begin(ctx context.Context, label string) error

	// GetTemporary allocates a frame temporary.
	GetTemporary(name string, desc render.TextureDescriptor, filter render.FilterMode) error

	// ReleaseTemporary releases a frame temporary.
	ReleaseTemporary(name string) error

	// SetGlobal binds a parameter visible to every program.
	SetGlobal(name string, v Value) error

	// SetParam binds a parameter of one program.
	SetParam(program render.ProgramID, name string, v Value) error

	// Blit runs one program pass over the destination.
	Blit(src, dst render.Target, program render.ProgramID, pass int) error

	// End finishes the sequence and submits pending work.
	End() error
}

// Sequence is an immutable list of frame commands.
type Sequence struct {
	label    string
	commands []Command
	acquired int
}

// Label returns the sequence label.
func (s *Sequence) Label() string { return s.label }

// Len returns the number of commands.
func (s *Sequence) Len() int { return len(s.commands) }

// Commands returns a copy of the command list.
func (s *Sequence) Commands() []Command { return slices.Clone(s.commands) }

// Temporaries returns the number of temporaries acquired and released by
// the sequence.
func (s *Sequence) Temporaries() (acquired, released int) {
	for _, c := range s.commands {
		if c.Type() == CmdReleaseTemporary {
			released++
		}
	}
	return s.acquired, released
}

// Playback executes the sequence on exec.
//
// Commands run in order. After the first failure, or when ctx is done, the
// remaining commands are skipped except the releases of temporaries that
// were successfully allocated, so a failed frame never leaks. End is always
// called once Begin succeeded. All errors are joined.
func (s *Sequence) Playback(ctx context.Context, exec Executor) error {
	if err := exec.Begin(ctx, s.label); err != nil {
		return fmt.Errorf("recording: begin %s: %w", s.label, err)
	}

	var (
		failed error
		errs   []error
		live   = make(map[string]struct{})
	)

	for i, cmd := range s.commands {
		if rel, ok := cmd.(ReleaseTemporaryCommand); ok {
			if _, allocated := live[rel.Name]; !allocated {
				continue
			}
			delete(live, rel.Name)
			if err := exec.ReleaseTemporary(rel.Name); err != nil {
				errs = append(errs, fmt.Errorf("recording: release %s: %w", rel.Name, err))
			}
			continue
		}
		if failed != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			failed = err
			errs = append(errs, err)
			continue
		}

		var err error
		switch c := cmd.(type) {
		case GetTemporaryCommand:
			if err = exec.GetTemporary(c.Name, c.Desc, c.Filter); err == nil {
				live[c.Name] = struct{}{}
			}
		case SetGlobalCommand:
			err = exec.SetGlobal(c.Name, c.Value)
		case SetParamCommand:
			err = exec.SetParam(c.Program, c.Name, c.Value)
		case BlitCommand:
			err = exec.Blit(c.Src, c.Dst, c.Program, c.Pass)
		default:
			err = fmt.Errorf("unsupported command %T", cmd)
		}
		if err != nil {
			failed = err
			errs = append(errs, fmt.Errorf("recording: %s command %d: %w", cmd.Type(), i, err))
		}
	}

	if err := exec.End(); err != nil {
		errs = append(errs, fmt.Errorf("recording: end %s: %w", s.label, err))
	}
	return errors.Join(errs...)
}
