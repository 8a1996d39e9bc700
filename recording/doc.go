// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package recording builds the explicit command sequence of a frame.
//
// The pass does not talk to a GPU directly. It records typed commands
// (temporary allocation and release, parameter binding, full-screen blits)
// into a Recorder. The finished Sequence is immutable and can be inspected
// in tests or replayed onto any Executor, such as the software or the wgpu
// executor.
//
// Design follows typed command structs for inspectability, rather than a
// binary command buffer.
//
// # Temporaries
//
// Frame temporaries are scoped by name. AcquireTemporary emits a
// GetTemporary command and marks the name as held; ReleaseTemporary emits
// the matching release. Finish releases everything still held, in reverse
// acquisition order, so every sequence is balanced. Playback executes the
// release commands even after an earlier command failed.
//
// # Example
//
//	rec := recording.NewRecorder("dither")
//	lut, _ := rec.AcquireTemporary("_NoiseLutTexture", desc, render.FilterBilinear)
//	rec.SetParam(render.ProgramNoiseLUT, "_Phase", recording.FloatValue(0.2))
//	rec.Blit(render.NoTarget(), lut, render.ProgramNoiseLUT, 0)
//	seq := rec.Finish()
//
//	err := seq.Playback(ctx, executor)
package recording
