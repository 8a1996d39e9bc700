// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend provides a pluggable executor abstraction.
//
// An executor runs recorded frame sequences (see package recording). Two
// implementations exist: the software executor in backend/software, a CPU
// reference of every program, and the GPU executor in backend/wgpu, built on
// the gogpu/wgpu HAL.
//
// # Executor Registration
//
// Executors register a factory in init() and are selected at runtime:
//
//	import _ "github.com/gogpu/dither/backend/software"
//
// # Executor Selection
//
// Use Default to get the best available executor, or Get to request one by
// name:
//
//	exec, name, err := backend.Default()
//
//	exec, err := backend.Get(backend.NameSoftware)
//
// Priority order is wgpu, then software. A factory that cannot create its
// executor (for example, no GPU adapter) returns nil and is skipped.
package backend
