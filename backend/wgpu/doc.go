// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu provides a GPU executor for dither command sequences on the
// gogpu/wgpu HAL.
//
// Every program is a WGSL module drawn as a fullscreen triangle. The
// modules are validated with gogpu/naga when an executor is created, and
// NewExecutor fails with ErrShaderCompile when one of them is rejected.
//
// Temporaries live on the device for one sequence. CPU textures
// (*render.Image) used by a sequence are uploaded once and, when written,
// read back at End.
//
// # Device selection
//
// The package registers the "wgpu" executor with the backend registry. It
// opens the best HAL backend lazily the first time the executor is
// requested. Hosts that already own a device pass it with NewExecutor or
// NewFromProvider.
package wgpu
