// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software provides a CPU executor for dithering frame sequences.
//
// The executor implements every program the pass drives (noise lookup
// generation, grain blend and palette dithering) over render.Image
// textures. It is the reference implementation the GPU shaders follow and
// the executor used in tests and headless tools.
//
// Importing the package registers the executor as "software":
//
//	import _ "github.com/gogpu/dither/backend/software"
//
// Frame temporaries come from a size-keyed pool, and the executor counts
// allocations and releases so callers can check that frames are balanced.
// Grain and dither blits are split into row bands that run on a small
// worker pool; see WithWorkers.
package software
