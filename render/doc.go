// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the surfaces the dithering pass reads and writes.
//
// The host renderer owns its color buffers and named textures; the pass only
// refers to them. This package provides the vocabulary shared by the pass,
// the command recording and the executors:
//
//   - Texture: anything with a size and a pixel format
//   - Image: a CPU-resident float32 RGBA texture used by the software executor
//   - Target: a resolved surface reference (texture, frame temporary, or none)
//   - NamedTextures: the host's lookup table of globally named textures
//   - TextureDescriptor: size and format of a frame-scoped temporary
//   - ProgramID / ProgramSet: the shader programs an executor provides
//
// # Key Principle
//
// The pass RECEIVES the GPU device from the host, it does NOT create one.
// DeviceHandle is the hand-off point, shared with the gpucontext ecosystem.
package render
