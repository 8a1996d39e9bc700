// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"github.com/gogpu/dither/backend"
	"github.com/gogpu/dither/recording"

	// Register the Vulkan HAL backend.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

func init() {
	backend.Register(backend.NameWGPU, func() recording.Executor {
		e, err := Open()
		if err != nil {
			backend.Logger().Debug("wgpu: executor unavailable", "error", err)
			return nil
		}
		return e
	})
}
