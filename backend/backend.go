// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"

	"github.com/gogpu/dither/recording"
)

// Common backend errors.
var (
	// ErrNotAvailable is returned when a requested executor is not registered
	// or could not be created.
	ErrNotAvailable = errors.New("backend: executor not available")

	// ErrReleased is returned by executors used after Release.
	ErrReleased = errors.New("backend: executor released")
)

// Executor names.
const (
	NameWGPU     = "wgpu"
	NameSoftware = "software"
)

// Releaser is implemented by executors that hold device resources.
type Releaser interface {
	Release()
}

// Release frees the resources of exec if it holds any.
func Release(exec recording.Executor) {
	if r, ok := exec.(Releaser); ok {
		r.Release()
	}
}
