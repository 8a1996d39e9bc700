// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"fmt"
	"slices"

	"github.com/gogpu/dither/recording"
	"github.com/gogpu/gpucontext"
)

// Factory creates an executor. It returns nil when the executor cannot be
// created in the current environment.
type Factory func() recording.Executor

// Priority order for executor selection (first available wins).
var priority = []string{NameWGPU, NameSoftware}

var executors = gpucontext.NewRegistry[recording.Executor](gpucontext.WithPriority(priority...))

// Register registers an executor factory under name, replacing any previous
// factory. This is typically called from init() in executor packages.
func Register(name string, factory Factory) {
	if factory == nil {
		panic("backend: Register factory is nil")
	}
	executors.Register(name, factory)
}

// Unregister removes an executor factory. This is useful for testing.
func Unregister(name string) {
	executors.Unregister(name)
}

// IsRegistered checks if an executor with the given name is registered.
func IsRegistered(name string) bool {
	return executors.Has(name)
}

// Available returns the registered executor names in sorted order.
func Available() []string {
	names := executors.Available()
	slices.Sort(names)
	return names
}

// Get creates the executor registered under name.
func Get(name string) (recording.Executor, error) {
	if !executors.Has(name) {
		return nil, fmt.Errorf("%w: %q (forgotten import?)", ErrNotAvailable, name)
	}
	exec := executors.Get(name)
	if exec == nil {
		return nil, fmt.Errorf("%w: %q could not be created", ErrNotAvailable, name)
	}
	return exec, nil
}

// Default returns the best available executor and its name.
// Priority order: wgpu > software > any other registered executor.
func Default() (recording.Executor, string, error) {
	for _, name := range priority {
		if exec, err := Get(name); err == nil {
			return exec, name, nil
		}
	}
	for _, name := range Available() {
		if slices.Contains(priority, name) {
			continue
		}
		if exec, err := Get(name); err == nil {
			return exec, name, nil
		}
	}
	return nil, "", ErrNotAvailable
}
