// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dither

import (
	"errors"
	"fmt"
)

// Error categories. Use errors.Is to test for them.
var (
	// ErrConfiguration reports settings that cannot produce a usable pass.
	ErrConfiguration = errors.New("dither: invalid configuration")

	// ErrOutOfRange reports a numeric parameter outside its documented range.
	ErrOutOfRange = errors.New("dither: parameter out of range")

	// ErrResourceNotFound reports a buffer reference that names no surface.
	ErrResourceNotFound = errors.New("dither: resource not found")

	// ErrShaderBinding reports a shader program that the executor cannot run.
	ErrShaderBinding = errors.New("dither: shader program unavailable")

	// ErrInvalidFrame reports a frame context without a usable size or format.
	ErrInvalidFrame = errors.New("dither: invalid frame")
)

// ConfigError describes a configuration problem.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dither: %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrConfiguration.
func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// OutOfRangeError describes a parameter outside [Min, Max].
type OutOfRangeError struct {
	Field    string
	Value    float32
	Min, Max float32
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("dither: %s = %g, want [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

// Unwrap returns ErrOutOfRange.
func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// ResourceError describes a buffer reference that could not be resolved.
type ResourceError struct {
	Role string // "source" or "destination"
	Ref  BufferRef
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("dither: %s %s not found", e.Role, e.Ref)
}

// Unwrap returns ErrResourceNotFound.
func (e *ResourceError) Unwrap() error { return ErrResourceNotFound }
