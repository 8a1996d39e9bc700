// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dither

import "log/slog"

// PassOption configures a Pass during creation.
//
// Example:
//
//	pass, err := dither.NewPass("Dithering", exec, settings,
//	    dither.WithRand(rand.New(rand.NewPCG(1, 2))),
//	)
type PassOption func(*passOptions)

type passOptions struct {
	rng    RandSource
	logger *slog.Logger
}

func defaultPassOptions() passOptions {
	return passOptions{rng: globalRand{}}
}

// WithRand sets the random source of animated noise. Use a seeded source
// for reproducible animated frames.
func WithRand(r RandSource) PassOption {
	return func(o *passOptions) {
		if r != nil {
			o.rng = r
		}
	}
}

// WithLogger sets a pass-specific logger. By default the pass logs through
// the package logger (see SetLogger).
func WithLogger(l *slog.Logger) PassOption {
	return func(o *passOptions) {
		o.logger = l
	}
}
