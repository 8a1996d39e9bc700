// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads dithering settings from TOML files.
//
// A settings file looks like:
//
//	event = "after-rendering"
//	source = "current"
//	destination = "Dithered"
//	override_format = "rgba16float"
//	filter = "bilinear"
//	pass_index = 0
//
//	[dithering]
//	palette = ["#000000", "#808080", "#ffffff"]
//	pattern = "bayer4"
//
//	[dithering.grain]
//	colored = false
//	intensity = 0.3
//	size = 1.5
//	luminance_contribution = 0.8
//	animated = true
//
// Unset fields keep the values of dither.DefaultSettings. Instead of a
// palette list, preset = "gameboy" selects a built-in palette. The pattern
// is "bayer2", "bayer4" or "bayer8".
package config
