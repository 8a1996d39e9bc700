// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dither

import "fmt"

// FrameState is the progress of the pass through a frame.
type FrameState uint8

const (
	StateIdle FrameState = iota
	StateTargetsResolved
	StateLutGenerated
	StateGrainApplied
	StateDithered
	StateReleased
)

var frameStateNames = [...]string{
	StateIdle:            "Idle",
	StateTargetsResolved: "TargetsResolved",
	StateLutGenerated:    "LutGenerated",
	StateGrainApplied:    "GrainApplied",
	StateDithered:        "Dithered",
	StateReleased:        "Released",
}

// String returns the state name.
func (s FrameState) String() string {
	if int(s) < len(frameStateNames) {
		return frameStateNames[s]
	}
	return fmt.Sprintf("FrameState(%d)", s)
}
