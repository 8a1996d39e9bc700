// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dither

import (
	"fmt"
	"strings"
)

// ScheduleEvent is the point in the host frame where the pass runs.
type ScheduleEvent uint8

const (
	BeforeRendering ScheduleEvent = iota
	AfterRenderingOpaques
	AfterRenderingTransparents
	BeforeRenderingPostProcessing
	AfterRenderingPostProcessing
	AfterRendering
)

var scheduleEventNames = [...]string{
	BeforeRendering:               "BeforeRendering",
	AfterRenderingOpaques:         "AfterRenderingOpaques",
	AfterRenderingTransparents:    "AfterRenderingTransparents",
	BeforeRenderingPostProcessing: "BeforeRenderingPostProcessing",
	AfterRenderingPostProcessing:  "AfterRenderingPostProcessing",
	AfterRendering:                "AfterRendering",
}

// String returns the event name.
func (e ScheduleEvent) String() string {
	if int(e) < len(scheduleEventNames) {
		return scheduleEventNames[e]
	}
	return fmt.Sprintf("ScheduleEvent(%d)", e)
}

// ParseScheduleEvent parses an event name. Matching ignores case, '-' and '_',
// so "after-rendering" and "AfterRendering" are equivalent.
func ParseScheduleEvent(s string) (ScheduleEvent, error) {
	key := normalizeName(s)
	for e, name := range scheduleEventNames {
		if normalizeName(name) == key {
			return ScheduleEvent(e), nil
		}
	}
	return 0, &ConfigError{Field: "event", Reason: fmt.Sprintf("unknown schedule event %q", s)}
}

func normalizeName(s string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
}
