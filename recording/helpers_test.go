// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
)

var errBlit = errors.New("blit failed")

// spyExecutor logs every call and can be told to fail a blit.
type spyExecutor struct {
	calls    []string
	live     map[string]bool
	failBlit int // 1-based index of the blit to fail, 0 = never
	failGet  string
	blits    int
	began    bool
	ended    bool
	beginErr error
}

func newSpyExecutor() *spyExecutor {
	return &spyExecutor{live: make(map[string]bool)}
}

func (s *spyExecutor) PassCount(render.ProgramID) int { return 2 }

func (s *spyExecutor) Begin(_ context.Context, label string) error {
	if s.beginErr != nil {
		return s.beginErr
	}
	s.began = true
	s.calls = append(s.calls, "Begin "+label)
	return nil
}

func (s *spyExecutor) GetTemporary(name string, _ render.TextureDescriptor, _ render.FilterMode) error {
	if name == s.failGet {
		return fmt.Errorf("no memory for %s", name)
	}
	s.live[name] = true
	s.calls = append(s.calls, "Get "+name)
	return nil
}

func (s *spyExecutor) ReleaseTemporary(name string) error {
	if !s.live[name] {
		return fmt.Errorf("%s not live", name)
	}
	delete(s.live, name)
	s.calls = append(s.calls, "Release "+name)
	return nil
}

func (s *spyExecutor) SetGlobal(name string, _ Value) error {
	s.calls = append(s.calls, "Global "+name)
	return nil
}

func (s *spyExecutor) SetParam(p render.ProgramID, name string, _ Value) error {
	s.calls = append(s.calls, "Param "+p.String()+"."+name)
	return nil
}

func (s *spyExecutor) Blit(_, _ render.Target, p render.ProgramID, pass int) error {
	s.blits++
	if s.blits == s.failBlit {
		return errBlit
	}
	s.calls = append(s.calls, fmt.Sprintf("Blit %s/%d", p, pass))
	return nil
}

func (s *spyExecutor) End() error {
	s.ended = true
	s.calls = append(s.calls, "End")
	return nil
}

func testDesc() render.TextureDescriptor {
	return render.DefaultTextureDescriptor(8, 8, gputypes.TextureFormatRGBA16Float)
}
