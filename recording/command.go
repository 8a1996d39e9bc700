// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import "github.com/gogpu/dither/render"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdGetTemporary     CommandType = iota // Allocate a frame temporary
	CmdReleaseTemporary                    // Release a frame temporary
	CmdSetGlobal                           // Bind a global shader parameter
	CmdSetParam                            // Bind a per-program shader parameter
	CmdBlit                                // Full-screen program blit
)

var commandTypeNames = [...]string{
	CmdGetTemporary:     "GetTemporary",
	CmdReleaseTemporary: "ReleaseTemporary",
	CmdSetGlobal:        "SetGlobal",
	CmdSetParam:         "SetParam",
	CmdBlit:             "Blit",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// GetTemporaryCommand allocates a frame temporary under Name.
type GetTemporaryCommand struct {
	Name   string
	Desc   render.TextureDescriptor
	Filter render.FilterMode
}

// Type implements Command.
func (GetTemporaryCommand) Type() CommandType { return CmdGetTemporary }

// ReleaseTemporaryCommand releases the frame temporary Name.
type ReleaseTemporaryCommand struct {
	Name string
}

// Type implements Command.
func (ReleaseTemporaryCommand) Type() CommandType { return CmdReleaseTemporary }

// SetGlobalCommand binds a parameter visible to every program.
type SetGlobalCommand struct {
	Name  string
	Value Value
}

// Type implements Command.
func (SetGlobalCommand) Type() CommandType { return CmdSetGlobal }

// SetParamCommand binds a parameter of one program.
type SetParamCommand struct {
	Program render.ProgramID
	Name    string
	Value   Value
}

// Type implements Command.
func (SetParamCommand) Type() CommandType { return CmdSetParam }

// BlitCommand runs pass Pass of Program over the full destination, reading Src.
type BlitCommand struct {
	Src     render.Target
	Dst     render.Target
	Program render.ProgramID
	Pass    int
}

// Type implements Command.
func (BlitCommand) Type() CommandType { return CmdBlit }
