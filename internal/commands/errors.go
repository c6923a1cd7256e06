// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// MaxFrames bounds the stack frames kept on a RuntimeExecutionError.
const MaxFrames = 10

// =============================================================================
// ERROR TYPES
// =============================================================================

// UserInputError is a malformed invocation: wrong argument count, a bad
// option token or a missing prerequisite. Nothing has changed state.
type UserInputError struct {
	Command  string // Command that rejected the input
	Message  string // Operator-facing message, annotated into history
	ShowHelp bool   // Print the command's help after the message
}

func (e *UserInputError) Error() string {
	return e.Message
}

// UnknownCommandError is an unresolved command token.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return e.Name + " is not a valid command."
}

// ResourceError is a file or store failure during a command.
// Partial writes are not rolled back.
type ResourceError struct {
	Op   string // e.g. "save", "connectdb"
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("Error: %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Frame is one captured call-stack frame.
type Frame struct {
	Function string
	File     string
	Line     int
}

func (f Frame) String() string {
	return fmt.Sprintf("File %q, line %d, in %s", f.File, f.Line, f.Function)
}

// RuntimeExecutionError is any other failure inside a handler, including a
// panic. It is recorded in the ResultLog as (kind, args, frames).
type RuntimeExecutionError struct {
	Kind   string  // Go type name of the underlying failure
	Args   string  // Failure message
	Frames []Frame // Innermost MaxFrames frames, outermost first
	Err    error
}

func (e *RuntimeExecutionError) Error() string {
	return e.Kind + ": " + e.Args
}

func (e *RuntimeExecutionError) Unwrap() error {
	return e.Err
}

// Lines renders the error for the operator: kind, args, then one line per
// frame.
func (e *RuntimeExecutionError) Lines() []string {
	lines := make([]string, 0, 2+len(e.Frames))
	lines = append(lines, e.Kind, e.Args)
	for _, f := range e.Frames {
		lines = append(lines, "  "+f.String())
	}
	return lines
}

// =============================================================================
// ERROR CONSTRUCTION HELPERS
// =============================================================================

// NewUserInputError creates a user input error.
func NewUserInputError(command, message string, showHelp bool) error {
	return &UserInputError{Command: command, Message: message, ShowHelp: showHelp}
}

// NewResourceError creates a resource error.
func NewResourceError(op, path string, err error) error {
	return &ResourceError{Op: op, Path: path, Err: err}
}

// NewRuntimeError converts err into a RuntimeExecutionError, reusing a stack
// recorded anywhere in its chain or capturing one here.
func NewRuntimeError(err error) *RuntimeExecutionError {
	var rt *RuntimeExecutionError
	if errors.As(err, &rt) {
		return rt
	}

	cause := errors.UnwrapAll(err)
	frames := stackFrames(err)
	if frames == nil {
		frames = stackFrames(errors.WithStackDepth(err, 1))
	}
	return &RuntimeExecutionError{
		Kind:   fmt.Sprintf("%T", cause),
		Args:   err.Error(),
		Frames: frames,
		Err:    err,
	}
}

// panicError converts a recovered value. It must be called from the
// deferred function so that the panicking frames are still on the stack.
func panicError(r any) *RuntimeExecutionError {
	kind := "panic"
	var cause error
	if e, ok := r.(error); ok {
		kind = fmt.Sprintf("%T", e)
		cause = e
	} else {
		cause = errors.Newf("%v", r)
	}
	wrapped := errors.WithStackDepth(cause, 2)
	return &RuntimeExecutionError{
		Kind:   kind,
		Args:   fmt.Sprint(r),
		Frames: stackFrames(wrapped),
		Err:    wrapped,
	}
}

func stackFrames(err error) []Frame {
	for e := err; e != nil; e = errors.UnwrapOnce(e) {
		st := errors.GetReportableStackTrace(e)
		if st == nil || len(st.Frames) == 0 {
			continue
		}
		src := st.Frames
		if len(src) > MaxFrames {
			src = src[len(src)-MaxFrames:]
		}
		frames := make([]Frame, 0, len(src))
		for _, f := range src {
			fn := f.Function
			if f.Module != "" {
				fn = f.Module + "." + fn
			}
			frames = append(frames, Frame{
				Function: fn,
				File:     trimFile(f.Filename, f.AbsPath),
				Line:     f.Lineno,
			})
		}
		return frames
	}
	return nil
}

func trimFile(name, abs string) string {
	if name != "" {
		return name
	}
	if i := strings.LastIndex(abs, "/"); i >= 0 {
		return abs[i+1:]
	}
	return abs
}
