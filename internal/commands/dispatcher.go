// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// =============================================================================
// DISPATCHER
// =============================================================================

// Outcome describes what happened to one input line.
type Outcome struct {
	// Seq is the sequence number assigned (0 when the line was empty)
	Seq int

	// Command is the resolved command name, or the unknown token
	Command string

	// Err is nil or one of *UserInputError, *UnknownCommandError,
	// *ResourceError, *RuntimeExecutionError
	Err error

	// Quit is true once quit has run
	Quit bool
}

// Skipped reports whether the line was empty and consumed no number.
func (o Outcome) Skipped() bool {
	return o.Seq == 0
}

// Dispatcher parses lines, runs handlers inside a failure boundary and keeps
// the session bookkeeping. No outcome other than quit ends the session.
type Dispatcher struct {
	ctx    *Context
	parser *Parser
}

// NewDispatcher creates a dispatcher over ctx's registry and session.
func NewDispatcher(ctx *Context) *Dispatcher {
	return &Dispatcher{ctx: ctx, parser: NewParser(ctx.Registry)}
}

// Context returns the handler context.
func (d *Dispatcher) Context() *Context {
	return d.ctx
}

// Dispatch processes one raw input line.
func (d *Dispatcher) Dispatch(line string) Outcome {
	res := d.parser.Parse(line)
	if res.Empty() {
		return Outcome{Quit: d.ctx.quit}
	}

	sess := d.ctx.Session
	seq := sess.NextSeq()
	if err := sess.Record(seq, res.Line); err != nil {
		d.ctx.Logger.Error("history rejected input", zap.Int("seq", seq), zap.Error(err))
		return Outcome{Seq: seq, Err: err}
	}

	log := d.ctx.Logger.With(
		zap.Stringer("session", sess.ID()),
		zap.Int("seq", seq),
		zap.String("command", res.CommandName))

	if res.Command == nil {
		uerr := &UnknownCommandError{Name: res.Token}
		d.annotate(seq, "Error message: "+uerr.Error(), log)
		d.ctx.Println(d.ctx.Render.Error(uerr.Error()))
		log.Info("unknown command")
		return Outcome{Seq: seq, Command: res.Token, Err: uerr}
	}

	sess.MarkDispatched(seq, d.ctx.Now())
	err := d.report(res.Command, seq, d.invoke(res.Command, res.Args, seq), log)
	return Outcome{Seq: seq, Command: res.Command.Name, Err: err, Quit: d.ctx.quit}
}

// invoke runs the handler, converting a panic into a RuntimeExecutionError.
func (d *Dispatcher) invoke(cmd *Command, args string, seq int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return cmd.Handler.Execute(d.ctx, args, seq)
}

// report renders a handler error and returns its typed form.
func (d *Dispatcher) report(cmd *Command, seq int, err error, log *zap.Logger) error {
	if err == nil {
		log.Debug("command completed")
		return nil
	}

	var (
		uerr *UserInputError
		rerr *ResourceError
	)
	switch {
	case errors.As(err, &uerr):
		d.annotate(seq, uerr.Message, log)
		d.ctx.Println(d.ctx.Render.Error(uerr.Message))
		if uerr.ShowHelp {
			printHelp(d.ctx, cmd)
		}
		log.Info("user input error", zap.String("message", uerr.Message))
		return uerr

	case errors.As(err, &rerr):
		d.annotate(seq, rerr.Error(), log)
		d.ctx.Println(d.ctx.Render.Error(rerr.Error()))
		log.Warn("resource error", zap.String("op", rerr.Op), zap.String("path", rerr.Path), zap.Error(rerr.Err))
		return rerr

	default:
		rt := NewRuntimeError(err)
		if recErr := d.ctx.Session.RecordResult(seq, rt); recErr != nil {
			log.Warn("runtime error not recorded", zap.Error(recErr))
		}
		for _, line := range rt.Lines() {
			d.ctx.Println(d.ctx.Render.Error(line))
		}
		log.Error("runtime error", zap.String("kind", rt.Kind), zap.String("args", rt.Args))
		return rt
	}
}

func (d *Dispatcher) annotate(seq int, msg string, log *zap.Logger) {
	if err := d.ctx.Session.Annotate(seq, msg); err != nil {
		log.Warn("history annotation failed", zap.Error(err))
	}
}
