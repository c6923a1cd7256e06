// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package eval runs single-line Go statements for the py command.
//
// Statements are interpreted with yaegi against the full standard library.
// There is no sandbox: a statement can touch the filesystem, the network
// and the process like any compiled code. Callers gate access.
package eval

import (
	"context"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// ErrEmptyStatement is returned when there is nothing to evaluate.
var ErrEmptyStatement = errors.New("no statement provided")

// Preloaded packages are imported into every fresh interpreter.
var Preloaded = []string{"fmt", "math", "strings", "strconv", "time", "os"}

// Result is the outcome of one statement.
type Result struct {
	// Value is the statement's value, when it is an expression.
	Value any
	// HasValue is false for statements without a value.
	HasValue bool
	// Elapsed is the wall time spent evaluating.
	Elapsed time.Duration
}

// Evaluator holds one interpreter whose declarations persist across calls.
type Evaluator struct {
	mu      sync.Mutex
	it      *interp.Interpreter
	stdout  io.Writer
	stderr  io.Writer
	timeout time.Duration
}

// New creates an evaluator writing program output to stdout and stderr.
// A zero timeout means no limit beyond the caller's context.
func New(stdout, stderr io.Writer, timeout time.Duration) (*Evaluator, error) {
	e := &Evaluator{stdout: stdout, stderr: stderr, timeout: timeout}
	if err := e.reset(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Evaluator) reset() error {
	it := interp.New(interp.Options{Stdout: e.stdout, Stderr: e.stderr})
	if err := it.Use(stdlib.Symbols); err != nil {
		return errors.Wrap(err, "failed to load stdlib")
	}
	for _, pkg := range Preloaded {
		if _, err := it.Eval(`import "` + pkg + `"`); err != nil {
			return errors.Wrapf(err, "failed to import %s", pkg)
		}
	}
	e.it = it
	return nil
}

// Eval interprets src. Declarations made by earlier calls stay visible.
// A statement that times out discards the interpreter state, since the
// abandoned evaluation may still be running.
func (e *Evaluator) Eval(ctx context.Context, src string) (Result, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return Result{}, ErrEmptyStatement
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	started := time.Now()
	v, err := e.it.EvalWithContext(ctx, src)
	elapsed := time.Since(started)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if rerr := e.reset(); rerr != nil {
				return Result{Elapsed: elapsed}, errors.CombineErrors(ctxErr, rerr)
			}
			return Result{Elapsed: elapsed}, errors.Wrapf(ctxErr, "statement abandoned after %s", elapsed.Round(time.Millisecond))
		}
		return Result{Elapsed: elapsed}, err
	}

	res := Result{Elapsed: elapsed}
	if v.IsValid() && v.CanInterface() && v.Kind() != reflect.Func {
		res.Value = v.Interface()
		res.HasValue = true
	}
	return res, nil
}
