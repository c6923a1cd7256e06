// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Sharlene98/dose/internal/eval"
	"github.com/Sharlene98/dose/internal/session"
	"github.com/Sharlene98/dose/internal/store"
)

// =============================================================================
// RENDERER
// =============================================================================

// Renderer formats handler output for the terminal. Handlers call it for
// anything that may look different on a colour terminal.
type Renderer interface {
	// Help renders a help page given as plain text and markdown.
	Help(plain, markdown string) string
	// Simulations renders the list simulations output.
	Simulations(sims []store.Simulation) string
	// Statement renders a py statement before it runs ("" to skip).
	Statement(src string) string
	// Error renders an error line.
	Error(msg string) string
	// Notice renders an informational line.
	Notice(msg string) string
}

// PlainRenderer renders everything as plain text.
type PlainRenderer struct{}

// Help implements Renderer.
func (PlainRenderer) Help(plain, _ string) string { return plain }

// Simulations implements Renderer.
func (PlainRenderer) Simulations(sims []store.Simulation) string {
	lines := make([]string, len(sims))
	for i, s := range sims {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}

// Statement implements Renderer.
func (PlainRenderer) Statement(string) string { return "" }

// Error implements Renderer.
func (PlainRenderer) Error(msg string) string { return msg }

// Notice implements Renderer.
func (PlainRenderer) Notice(msg string) string { return msg }

// =============================================================================
// SETTINGS
// =============================================================================

// Settings carries the configuration handlers depend on.
type Settings struct {
	// UnsafeExec enables the py command
	UnsafeExec bool
	// EvalTimeout bounds one py statement
	EvalTimeout time.Duration
	// BusyTimeout is passed to the store
	BusyTimeout time.Duration
	// Watch starts a change watcher on connected databases
	Watch bool
	// WatchDebounce coalesces change events
	WatchDebounce time.Duration
}

// =============================================================================
// CONTEXT
// =============================================================================

// Context is passed to every handler. It references the live session; no
// handler keeps a copy of session state.
type Context struct {
	// Ctx bounds blocking work (store queries, py)
	Ctx context.Context

	// Session is the live shell state
	Session *session.Session

	// Registry is the command table
	Registry *Registry

	// Out receives operator-facing output
	Out io.Writer

	// Render formats output
	Render Renderer

	// Logger records diagnostics
	Logger *zap.Logger

	// Settings are the handler-relevant configuration values
	Settings Settings

	// Now is the clock
	Now func() time.Time

	// Rand picks quotations
	Rand *rand.Rand

	evaluator *eval.Evaluator
	watcher   *store.Watcher
	quit      bool
}

// NewContext creates a handler context with plain rendering and no logging.
// Callers override fields as needed.
func NewContext(sess *session.Session, registry *Registry, out io.Writer) *Context {
	return &Context{
		Ctx:      context.Background(),
		Session:  sess,
		Registry: registry,
		Out:      out,
		Render:   PlainRenderer{},
		Logger:   zap.NewNop(),
		Now:      time.Now,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Println writes one line of output.
func (c *Context) Println(a ...any) {
	fmt.Fprintln(c.Out, a...)
}

// Printf writes formatted output.
func (c *Context) Printf(format string, a ...any) {
	fmt.Fprintf(c.Out, format, a...)
}

// Quit reports whether quit has been dispatched.
func (c *Context) Quit() bool {
	return c.quit
}

// DatabaseChanged reports whether the connected database has been written
// by another process since the last call.
func (c *Context) DatabaseChanged() bool {
	return c.watcher != nil && c.watcher.Changed()
}

// Cursor returns the open store cursor from the environment, or nil.
func (c *Context) Cursor() *store.Cursor {
	v, _ := c.Session.Environment().Get(session.FieldDatabaseCursor)
	cur, _ := v.(*store.Cursor)
	return cur
}

// Connector returns the open store connector from the environment, or nil.
func (c *Context) Connector() *store.Connector {
	v, _ := c.Session.Environment().Get(session.FieldDatabaseConnector)
	conn, _ := v.(*store.Connector)
	return conn
}

// Close releases the store connection, its watcher and the evaluator.
func (c *Context) Close() error {
	err := c.closeStore()
	c.evaluator = nil
	return err
}

func (c *Context) quote() string {
	return Quotation(c.Rand)
}
