// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/Sharlene98/dose/internal/commands"
	"github.com/Sharlene98/dose/internal/config"
	"github.com/Sharlene98/dose/internal/session"
	"github.com/Sharlene98/dose/internal/util"
)

// ReadlineModule is recorded in the environment when liner drives input.
const ReadlineModule = "github.com/peterh/liner"

// =============================================================================
// LINE INPUT
// =============================================================================

// LineReader supplies input lines. Prompt returns io.EOF at end of input and
// liner.ErrPromptAborted when the operator presses Ctrl-C.
type LineReader interface {
	Prompt(prompt string) (string, error)
	// Module names the line editor, or "" when there is none.
	Module() string
	Close() error
}

// linerReader provides history and line editing through liner.
type linerReader struct {
	line        *liner.State
	historyFile string
	logger      *zap.Logger
}

func newLinerReader(historyFile string, completer *commands.Completer, logger *zap.Logger) *linerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completer.CompleteLine)

	r := &linerReader{line: line, historyFile: historyFile, logger: logger}
	r.loadHistory()
	return r
}

func (r *linerReader) loadHistory() {
	if r.historyFile == "" {
		return
	}
	f, err := os.Open(r.historyFile)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := r.line.ReadHistory(f); err != nil {
		r.logger.Warn("failed to read line history", zap.String("path", r.historyFile), zap.Error(err))
	}
}

func (r *linerReader) saveHistory() {
	if r.historyFile == "" {
		return
	}
	err := util.AtomicWriteFile(r.historyFile, 0600, func(w io.Writer) error {
		_, err := r.line.WriteHistory(w)
		return err
	})
	if err != nil {
		r.logger.Warn("failed to write line history", zap.String("path", r.historyFile), zap.Error(err))
	}
}

// Prompt reads one line; non-blank lines join the editor history.
func (r *linerReader) Prompt(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

func (r *linerReader) Module() string {
	return ReadlineModule
}

// Close saves history and restores the terminal.
func (r *linerReader) Close() error {
	r.saveHistory()
	return r.line.Close()
}

// =============================================================================
// SHELL
// =============================================================================

// Shell runs the read-dispatch loop over one session.
type Shell struct {
	name       string
	database   string
	out        io.Writer
	logger     *zap.Logger
	dispatcher *commands.Dispatcher
	completer  *commands.Completer
}

// ShellOption configures a Shell.
type ShellOption func(*shellOptions)

type shellOptions struct {
	out      io.Writer
	render   commands.Renderer
	logger   *zap.Logger
	cwd      string
	now      func() time.Time
	rand     *rand.Rand
	database string
}

// WithOutput sets where operator output goes (default os.Stdout).
func WithOutput(w io.Writer) ShellOption {
	return func(o *shellOptions) { o.out = w }
}

// WithRenderer sets the output renderer (default plain text).
func WithRenderer(r commands.Renderer) ShellOption {
	return func(o *shellOptions) { o.render = r }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) ShellOption {
	return func(o *shellOptions) { o.logger = l }
}

// WithWorkingDir overrides the directory captured as cwd.
func WithWorkingDir(dir string) ShellOption {
	return func(o *shellOptions) { o.cwd = dir }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ShellOption {
	return func(o *shellOptions) { o.now = now }
}

// WithRand fixes the quotation source.
func WithRand(r *rand.Rand) ShellOption {
	return func(o *shellOptions) { o.rand = r }
}

// WithDatabase connects to an absolute database path before the first prompt.
func WithDatabase(path string) ShellOption {
	return func(o *shellOptions) { o.database = path }
}

// NewShell creates a shell and its session from cfg.
func NewShell(cfg *config.Config, opts ...ShellOption) (*Shell, error) {
	o := shellOptions{
		out:    os.Stdout,
		render: commands.PlainRenderer{},
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cwd == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to determine working directory")
		}
		o.cwd = cwd
	}
	if o.rand == nil {
		o.rand = rand.New(rand.NewSource(o.now().UnixNano()))
	}

	sess := session.New(o.cwd, o.now())
	registry := commands.NewRegistry()

	ctx := commands.NewContext(sess, registry, o.out)
	ctx.Render = o.render
	ctx.Logger = o.logger.With(zap.Stringer("session", sess.ID()))
	ctx.Now = o.now
	ctx.Rand = o.rand
	ctx.Settings = commands.Settings{
		UnsafeExec:    cfg.Shell.UnsafeExec,
		EvalTimeout:   cfg.Shell.EvalTimeout.Duration,
		BusyTimeout:   time.Duration(cfg.Store.BusyTimeoutMs) * time.Millisecond,
		Watch:         cfg.Store.Watch,
		WatchDebounce: cfg.Store.WatchDebounce.Duration,
	}

	return &Shell{
		name:       cfg.Shell.Name,
		database:   o.database,
		out:        o.out,
		logger:     ctx.Logger,
		dispatcher: commands.NewDispatcher(ctx),
		completer:  commands.NewCompleter(registry),
	}, nil
}

// Session returns the live session.
func (s *Shell) Session() *session.Session {
	return s.dispatcher.Context().Session
}

// Completer returns the completer for the shell's command table.
func (s *Shell) Completer() *commands.Completer {
	return s.completer
}

// Prompt renders the prompt for the next input line.
func (s *Shell) Prompt() string {
	return fmt.Sprintf("%s:%d > ", s.name, s.Session().NextSeq())
}

// Run prints the banner and dispatches lines from reader until quit. End of
// input and Ctrl-C at the prompt dispatch an implicit quit. The store
// connection is closed on return.
func (s *Shell) Run(ctx context.Context, reader LineReader) error {
	hctx := s.dispatcher.Context()
	hctx.Ctx = ctx
	defer func() {
		if err := hctx.Close(); err != nil {
			s.logger.Warn("failed to release session resources", zap.Error(err))
		}
	}()

	if module := reader.Module(); module != "" {
		if err := s.Session().Environment().Set(session.FieldReadlineModule, module); err != nil {
			return err
		}
	}

	fmt.Fprintln(s.out, commands.Banner(s.Session().StartingTime(), commands.Quotation(hctx.Rand)))
	s.logger.Info("shell started", zap.String("cwd", s.Session().Cwd()))

	if s.database != "" {
		if s.dispatch("connectdb absolute " + s.database).Quit {
			return nil
		}
	}

	for {
		if hctx.DatabaseChanged() {
			fmt.Fprintln(s.out, hctx.Render.Notice("Database changed on disk. Type list simulations to refresh."))
		}

		line, err := reader.Prompt(s.Prompt())
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(s.out)
				s.dispatch("quit")
				return nil
			}
			return errors.Wrap(err, "failed to read input")
		}

		if s.dispatch(line).Quit {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (s *Shell) dispatch(line string) commands.Outcome {
	outcome := s.dispatcher.Dispatch(line)
	if outcome.Quit {
		s.logger.Info("shell finished", zap.Int("commands", s.Session().History().Len()))
	}
	return outcome
}
