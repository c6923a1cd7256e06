// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Sharlene98/dose/internal/config"
	"github.com/Sharlene98/dose/internal/session"
	"github.com/Sharlene98/dose/internal/store"
)

// scriptedReader replays fixed lines, then returns err (io.EOF by default).
type scriptedReader struct {
	lines   []string
	err     error
	module  string
	prompts []string
}

func (r *scriptedReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		if r.err != nil {
			return "", r.err
		}
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) Module() string { return r.module }

func (r *scriptedReader) Close() error { return nil }

func newTestShell(t *testing.T, cfg *config.Config, opts ...ShellOption) (*Shell, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	base := []ShellOption{
		WithOutput(out),
		WithLogger(zaptest.NewLogger(t)),
		WithWorkingDir(t.TempDir()),
		WithClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }),
		WithRand(rand.New(rand.NewSource(7))),
	}
	shell, err := NewShell(cfg, append(base, opts...)...)
	require.NoError(t, err)
	return shell, out
}

func historyTexts(s *Shell) []string {
	var texts []string
	for _, e := range s.Session().History().Entries() {
		texts = append(texts, e.Text)
	}
	return texts
}

// =============================================================================
// SHELL LOOP
// =============================================================================

func TestShell_RunToQuit(t *testing.T) {
	shell, out := newTestShell(t, config.Default())
	reader := &scriptedReader{lines: []string{"help", "", "unknownxyz", "quit", "credits"}}

	require.NoError(t, shell.Run(context.Background(), reader))

	assert.Equal(t, []string{"DOSE:1 > ", "DOSE:2 > ", "DOSE:2 > ", "DOSE:3 > "}, reader.prompts)
	assert.Equal(t, []string{
		"help",
		"unknownxyz | Error message: unknownxyz is not a valid command.",
		"quit",
	}, historyTexts(shell))
	assert.Equal(t, []string{"credits"}, reader.lines, "lines after quit are not read")

	output := out.String()
	assert.Contains(t, output, "Digital Organisms Simulation Environment (DOSE)")
	assert.Contains(t, output, "Current time is 2025-06-01T12:00:00.000000Z")
	assert.Contains(t, output, "Goodbye!")
}

func TestShell_ImplicitQuit(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"end of input", io.EOF},
		{"ctrl-c", liner.ErrPromptAborted},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			shell, out := newTestShell(t, config.Default())
			reader := &scriptedReader{lines: []string{"credits"}, err: tc.err}

			require.NoError(t, shell.Run(context.Background(), reader))
			assert.Equal(t, []string{"credits", "quit"}, historyTexts(shell))
			assert.Contains(t, out.String(), "Goodbye!")
		})
	}
}

func TestShell_ReadFailure(t *testing.T) {
	shell, _ := newTestShell(t, config.Default())
	reader := &scriptedReader{err: errors.New("terminal gone")}

	err := shell.Run(context.Background(), reader)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal gone")
	assert.Equal(t, 0, shell.Session().History().Len())
}

func TestShell_CustomName(t *testing.T) {
	cfg := config.Default()
	cfg.Shell.Name = "SIM"
	shell, _ := newTestShell(t, cfg)

	assert.Equal(t, "SIM:1 > ", shell.Prompt())
}

func TestShell_ReadlineModule(t *testing.T) {
	shell, _ := newTestShell(t, config.Default())
	reader := &scriptedReader{lines: []string{"quit"}, module: ReadlineModule}

	require.NoError(t, shell.Run(context.Background(), reader))
	assert.Equal(t, ReadlineModule, shell.Session().Environment().String(session.FieldReadlineModule))
}

func TestShell_InitialDatabase(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Watch = false
	path := filepath.Join(t.TempDir(), "sim.db")

	shell, out := newTestShell(t, cfg, WithDatabase(path))
	reader := &scriptedReader{lines: []string{"list simulations", "quit"}}

	require.NoError(t, shell.Run(context.Background(), reader))

	history := historyTexts(shell)
	require.Len(t, history, 3)
	assert.Equal(t, "connectdb absolute "+path, history[0])
	assert.Equal(t, "list simulations", history[1])
	assert.Equal(t, path, shell.Session().Environment().String(session.FieldDatabaseFile))
	assert.NotContains(t, out.String(), "Error")
	assert.FileExists(t, path)
}

func TestShell_UnsafeExec(t *testing.T) {
	cfg := config.Default()
	cfg.Shell.UnsafeExec = true
	shell, out := newTestShell(t, cfg)
	reader := &scriptedReader{lines: []string{`py strings.ToUpper("dose")`, "quit"}}

	require.NoError(t, shell.Run(context.Background(), reader))

	got, ok := shell.Session().Results().Get(1)
	require.True(t, ok)
	assert.Equal(t, "DOSE", got)
	assert.Contains(t, out.String(), "DOSE\n")
}

// =============================================================================
// RENDERING
// =============================================================================

func TestTerminalRenderer_Simulations(t *testing.T) {
	r, err := NewTerminalRenderer(60, "")
	require.NoError(t, err)

	long := strings.Repeat("x", 100)
	view := r.Simulations([]store.Simulation{
		{StartTime: "2025-03-14-09-00-00", Name: "alpha"},
		{StartTime: "2025-03-14-10-00-00", Name: long},
	})

	assert.Contains(t, view, "Start time")
	assert.Contains(t, view, "2025-03-14-09-00-00")
	assert.Contains(t, view, "alpha")
	assert.NotContains(t, view, long)
	assert.Empty(t, r.Simulations(nil))
}

func TestTerminalRenderer_Help(t *testing.T) {
	plain, err := NewTerminalRenderer(80, "")
	require.NoError(t, err)
	assert.Equal(t, "plain text", plain.Help("plain text", "# markdown"))

	md, err := NewTerminalRenderer(80, "notty")
	require.NoError(t, err)
	out := md.Help("plain text", "## connectdb\n\nEstablish connection.")
	assert.Contains(t, out, "connectdb")
	assert.Contains(t, out, "Establish connection.")
}

func TestTerminalRenderer_Lines(t *testing.T) {
	r, err := NewTerminalRenderer(80, "")
	require.NoError(t, err)

	assert.Contains(t, r.Error("bad thing"), "bad thing")
	assert.Contains(t, r.Notice("heads up"), "heads up")
	assert.Contains(t, r.Statement("x + 2"), ">>> ")
}

// =============================================================================
// PROCESS ENTRY
// =============================================================================

func TestColorsEnabled(t *testing.T) {
	assert.False(t, ColorsEnabled(ColorNever))
	assert.True(t, ColorsEnabled(ColorAlways))

	t.Setenv("FORCE_COLOR", "")
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorsEnabled(ColorAuto))

	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "1")
	assert.True(t, ColorsEnabled(ColorAuto))
}

func TestOptions_Apply(t *testing.T) {
	cfg := config.Default()
	opts := &options{unsafe: true, logFile: "-", noColor: true}

	require.NoError(t, opts.apply(cfg))
	assert.True(t, cfg.Shell.UnsafeExec)
	assert.Equal(t, "-", cfg.Log.File)
	assert.Equal(t, ColorNever, cfg.UI.Color)
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"config", "unsafe", "db", "log-file", "verbose", "no-color"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
}

func TestRootCommand_StartupFailures(t *testing.T) {
	t.Run("missing config", func(t *testing.T) {
		cmd := NewRootCommand()
		cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")})
		cmd.SetOut(io.Discard)

		err := cmd.Execute()
		require.Error(t, err)
		assert.Equal(t, ExitGeneralError, ExitCode(err))

		var serr *StartupError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, "config", serr.Stage)
	})

	t.Run("unexpected argument", func(t *testing.T) {
		cmd := NewRootCommand()
		cmd.SetArgs([]string{"extra"})
		cmd.SetOut(io.Discard)

		err := cmd.Execute()
		require.Error(t, err)
		assert.Equal(t, ExitUsageError, ExitCode(err))
	})

	assert.Equal(t, ExitSuccess, ExitCode(nil))
}
