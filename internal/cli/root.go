// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sharlene98/dose/internal/commands"
	"github.com/Sharlene98/dose/internal/config"
	"github.com/Sharlene98/dose/internal/logging"
)

// options holds the process flags.
type options struct {
	configPath string
	unsafe     bool
	dbPath     string
	logFile    string
	verbose    bool
	noColor    bool
}

// NewRootCommand builds the dose command.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "dose",
		Short: "DOSE - simulation logging command shell",
		Long: `DOSE is an interactive command shell for the Digital Organisms Simulation
Environment. It connects to simulation logging databases, lists recorded
simulations, and keeps a numbered history of every command and its results
that can be saved to a text file.`,
		Version:       commands.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "C", "", "config file (default is $HOME/.dose/config.toml)")
	f.BoolVar(&opts.unsafe, "unsafe", false, "enable the py command")
	f.StringVar(&opts.dbPath, "db", "", "connect to this logging database before the first prompt")
	f.StringVar(&opts.logFile, "log-file", "", `diagnostic log file ("-" disables logging)`)
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

// Execute runs the root command and exits with its status.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	err := NewRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error:"), err)
	}
	os.Exit(ExitCode(err))
}

// apply lets flags override configuration values.
func (o *options) apply(cfg *config.Config) error {
	if o.unsafe {
		cfg.Shell.UnsafeExec = true
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	if o.noColor {
		cfg.UI.Color = ColorNever
	}
	return cfg.Validate()
}

// databasePath resolves --db to the absolute path connectdb expects.
func (o *options) databasePath() (string, error) {
	if o.dbPath == "" {
		return "", nil
	}
	return filepath.Abs(o.dbPath)
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return startupError("config", err)
	}
	if err := opts.apply(cfg); err != nil {
		return startupError("config", err)
	}
	dbPath, err := opts.databasePath()
	if err != nil {
		return startupError("config", errors.Wrap(err, "--db"))
	}

	logger, err := logging.New(logging.FromConfig(cfg.Log, opts.verbose))
	if err != nil {
		return startupError("logging", err)
	}
	defer logger.Sync() //nolint:errcheck

	colors := ColorsEnabled(cfg.UI.Color)
	ApplyColorProfile(colors)

	var render commands.Renderer = commands.PlainRenderer{}
	if colors {
		style := ""
		if cfg.Shell.MarkdownHelp {
			style = MarkdownAuto
		}
		tr, err := NewTerminalRenderer(GetTerminalWidth(), style)
		if err != nil {
			return startupError("terminal", err)
		}
		render = tr
	}

	shell, err := NewShell(cfg,
		WithOutput(cmd.OutOrStdout()),
		WithRenderer(render),
		WithLogger(logger),
		WithDatabase(dbPath))
	if err != nil {
		return startupError("shell", err)
	}

	reader := newLinerReader(cfg.Shell.HistoryFile, shell.Completer(), logger)
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Warn("failed to restore terminal", zap.Error(err))
		}
	}()

	logger.Debug("configuration loaded",
		zap.String("shell", cfg.Shell.Name),
		zap.Bool("unsafe_exec", cfg.Shell.UnsafeExec),
		zap.Bool("colors", colors),
		zap.Bool("interactive", IsTTY()))

	if err := shell.Run(cmd.Context(), reader); err != nil {
		return startupError("input", err)
	}
	return nil
}
