// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the diagnostic logger used by the DOSE shell.
//
// Operator-facing output never goes through this logger; it records dispatch
// outcomes, store activity and failures as JSON lines in a file so a session
// can be reconstructed after the fact.
package logging

import (
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Sharlene98/dose/internal/config"
)

// Disabled is the log.file value that turns diagnostic logging off.
const Disabled = "-"

// Options control logger construction.
type Options struct {
	// File is the destination path, or Disabled.
	File string
	// Level is one of debug, info, warn, error.
	Level string
	// Verbose forces debug level regardless of Level.
	Verbose bool
}

// FromConfig derives Options from the log section of the configuration.
func FromConfig(cfg config.LogConfig, verbose bool) Options {
	return Options{File: cfg.File, Level: cfg.Level, Verbose: verbose}
}

// New builds a JSON file logger. An empty or "-" file yields a no-op logger.
func New(opts Options) (*zap.Logger, error) {
	if opts.File == "" || opts.File == Disabled {
		return zap.NewNop(), nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	if err := config.EnsureDir(opts.File); err != nil {
		return nil, errors.Wrapf(err, "failed to create log directory for %s", opts.File)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{opts.File}
	cfg.ErrorOutputPaths = []string{opts.File}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	return logger, nil
}

// ParseLevel maps a config level name to a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, errors.Newf("unknown log level %q", name)
	}
}
