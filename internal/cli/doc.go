// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli is the process entry point of the DOSE shell.
//
// It parses flags with cobra, loads configuration, builds the diagnostic
// logger and runs the interactive loop over a liner line editor.
//
// # Key Types
//
//   - Shell: Banner, prompt and read-dispatch loop over one session
//   - LineReader: Input source (liner in production, scripted in tests)
//   - TerminalRenderer: Colored output, markdown help and table listings
//   - StartupError: Failure before the first prompt (exit status 1)
//
// # Usage
//
//	dose [--config FILE] [--unsafe] [--db PATH] [--log-file FILE] [--verbose] [--no-color]
//
// When stdout is not a terminal, or NO_COLOR is set, every command prints
// plain text.
package cli
