// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the mutable state of one running DOSE shell.
//
// A Session is created once at startup and owned by the dispatcher, which
// passes it by reference to every command handler.
//
// # Key Types
//
//   - Session: Environment + HistoryLog + ResultLog, plus a correlation UUID
//   - Environment: fixed set of named fields (command_count, cwd, ...)
//   - HistoryLog: dense 1..N map of raw input lines, append-only
//   - ResultLog: values produced by commands, keyed by the same numbers
//
// # Usage
//
//	sess := session.New(cwd, time.Now())
//	seq := sess.NextSeq()
//	if err := sess.Record(seq, "show history"); err != nil {
//	    return err
//	}
//	_ = sess.RecordResult(seq, rendered)
//
// # Invariants
//
// History keys are always 1..N with no gaps. A history entry is never
// rewritten except to append an error annotation. A result is recorded at
// most once per sequence number, and only for numbers already in history.
package session
