// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes DOSE sessions to append-only text files.
//
// Every saved block is pipe-delimited, one record per line:
//
//	Date time stamp of current session: <start time>
//	Environment | <key> | <value>     (workspace only)
//	Command | <n> | <raw line>
//	Data | <n> | <value>              (workspace only, when recorded)
//	===================================
//
// # Key Types
//
//   - Exporter: Writes one block for a session
//   - HistoryExporter: Command history only
//   - WorkspaceExporter: Environment, history and data
//
// # Usage
//
//	mode, err := export.ParseMode("workspace")
//	if err != nil {
//	    return err
//	}
//	path, err := export.AppendToFile(sess, export.For(mode), "run1.txt")
package export
