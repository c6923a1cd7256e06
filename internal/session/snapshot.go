// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strconv"
	"strings"
)

// Snapshots are point-in-time copies stored as results by the show command.
// Each renders on a single line so it survives a workspace save.

// EnvSnapshot is a copy of every Environment field.
type EnvSnapshot []EnvEntry

// HistorySnapshot is a copy of the history log.
type HistorySnapshot []HistoryEntry

// ResultSnapshot is a copy of the result log.
type ResultSnapshot []ResultEntry

// Snapshot copies the Environment.
func (e *Environment) Snapshot() EnvSnapshot {
	return EnvSnapshot(e.Entries())
}

// Snapshot copies the history log.
func (h *HistoryLog) Snapshot() HistorySnapshot {
	return HistorySnapshot(h.Entries())
}

// Snapshot copies the result log.
func (r *ResultLog) Snapshot() ResultSnapshot {
	return ResultSnapshot(r.Entries())
}

func (s EnvSnapshot) String() string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = string(e.Key) + ": " + Format(e.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s HistorySnapshot) String() string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = strconv.Itoa(e.Seq) + ": " + e.Text
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s ResultSnapshot) String() string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = strconv.Itoa(e.Seq) + ": " + Format(e.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
