// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sort"

	"github.com/cockroachdb/errors"
)

var (
	// ErrOutOfOrder is returned when a history key is not the next in sequence.
	ErrOutOfOrder = errors.New("history sequence out of order")
	// ErrNoEntry is returned when a sequence number has no history entry.
	ErrNoEntry = errors.New("no history entry")
	// ErrDuplicateResult is returned when a result is recorded twice.
	ErrDuplicateResult = errors.New("result already recorded")
)

// =============================================================================
// HISTORY LOG
// =============================================================================

// HistoryEntry is one recorded input line.
type HistoryEntry struct {
	Seq  int
	Text string
}

// HistoryLog is the dense, append-only record of input lines.
type HistoryLog struct {
	lines []string // lines[i] is sequence number i+1
}

// Len returns the number of entries, which is also the highest key.
func (h *HistoryLog) Len() int {
	return len(h.lines)
}

// Record appends line at seq, which must be Len()+1.
func (h *HistoryLog) Record(seq int, line string) error {
	if want := len(h.lines) + 1; seq != want {
		return errors.Wrapf(ErrOutOfOrder, "got %d, want %d", seq, want)
	}
	h.lines = append(h.lines, line)
	return nil
}

// Annotate appends " | msg" to the entry at seq.
func (h *HistoryLog) Annotate(seq int, msg string) error {
	if seq < 1 || seq > len(h.lines) {
		return errors.Wrapf(ErrNoEntry, "sequence %d", seq)
	}
	h.lines[seq-1] += " | " + msg
	return nil
}

// Get returns the entry at seq.
func (h *HistoryLog) Get(seq int) (string, bool) {
	if seq < 1 || seq > len(h.lines) {
		return "", false
	}
	return h.lines[seq-1], true
}

// Entries returns all entries in ascending order.
func (h *HistoryLog) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.lines))
	for i, line := range h.lines {
		out[i] = HistoryEntry{Seq: i + 1, Text: line}
	}
	return out
}

// =============================================================================
// RESULT LOG
// =============================================================================

// ResultEntry is one recorded command outcome.
type ResultEntry struct {
	Seq   int
	Value any
}

// ResultLog maps sequence numbers to the data commands produced.
type ResultLog struct {
	values map[int]any
}

// Len returns the number of recorded results.
func (r *ResultLog) Len() int {
	return len(r.values)
}

func (r *ResultLog) record(seq int, v any) error {
	if r.values == nil {
		r.values = make(map[int]any)
	}
	if _, exists := r.values[seq]; exists {
		return errors.Wrapf(ErrDuplicateResult, "sequence %d", seq)
	}
	r.values[seq] = v
	return nil
}

// Get returns the result at seq.
func (r *ResultLog) Get(seq int) (any, bool) {
	v, ok := r.values[seq]
	return v, ok
}

// Entries returns all results in ascending key order.
func (r *ResultLog) Entries() []ResultEntry {
	keys := make([]int, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]ResultEntry, len(keys))
	for i, k := range keys {
		out[i] = ResultEntry{Seq: k, Value: r.values[k]}
	}
	return out
}
