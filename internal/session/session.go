// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Session is the live Environment, HistoryLog and ResultLog of one shell.
type Session struct {
	id      uuid.UUID
	env     *Environment
	history *HistoryLog
	results *ResultLog
}

// New creates a session rooted at cwd, started at now.
func New(cwd string, now time.Time) *Session {
	env := newEnvironment()
	env.values[FieldCommandCount] = 0
	env.values[FieldCwd] = cwd
	env.values[FieldStartingTime] = now.UTC()

	return &Session{
		id:      uuid.New(),
		env:     env,
		history: &HistoryLog{},
		results: &ResultLog{},
	}
}

// ID returns the session correlation id.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Environment returns the session's variable record.
func (s *Session) Environment() *Environment {
	return s.env
}

// History returns the input log.
func (s *Session) History() *HistoryLog {
	return s.history
}

// Results returns the data log.
func (s *Session) Results() *ResultLog {
	return s.results
}

// NextSeq returns the sequence number the next input line will receive.
func (s *Session) NextSeq() int {
	return s.history.Len() + 1
}

// Cwd returns the working directory captured at startup.
func (s *Session) Cwd() string {
	cwd, _ := s.env.values[FieldCwd].(string)
	return cwd
}

// StartingTime returns the session start time.
func (s *Session) StartingTime() time.Time {
	t, _ := s.env.values[FieldStartingTime].(time.Time)
	return t
}

// Record appends an input line to history.
func (s *Session) Record(seq int, line string) error {
	return s.history.Record(seq, line)
}

// Annotate appends an error annotation to a history entry.
func (s *Session) Annotate(seq int, msg string) error {
	return s.history.Annotate(seq, msg)
}

// RecordResult stores the data produced at seq.
func (s *Session) RecordResult(seq int, v any) error {
	if _, ok := s.history.Get(seq); !ok {
		return errors.Wrapf(ErrNoEntry, "sequence %d", seq)
	}
	return s.results.record(seq, v)
}

// MarkDispatched updates the bookkeeping fields after a command resolves.
func (s *Session) MarkDispatched(seq int, at time.Time) {
	s.env.values[FieldCommandCount] = seq
	s.env.values[FieldLastCommandTime] = at.UTC()
}
