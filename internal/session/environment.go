// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// Field names one Environment variable.
type Field string

// Environment fields, in display order.
const (
	FieldCommandCount      Field = "command_count"
	FieldCwd               Field = "cwd"
	FieldDatabaseConnector Field = "database_connector"
	FieldDatabaseCursor    Field = "database_cursor"
	FieldDatabaseFile      Field = "database_file"
	FieldLastCommandTime   Field = "last_command_time"
	FieldReadlineModule    Field = "readline_module"
	FieldStartingTime      Field = "starting_time"
)

// Fields lists every Environment field in display order.
var Fields = []Field{
	FieldCommandCount,
	FieldCwd,
	FieldDatabaseConnector,
	FieldDatabaseCursor,
	FieldDatabaseFile,
	FieldLastCommandTime,
	FieldReadlineModule,
	FieldStartingTime,
}

// Unset is how an absent value is rendered.
const Unset = "<unset>"

// TimeLayout is the rendering of every timestamp the shell prints or saves.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// ErrUnknownField is returned for names outside the fixed field set.
var ErrUnknownField = errors.New("unknown environment field")

// Environment is the fixed-field variable record of a session.
type Environment struct {
	values map[Field]any
}

// EnvEntry is one rendered Environment field.
type EnvEntry struct {
	Key   Field
	Value any
}

func newEnvironment() *Environment {
	values := make(map[Field]any, len(Fields))
	for _, f := range Fields {
		values[f] = nil
	}
	return &Environment{values: values}
}

// Get returns the value of f; nil means unset.
func (e *Environment) Get(f Field) (any, error) {
	v, ok := e.values[f]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownField, "%q", string(f))
	}
	return v, nil
}

// Set assigns v to f. Fields cannot be added at runtime.
func (e *Environment) Set(f Field, v any) error {
	if _, ok := e.values[f]; !ok {
		return errors.Wrapf(ErrUnknownField, "%q", string(f))
	}
	e.values[f] = v
	return nil
}

// String returns the rendered value of f, or Unset.
func (e *Environment) String(f Field) string {
	return Format(e.values[f])
}

// Entries returns every field in display order.
func (e *Environment) Entries() []EnvEntry {
	out := make([]EnvEntry, 0, len(Fields))
	for _, f := range Fields {
		out = append(out, EnvEntry{Key: f, Value: e.values[f]})
	}
	return out
}

// FormatTime renders t in UTC with microsecond precision.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Format renders a session value for display and persistence.
func Format(v any) string {
	switch val := v.(type) {
	case nil:
		return Unset
	case time.Time:
		if val.IsZero() {
			return Unset
		}
		return FormatTime(val)
	case *time.Time:
		if val == nil {
			return Unset
		}
		return FormatTime(*val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
